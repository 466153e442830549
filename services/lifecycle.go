package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	models "github.com/nampd/membership-portal-go/models"
	store "github.com/nampd/membership-portal-go/store"
)

var (
	ErrInvalidAmount      = errors.New("amount must be greater than 0")
	ErrInvalidPaymentType = errors.New("invalid payment type")
	ErrInvalidStatus      = errors.New("invalid membership status")
	ErrNoProfileChanges   = errors.New("no profile fields to update")
)

// transitionKey pairs the acting role with the member's current status. The
// transition table is a pure function of this pair; jurisdiction checks live
// in the visibility filter, never here.
type transitionKey struct {
	role   models.UserRole
	status models.MembershipStatus
}

var transitions = map[transitionKey]models.MembershipStatus{
	{models.RoleChairman, models.StatusPendingChairman}:   models.StatusPendingState,
	{models.RoleStateAdmin, models.StatusPendingState}:    models.StatusPendingPayment,
	{models.RoleSuperAdmin, models.StatusPendingChairman}: models.StatusPendingState,
	{models.RoleSuperAdmin, models.StatusPendingState}:    models.StatusPendingPayment,
}

// AdvanceResult reports whether a transition was applied. A request outside
// the transition table is reported, not silently swallowed, so callers can
// tell "nothing to do" apart from "illegal request".
type AdvanceResult struct {
	Applied bool                    `json:"applied"`
	Status  models.MembershipStatus `json:"status"`
	Reason  string                  `json:"reason,omitempty"`
}

// PaymentResult carries the appended ledger row and the member record as it
// stands after the payment was processed.
type PaymentResult struct {
	Payment   models.Payment       `json:"payment"`
	Member    models.MemberProfile `json:"member"`
	Activated bool                 `json:"activated"`
}

// Engine owns every mutation of a member's lifecycle status. All writes are
// serialized behind a single mutex so two admins acting on the same record
// cannot lose each other's update.
type Engine struct {
	mu          sync.Mutex
	store       store.Store
	subscribers []func(models.MemberProfile)
}

func NewEngine(s store.Store) *Engine {
	return &Engine{store: s}
}

// Subscribe registers fn to run after a member record has been committed.
// The record is always written first, then subscribers run, in order.
func (e *Engine) Subscribe(fn func(models.MemberProfile)) {
	e.subscribers = append(e.subscribers, fn)
}

func (e *Engine) notify(m models.MemberProfile) {
	for _, fn := range e.subscribers {
		fn(m)
	}
}

// Advance moves a member one step along the approval workflow according to
// the transition table. Role/status pairs outside the table leave the record
// untouched and report why.
func (e *Engine) Advance(ctx context.Context, memberID string, actingRole models.UserRole) (AdvanceResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.store.GetMember(ctx, memberID)
	if err != nil {
		return AdvanceResult{}, err
	}

	if m.Status == models.StatusRejected {
		return AdvanceResult{
			Applied: false,
			Status:  m.Status,
			Reason:  "member has been rejected",
		}, nil
	}

	next, ok := transitions[transitionKey{actingRole, m.Status}]
	if !ok {
		return AdvanceResult{
			Applied: false,
			Status:  m.Status,
			Reason:  fmt.Sprintf("role %s cannot advance a member at %s", actingRole, m.Status),
		}, nil
	}

	m.Status = next
	m.UpdatedAt = time.Now()
	if err := e.store.UpdateMember(ctx, m); err != nil {
		return AdvanceResult{}, err
	}
	e.notify(m)

	return AdvanceResult{Applied: true, Status: next}, nil
}

// Reject marks a member REJECTED regardless of current status. REJECTED is
// sticky: no later Advance call moves the record out of it.
func (e *Engine) Reject(ctx context.Context, memberID string) (models.MemberProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.store.GetMember(ctx, memberID)
	if err != nil {
		return models.MemberProfile{}, err
	}

	m.Status = models.StatusRejected
	m.UpdatedAt = time.Now()
	if err := e.store.UpdateMember(ctx, m); err != nil {
		return models.MemberProfile{}, err
	}
	e.notify(m)

	return m, nil
}

// RecordPayment appends a SUCCESS row to the ledger and applies the
// activation rule: a member at PENDING_PAYMENT activates on any payment
// type, and a RENEWAL payment activates unconditionally. Activation sets the
// expiry one calendar year out and mints the NAMPD id exactly once.
func (e *Engine) RecordPayment(ctx context.Context, memberID string, amount int, paymentType models.PaymentType) (PaymentResult, error) {
	if amount <= 0 {
		return PaymentResult{}, ErrInvalidAmount
	}
	if !paymentType.Valid() {
		return PaymentResult{}, ErrInvalidPaymentType
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.store.GetMember(ctx, memberID)
	if err != nil {
		return PaymentResult{}, err
	}

	now := time.Now()
	payment := models.Payment{
		ID:        fmt.Sprintf("p%d", now.UnixMilli()),
		UserID:    m.ID,
		UserState: m.State,
		Amount:    amount,
		Type:      paymentType,
		Status:    models.PaymentSuccess,
		Date:      now,
		Reference: fmt.Sprintf("REF-%d", rand.Intn(1000000)),
		CreatedAt: now,
	}
	if err := e.store.InsertPayment(ctx, payment); err != nil {
		return PaymentResult{}, err
	}

	activated := m.Status == models.StatusPendingPayment || paymentType == models.PaymentRenewal
	if activated {
		expiry := now.AddDate(1, 0, 0)
		m.Status = models.StatusActive
		m.ExpiryDate = &expiry
		m.LastPaymentDate = &now
		if m.NampdID == "" {
			m.NampdID = newNampdID(m.State)
		}
		m.UpdatedAt = now
		if err := e.store.UpdateMember(ctx, m); err != nil {
			return PaymentResult{}, err
		}
		e.notify(m)
	}

	return PaymentResult{Payment: payment, Member: m, Activated: activated}, nil
}

// OverrideStatus sets a member's status directly, bypassing the transition
// table. This is the administrative action that can produce SUSPENDED; the
// normal workflow never does.
func (e *Engine) OverrideStatus(ctx context.Context, memberID string, status models.MembershipStatus) (models.MemberProfile, error) {
	if !status.Valid() {
		return models.MemberProfile{}, ErrInvalidStatus
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.store.GetMember(ctx, memberID)
	if err != nil {
		return models.MemberProfile{}, err
	}

	m.Status = status
	m.UpdatedAt = time.Now()
	if err := e.store.UpdateMember(ctx, m); err != nil {
		return models.MemberProfile{}, err
	}
	e.notify(m)

	return m, nil
}

// ProfileUpdate carries the self-service fields a member may edit. Empty
// fields are left untouched. Status, role, nampd id and expiry are never
// part of it; those belong to the workflow methods above.
type ProfileUpdate struct {
	FullName        string
	Phone           string
	NinNumber       string
	BusinessName    string
	BusinessAddress string
	NinURL          string
	PassportURL     string
	BusinessURL     string
}

// UpdateProfile applies the non-empty fields of upd to the member's current
// record. It runs under the same mutex as the workflow methods and re-reads
// the record inside it, so a profile edit racing a payment or approval can
// never write back a stale status or erase a freshly minted nampd id.
func (e *Engine) UpdateProfile(ctx context.Context, memberID string, upd ProfileUpdate) (models.MemberProfile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.store.GetMember(ctx, memberID)
	if err != nil {
		return models.MemberProfile{}, err
	}

	changed := false
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
			changed = true
		}
	}
	set(&m.FullName, upd.FullName)
	set(&m.Phone, upd.Phone)
	set(&m.NinNumber, upd.NinNumber)
	set(&m.BusinessName, upd.BusinessName)
	set(&m.BusinessAddress, upd.BusinessAddress)
	set(&m.Documents.NinURL, upd.NinURL)
	set(&m.Documents.PassportURL, upd.PassportURL)
	set(&m.Documents.BusinessURL, upd.BusinessURL)

	if !changed {
		return m, ErrNoProfileChanges
	}

	m.UpdatedAt = time.Now()
	if err := e.store.UpdateMember(ctx, m); err != nil {
		return models.MemberProfile{}, err
	}

	return m, nil
}

// newNampdID builds a membership id of the form NAM-<state prefix>-<5 digits>.
func newNampdID(state string) string {
	prefix := strings.ToUpper(state)
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("NAM-%s-%d", prefix, 10000+rand.Intn(90000))
}

// NewMemberID mints a member id in the portal's historical format.
func NewMemberID() string {
	return fmt.Sprintf("u%d", time.Now().UnixMilli())
}
