package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	models "github.com/nampd/membership-portal-go/models"
	store "github.com/nampd/membership-portal-go/store"
)

func seedMember(t *testing.T, st *store.MemoryStore, id, state string, status models.MembershipStatus) models.MemberProfile {
	t.Helper()
	m := models.MemberProfile{
		ID:               id,
		Email:            id + "@example.com",
		FullName:         "Test " + id,
		Role:             models.RoleMember,
		State:            state,
		BusinessName:     "Biz " + id,
		Status:           status,
		RegistrationDate: time.Now(),
		UpdatedAt:        time.Now(),
	}
	if err := st.InsertMember(context.Background(), m); err != nil {
		t.Fatalf("insert member: %v", err)
	}
	return m
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func TestAdvanceWorkflow(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusPendingChairman)

	res, err := engine.Advance(ctx, m.ID, models.RoleChairman)
	if err != nil {
		t.Fatalf("chairman advance: %v", err)
	}
	if !res.Applied || res.Status != models.StatusPendingState {
		t.Fatalf("chairman advance: got %+v", res)
	}

	res, err = engine.Advance(ctx, m.ID, models.RoleStateAdmin)
	if err != nil {
		t.Fatalf("state admin advance: %v", err)
	}
	if !res.Applied || res.Status != models.StatusPendingPayment {
		t.Fatalf("state admin advance: got %+v", res)
	}

	pay, err := engine.RecordPayment(ctx, m.ID, 5000, models.PaymentRegistration)
	if err != nil {
		t.Fatalf("registration payment: %v", err)
	}
	if !pay.Activated {
		t.Fatal("registration payment at PENDING_PAYMENT should activate")
	}

	got, _ := st.GetMember(ctx, m.ID)
	if got.Status != models.StatusActive {
		t.Fatalf("status = %s, want ACTIVE", got.Status)
	}
	if got.NampdID == "" {
		t.Fatal("nampd id not assigned on activation")
	}
	if got.ExpiryDate == nil || !sameDay(*got.ExpiryDate, time.Now().AddDate(1, 0, 0)) {
		t.Fatalf("expiry = %v, want one year from today", got.ExpiryDate)
	}
	if got.LastPaymentDate == nil || !sameDay(*got.LastPaymentDate, time.Now()) {
		t.Fatalf("last payment date = %v, want today", got.LastPaymentDate)
	}
}

func TestAdvanceSuperAdminOverride(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Kano", models.StatusPendingChairman)

	res, _ := engine.Advance(ctx, m.ID, models.RoleSuperAdmin)
	if !res.Applied || res.Status != models.StatusPendingState {
		t.Fatalf("super admin at PENDING_CHAIRMAN: got %+v", res)
	}
	res, _ = engine.Advance(ctx, m.ID, models.RoleSuperAdmin)
	if !res.Applied || res.Status != models.StatusPendingPayment {
		t.Fatalf("super admin at PENDING_STATE: got %+v", res)
	}
	// PENDING_PAYMENT is cleared by payment, not approval, even for the super admin
	res, _ = engine.Advance(ctx, m.ID, models.RoleSuperAdmin)
	if res.Applied {
		t.Fatalf("super admin at PENDING_PAYMENT should not advance: got %+v", res)
	}
}

func TestAdvanceOutsideTableLeavesStatusUnchanged(t *testing.T) {
	cases := []struct {
		role   models.UserRole
		status models.MembershipStatus
	}{
		{models.RoleMember, models.StatusPendingChairman},
		{models.RoleChairman, models.StatusPendingState},
		{models.RoleStateAdmin, models.StatusPendingChairman},
		{models.RoleChairman, models.StatusActive},
		{models.RoleSuperAdmin, models.StatusActive},
		{models.RoleStateAdmin, models.StatusSuspended},
	}

	for _, tc := range cases {
		st := store.NewMemoryStore()
		engine := NewEngine(st)
		m := seedMember(t, st, "m1", "Lagos", tc.status)

		res, err := engine.Advance(context.Background(), m.ID, tc.role)
		if err != nil {
			t.Fatalf("%s at %s: %v", tc.role, tc.status, err)
		}
		if res.Applied {
			t.Errorf("%s at %s: transition applied, want no-op", tc.role, tc.status)
		}
		if res.Reason == "" {
			t.Errorf("%s at %s: expected a reason for the refusal", tc.role, tc.status)
		}

		got, _ := st.GetMember(context.Background(), m.ID)
		if got.Status != tc.status {
			t.Errorf("%s at %s: status changed to %s", tc.role, tc.status, got.Status)
		}
	}
}

func TestRejectIsSticky(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusPendingState)

	rejected, err := engine.Reject(ctx, m.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != models.StatusRejected {
		t.Fatalf("status = %s, want REJECTED", rejected.Status)
	}

	for _, role := range []models.UserRole{models.RoleChairman, models.RoleStateAdmin, models.RoleSuperAdmin} {
		res, err := engine.Advance(ctx, m.ID, role)
		if err != nil {
			t.Fatalf("advance after reject (%s): %v", role, err)
		}
		if res.Applied {
			t.Errorf("advance as %s moved a rejected member", role)
		}
	}

	got, _ := st.GetMember(ctx, m.ID)
	if got.Status != models.StatusRejected {
		t.Fatalf("status = %s, want REJECTED to stick", got.Status)
	}
}

func TestAdvanceUnknownMember(t *testing.T) {
	engine := NewEngine(store.NewMemoryStore())
	if _, err := engine.Advance(context.Background(), "nope", models.RoleChairman); err != store.ErrMemberNotFound {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
	if _, err := engine.Reject(context.Background(), "nope"); err != store.ErrMemberNotFound {
		t.Fatalf("reject err = %v, want ErrMemberNotFound", err)
	}
	if _, err := engine.RecordPayment(context.Background(), "nope", 5000, models.PaymentRegistration); err != store.ErrMemberNotFound {
		t.Fatalf("payment err = %v, want ErrMemberNotFound", err)
	}
}

func TestPaymentBeforeApprovalIsLedgerOnly(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusPendingChairman)

	res, err := engine.RecordPayment(ctx, m.ID, 10000, models.PaymentAnnualDues)
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if res.Activated {
		t.Fatal("ANNUAL_DUES at PENDING_CHAIRMAN must not activate")
	}

	got, _ := st.GetMember(ctx, m.ID)
	if got.Status != models.StatusPendingChairman {
		t.Fatalf("status = %s, want unchanged", got.Status)
	}
	if got.NampdID != "" || got.ExpiryDate != nil {
		t.Fatal("ledger-only payment must not touch nampd id or expiry")
	}

	payments, _ := st.ListPayments(ctx)
	if len(payments) != 1 {
		t.Fatalf("ledger rows = %d, want 1", len(payments))
	}
	p := payments[0]
	if p.Status != models.PaymentSuccess || p.Amount != 10000 || p.Type != models.PaymentAnnualDues {
		t.Fatalf("unexpected ledger row %+v", p)
	}
	if p.UserState != "Lagos" {
		t.Fatalf("user state = %q, want denormalized copy", p.UserState)
	}
}

func TestActivationMintsNampdIDOnce(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusPendingPayment)

	if _, err := engine.RecordPayment(ctx, m.ID, 5000, models.PaymentRegistration); err != nil {
		t.Fatalf("registration payment: %v", err)
	}

	got, _ := st.GetMember(ctx, m.ID)
	if ok, _ := regexp.MatchString(`^NAM-LA-\d{5}$`, got.NampdID); !ok {
		t.Fatalf("nampd id %q does not match NAM-LA-#####", got.NampdID)
	}
	firstID := got.NampdID

	// renewal refreshes the expiry but never re-mints the id
	if _, err := engine.RecordPayment(ctx, m.ID, 10000, models.PaymentRenewal); err != nil {
		t.Fatalf("renewal payment: %v", err)
	}
	got, _ = st.GetMember(ctx, m.ID)
	if got.NampdID != firstID {
		t.Fatalf("nampd id changed on renewal: %q -> %q", firstID, got.NampdID)
	}
	if !sameDay(*got.ExpiryDate, time.Now().AddDate(1, 0, 0)) {
		t.Fatalf("renewal expiry = %v, want one year from today", got.ExpiryDate)
	}
}

func TestRenewalReactivatesLapsedMember(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Rivers", models.StatusSuspended)

	res, err := engine.RecordPayment(ctx, m.ID, 10000, models.PaymentRenewal)
	if err != nil {
		t.Fatalf("renewal: %v", err)
	}
	if !res.Activated {
		t.Fatal("RENEWAL must activate regardless of prior status")
	}

	got, _ := st.GetMember(ctx, m.ID)
	if got.Status != models.StatusActive {
		t.Fatalf("status = %s, want ACTIVE", got.Status)
	}
	if got.NampdID == "" {
		t.Fatal("activated member must hold a nampd id")
	}
}

func TestRecordPaymentValidation(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	m := seedMember(t, st, "m1", "Lagos", models.StatusPendingPayment)

	if _, err := engine.RecordPayment(context.Background(), m.ID, 0, models.PaymentRegistration); err != ErrInvalidAmount {
		t.Fatalf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
	if _, err := engine.RecordPayment(context.Background(), m.ID, -5, models.PaymentRegistration); err != ErrInvalidAmount {
		t.Fatalf("negative amount: err = %v, want ErrInvalidAmount", err)
	}
	if _, err := engine.RecordPayment(context.Background(), m.ID, 5000, models.PaymentType("BRIBE")); err != ErrInvalidPaymentType {
		t.Fatalf("bad type: err = %v, want ErrInvalidPaymentType", err)
	}

	payments, _ := st.ListPayments(context.Background())
	if len(payments) != 0 {
		t.Fatalf("invalid requests appended %d ledger rows", len(payments))
	}
}

func TestPaymentIdentifierFormats(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	m := seedMember(t, st, "m1", "Ogun", models.StatusPendingPayment)

	res, err := engine.RecordPayment(context.Background(), m.ID, 5000, models.PaymentRegistration)
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if ok, _ := regexp.MatchString(`^p\d+$`, res.Payment.ID); !ok {
		t.Errorf("payment id %q does not match p<millis>", res.Payment.ID)
	}
	if ok, _ := regexp.MatchString(`^REF-\d{1,6}$`, res.Payment.Reference); !ok {
		t.Errorf("reference %q does not match REF-<n>", res.Payment.Reference)
	}
}

func TestSubscribersRunAfterCommit(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusPendingChairman)

	var seen []models.MembershipStatus
	engine.Subscribe(func(updated models.MemberProfile) {
		// the store must already hold the new status when we are called
		stored, err := st.GetMember(ctx, updated.ID)
		if err != nil {
			t.Errorf("store read inside subscriber: %v", err)
			return
		}
		if stored.Status != updated.Status {
			t.Errorf("subscriber saw %s but store holds %s", updated.Status, stored.Status)
		}
		seen = append(seen, updated.Status)
	})

	if _, err := engine.Advance(ctx, m.ID, models.RoleChairman); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := engine.Reject(ctx, m.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	want := []models.MembershipStatus{models.StatusPendingState, models.StatusRejected}
	if len(seen) != len(want) {
		t.Fatalf("subscriber ran %d times, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d = %s, want %s", i, seen[i], want[i])
		}
	}
}

func TestProfileUpdateCannotRevertActivation(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusPendingPayment)

	// an edit prepared from a read taken before the payment lands
	upd := ProfileUpdate{Phone: "08099998888"}

	if _, err := engine.RecordPayment(ctx, m.ID, 5000, models.PaymentRegistration); err != nil {
		t.Fatalf("payment: %v", err)
	}

	got, err := engine.UpdateProfile(ctx, m.ID, upd)
	if err != nil {
		t.Fatalf("profile update: %v", err)
	}
	if got.Status != models.StatusActive {
		t.Fatalf("status = %s, profile edit reverted the activation", got.Status)
	}
	if got.NampdID == "" {
		t.Fatal("profile edit erased the minted nampd id")
	}
	if got.Phone != "08099998888" {
		t.Fatalf("phone = %q, edit not applied", got.Phone)
	}

	stored, _ := st.GetMember(ctx, m.ID)
	if stored.Status != models.StatusActive || stored.NampdID != got.NampdID {
		t.Fatalf("stored record %+v diverged from update result", stored)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusActive)

	if _, err := engine.UpdateProfile(ctx, m.ID, ProfileUpdate{}); err != ErrNoProfileChanges {
		t.Fatalf("empty update: err = %v, want ErrNoProfileChanges", err)
	}
	if _, err := engine.UpdateProfile(ctx, "nope", ProfileUpdate{Phone: "1"}); err != store.ErrMemberNotFound {
		t.Fatalf("unknown member: err = %v, want ErrMemberNotFound", err)
	}

	got, err := engine.UpdateProfile(ctx, m.ID, ProfileUpdate{BusinessName: "New Biz", NinURL: "https://cdn/nin.jpg"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.BusinessName != "New Biz" || got.Documents.NinURL != "https://cdn/nin.jpg" {
		t.Fatalf("fields not applied: %+v", got)
	}
	if got.FullName != m.FullName {
		t.Fatalf("untouched field changed: %q -> %q", m.FullName, got.FullName)
	}
}

func TestOverrideStatusProducesSuspended(t *testing.T) {
	st := store.NewMemoryStore()
	engine := NewEngine(st)
	ctx := context.Background()

	m := seedMember(t, st, "m1", "Lagos", models.StatusActive)

	got, err := engine.OverrideStatus(ctx, m.ID, models.StatusSuspended)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if got.Status != models.StatusSuspended {
		t.Fatalf("status = %s, want SUSPENDED", got.Status)
	}

	if _, err := engine.OverrideStatus(ctx, m.ID, models.MembershipStatus("BANNED")); err != ErrInvalidStatus {
		t.Fatalf("bad status: err = %v, want ErrInvalidStatus", err)
	}
}
