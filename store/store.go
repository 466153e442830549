package store

import (
	"context"
	"errors"

	models "github.com/nampd/membership-portal-go/models"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMemberExists   = errors.New("member already exists")
)

// MemberStore is the canonical collection of member profiles. Every reader
// sees the latest committed state; there are no per-session copies.
type MemberStore interface {
	GetMember(ctx context.Context, id string) (models.MemberProfile, error)
	GetMemberByEmail(ctx context.Context, email string) (models.MemberProfile, error)
	ListMembers(ctx context.Context) ([]models.MemberProfile, error)
	InsertMember(ctx context.Context, m models.MemberProfile) error
	// UpdateMember replaces the stored record wholesale. The id is immutable.
	UpdateMember(ctx context.Context, m models.MemberProfile) error
}

// PaymentStore is the append-only payment ledger. ListPayments returns rows
// newest first.
type PaymentStore interface {
	InsertPayment(ctx context.Context, p models.Payment) error
	ListPayments(ctx context.Context) ([]models.Payment, error)
}

type Store interface {
	MemberStore
	PaymentStore
}
