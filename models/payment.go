package models

import "time"

type PaymentType string

const (
	PaymentRegistration PaymentType = "REGISTRATION"
	PaymentAnnualDues   PaymentType = "ANNUAL_DUES"
	PaymentRenewal      PaymentType = "RENEWAL"
)

// Valid reports whether t is one of the accepted payment types.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentRegistration, PaymentAnnualDues, PaymentRenewal:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentPending PaymentStatus = "PENDING"
)

// Payment is one row of the append-only ledger. Rows are never mutated or
// deleted after insertion.
type Payment struct {
	ID        string        `bson:"_id" json:"id"`
	UserID    string        `bson:"user_id" json:"user_id"`
	UserState string        `bson:"user_state" json:"user_state"` // denormalized for admin filtering
	Amount    int           `bson:"amount" json:"amount"`
	Type      PaymentType   `bson:"type" json:"type"`
	Status    PaymentStatus `bson:"status" json:"status"`
	Date      time.Time     `bson:"date" json:"date"`
	Reference string        `bson:"reference" json:"reference"`
	CreatedAt time.Time     `bson:"created_at" json:"created_at"`
}

// DashboardStats aggregates the admin dashboard numbers over the records
// visible to the requesting actor.
type DashboardStats struct {
	TotalMembers   int       `json:"total_members"`
	ActiveMembers  int       `json:"active_members"`
	PendingMembers int       `json:"pending_members"`
	TotalRevenue   int       `json:"total_revenue"`
	RecentPayments []Payment `json:"recent_payments"`
}
