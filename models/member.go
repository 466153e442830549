package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
	RoleStateAdmin UserRole = "STATE_ADMIN"
	RoleChairman   UserRole = "CHAIRMAN"
	RoleMember     UserRole = "MEMBER"
)

type MembershipStatus string

const (
	StatusPendingChairman MembershipStatus = "PENDING_CHAIRMAN"
	StatusPendingState    MembershipStatus = "PENDING_STATE"
	StatusPendingPayment  MembershipStatus = "PENDING_PAYMENT"
	StatusActive          MembershipStatus = "ACTIVE"
	StatusSuspended       MembershipStatus = "SUSPENDED"
	StatusRejected        MembershipStatus = "REJECTED"
)

// Pending reports whether the status is any of the approval-queue stages.
func (s MembershipStatus) Pending() bool {
	return strings.Contains(string(s), "PENDING")
}

// Valid reports whether s is a declared status value.
func (s MembershipStatus) Valid() bool {
	switch s {
	case StatusPendingChairman, StatusPendingState, StatusPendingPayment,
		StatusActive, StatusSuspended, StatusRejected:
		return true
	}
	return false
}

// Documents holds references to uploaded verification images. Empty string
// means the document was never uploaded.
type Documents struct {
	NinURL      string `bson:"nin_url" json:"nin_url"`
	PassportURL string `bson:"passport_url" json:"passport_url"`
	BusinessURL string `bson:"business_url" json:"business_url"`
}

type MemberProfile struct {
	ID               string           `bson:"_id" json:"id"`
	Email            string           `bson:"email" json:"email"`
	FullName         string           `bson:"full_name" json:"full_name"`
	Phone            string           `bson:"phone" json:"phone"`
	NinNumber        string           `bson:"nin_number" json:"nin_number"`
	Role             UserRole         `bson:"role" json:"role"`
	State            string           `bson:"state" json:"state"`
	BusinessName     string           `bson:"business_name" json:"business_name"`
	BusinessAddress  string           `bson:"business_address,omitempty" json:"business_address,omitempty"`
	Documents        Documents        `bson:"documents" json:"documents"`
	Status           MembershipStatus `bson:"status" json:"status"`
	RegistrationDate time.Time        `bson:"registration_date" json:"registration_date"`
	ExpiryDate       *time.Time       `bson:"expiry_date,omitempty" json:"expiry_date,omitempty"`
	LastPaymentDate  *time.Time       `bson:"last_payment_date,omitempty" json:"last_payment_date,omitempty"`
	NampdID          string           `bson:"nampd_id,omitempty" json:"nampd_id,omitempty"`
	UpdatedAt        time.Time        `bson:"updated_at" json:"updated_at"`
}

// States covered by the association, used to populate registration forms.
var States = []string{"Lagos", "Abuja", "Kano", "Rivers", "Ogun", "Enugu", "Kaduna"}
