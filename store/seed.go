package store

import (
	"time"

	models "github.com/nampd/membership-portal-go/models"
)

func seedDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic("store: bad seed date " + value)
	}
	return t
}

func seedDatePtr(value string) *time.Time {
	t := seedDate(value)
	return &t
}

// SeedMembers returns the demo accounts the portal ships with. Passwords do
// not exist; login is a plain email lookup.
func SeedMembers() []models.MemberProfile {
	return []models.MemberProfile{
		{
			ID:               "u1",
			Email:            "super@nampd.com",
			FullName:         "Chief HQ Admin",
			Role:             models.RoleSuperAdmin,
			State:            "National",
			BusinessName:     "HQ Operations",
			BusinessAddress:  "Abuja HQ",
			Phone:            "08011111111",
			NinNumber:        "12345678901",
			RegistrationDate: seedDate("2023-01-01"),
			Status:           models.StatusActive,
			NampdID:          "NAM-HQ-001",
			UpdatedAt:        seedDate("2023-01-01"),
		},
		{
			ID:               "u2",
			Email:            "lagos.admin@nampd.com",
			FullName:         "Lagos State Admin",
			Role:             models.RoleStateAdmin,
			State:            "Lagos",
			BusinessName:     "Lagos Secretariat",
			BusinessAddress:  "Ikeja, Lagos",
			Phone:            "08022222222",
			NinNumber:        "22345678902",
			RegistrationDate: seedDate("2023-02-01"),
			Status:           models.StatusActive,
			NampdID:          "NAM-LA-ADM-001",
			UpdatedAt:        seedDate("2023-02-01"),
		},
		{
			ID:               "u3",
			Email:            "ikeja.chair@nampd.com",
			FullName:         "Ikeja Chairman",
			Role:             models.RoleChairman,
			State:            "Lagos",
			BusinessName:     "Computer Village Rep",
			BusinessAddress:  "Computer Village, Ikeja",
			Phone:            "08033333333",
			NinNumber:        "32345678903",
			RegistrationDate: seedDate("2023-03-01"),
			Status:           models.StatusActive,
			NampdID:          "NAM-LA-CHR-001",
			UpdatedAt:        seedDate("2023-03-01"),
		},
		{
			ID:               "u4",
			Email:            "member@gmail.com",
			FullName:         "John Technician",
			Role:             models.RoleMember,
			State:            "Lagos",
			BusinessName:     "John Fix It",
			BusinessAddress:  "12 Otigba St, Ikeja",
			Phone:            "08044444444",
			NinNumber:        "42345678904",
			RegistrationDate: seedDate("2024-01-15"),
			Status:           models.StatusActive,
			NampdID:          "NAM-LA-00542",
			ExpiryDate:       seedDatePtr("2025-01-15"),
			UpdatedAt:        seedDate("2024-01-15"),
		},
		{
			ID:               "u5",
			Email:            "pending.chair@gmail.com",
			FullName:         "Sarah Dealer",
			Role:             models.RoleMember,
			State:            "Lagos",
			BusinessName:     "Sarah Accessories",
			BusinessAddress:  "Surulere, Lagos",
			Phone:            "08055555555",
			NinNumber:        "52345678905",
			RegistrationDate: seedDate("2024-05-20"),
			Status:           models.StatusPendingChairman,
			UpdatedAt:        seedDate("2024-05-20"),
		},
		{
			ID:               "u6",
			Email:            "pending.state@gmail.com",
			FullName:         "Mike Engineer",
			Role:             models.RoleMember,
			State:            "Lagos",
			BusinessName:     "Mike Engineering",
			BusinessAddress:  "Yaba, Lagos",
			Phone:            "08066666666",
			NinNumber:        "62345678906",
			RegistrationDate: seedDate("2024-05-22"),
			Status:           models.StatusPendingState,
			UpdatedAt:        seedDate("2024-05-22"),
		},
		{
			ID:               "u7",
			Email:            "pending.payment@gmail.com",
			FullName:         "Lisa Mobile",
			Role:             models.RoleMember,
			State:            "Lagos",
			BusinessName:     "Lisa Global",
			BusinessAddress:  "Lekki, Lagos",
			Phone:            "08077777777",
			NinNumber:        "72345678907",
			RegistrationDate: seedDate("2024-05-25"),
			Status:           models.StatusPendingPayment,
			UpdatedAt:        seedDate("2024-05-25"),
		},
	}
}

// SeedPayments returns the demo ledger, newest first.
func SeedPayments() []models.Payment {
	return []models.Payment{
		{
			ID:        "p3",
			UserID:    "u2",
			UserState: "Lagos",
			Amount:    10000,
			Type:      models.PaymentAnnualDues,
			Status:    models.PaymentSuccess,
			Date:      seedDate("2024-02-01"),
			Reference: "REF-99887",
			CreatedAt: seedDate("2024-02-01"),
		},
		{
			ID:        "p2",
			UserID:    "u4",
			UserState: "Lagos",
			Amount:    10000,
			Type:      models.PaymentAnnualDues,
			Status:    models.PaymentSuccess,
			Date:      seedDate("2024-01-15"),
			Reference: "REF-12346",
			CreatedAt: seedDate("2024-01-15"),
		},
		{
			ID:        "p1",
			UserID:    "u4",
			UserState: "Lagos",
			Amount:    5000,
			Type:      models.PaymentRegistration,
			Status:    models.PaymentSuccess,
			Date:      seedDate("2024-01-15"),
			Reference: "REF-12345",
			CreatedAt: seedDate("2024-01-15"),
		},
	}
}
