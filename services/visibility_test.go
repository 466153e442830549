package services

import (
	"testing"
	"time"

	models "github.com/nampd/membership-portal-go/models"
)

func makeMember(id string, role models.UserRole, state string, status models.MembershipStatus) models.MemberProfile {
	return models.MemberProfile{
		ID:           id,
		Email:        id + "@example.com",
		FullName:     "Person " + id,
		Role:         role,
		State:        state,
		BusinessName: "Business " + id,
		Status:       status,
		UpdatedAt:    time.Now(),
	}
}

var testMembers = []models.MemberProfile{
	makeMember("a1", models.RoleSuperAdmin, "National", models.StatusActive),
	makeMember("a2", models.RoleStateAdmin, "Lagos", models.StatusActive),
	makeMember("a3", models.RoleChairman, "Lagos", models.StatusActive),
	makeMember("m1", models.RoleMember, "Lagos", models.StatusPendingChairman),
	makeMember("m2", models.RoleMember, "Lagos", models.StatusPendingState),
	makeMember("m3", models.RoleMember, "Abuja", models.StatusPendingState),
	makeMember("m4", models.RoleMember, "Abuja", models.StatusPendingPayment),
	makeMember("m5", models.RoleMember, "Lagos", models.StatusActive),
}

func ids(members []models.MemberProfile) map[string]bool {
	out := map[string]bool{}
	for _, m := range members {
		out[m.ID] = true
	}
	return out
}

func TestVisibleMembersByRole(t *testing.T) {
	superAdmin := Actor{ID: "a1", Role: models.RoleSuperAdmin, State: "National"}
	if got := VisibleMembers(superAdmin, testMembers); len(got) != len(testMembers) {
		t.Errorf("super admin sees %d of %d records", len(got), len(testMembers))
	}

	lagosAdmin := Actor{ID: "a2", Role: models.RoleStateAdmin, State: "Lagos"}
	for _, m := range VisibleMembers(lagosAdmin, testMembers) {
		if m.State != "Lagos" {
			t.Errorf("lagos admin sees %s record %s", m.State, m.ID)
		}
	}

	member := Actor{ID: "m1", Role: models.RoleMember, State: "Lagos"}
	got := VisibleMembers(member, testMembers)
	if len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("member sees %v, want only their own record", ids(got))
	}
}

func TestPendingApprovalsPerRole(t *testing.T) {
	chairman := Actor{ID: "a3", Role: models.RoleChairman, State: "Lagos"}
	got := ids(PendingApprovals(chairman, testMembers))
	if len(got) != 1 || !got["m1"] {
		t.Errorf("chairman queue = %v, want only m1", got)
	}

	lagosAdmin := Actor{ID: "a2", Role: models.RoleStateAdmin, State: "Lagos"}
	got = ids(PendingApprovals(lagosAdmin, testMembers))
	if len(got) != 1 || !got["m2"] {
		t.Errorf("state admin queue = %v, want only m2", got)
	}
	if got["m3"] {
		t.Error("lagos admin received an Abuja record at PENDING_STATE")
	}

	superAdmin := Actor{ID: "a1", Role: models.RoleSuperAdmin, State: "National"}
	got = ids(PendingApprovals(superAdmin, testMembers))
	for _, want := range []string{"m1", "m2", "m3", "m4"} {
		if !got[want] {
			t.Errorf("super admin queue missing %s", want)
		}
	}
	if len(got) != 4 {
		t.Errorf("super admin queue = %v, want exactly the 4 pending records", got)
	}

	member := Actor{ID: "m1", Role: models.RoleMember, State: "Lagos"}
	if got := PendingApprovals(member, testMembers); len(got) != 0 {
		t.Errorf("member queue = %v, want empty", ids(got))
	}
}

func TestDirectoryExcludesAdminsAndSearches(t *testing.T) {
	superAdmin := Actor{ID: "a1", Role: models.RoleSuperAdmin, State: "National"}

	all := Directory(superAdmin, testMembers, "")
	for _, m := range all {
		if m.Role != models.RoleMember {
			t.Errorf("directory listed %s with role %s", m.ID, m.Role)
		}
	}
	if len(all) != 5 {
		t.Errorf("directory size = %d, want 5", len(all))
	}

	// case-insensitive over full name
	if got := Directory(superAdmin, testMembers, "PERSON M3"); len(got) != 1 || got[0].ID != "m3" {
		t.Errorf("name search = %v, want m3", ids(got))
	}
	// over business name
	if got := Directory(superAdmin, testMembers, "business m5"); len(got) != 1 || got[0].ID != "m5" {
		t.Errorf("business search = %v, want m5", ids(got))
	}
	// over nampd id
	withID := append([]models.MemberProfile{}, testMembers...)
	withID[7].NampdID = "NAM-LA-12345"
	if got := Directory(superAdmin, withID, "nam-la-123"); len(got) != 1 || got[0].ID != "m5" {
		t.Errorf("nampd id search = %v, want m5", ids(got))
	}
	// no match
	if got := Directory(superAdmin, testMembers, "zzzz"); len(got) != 0 {
		t.Errorf("bogus search = %v, want empty", ids(got))
	}
}

func TestVisiblePaymentsScoping(t *testing.T) {
	payments := []models.Payment{
		{ID: "p1", UserID: "m1", UserState: "Lagos", Amount: 5000},
		{ID: "p2", UserID: "m5", UserState: "Lagos", Amount: 10000},
		{ID: "p3", UserID: "m3", UserState: "Abuja", Amount: 10000},
	}

	member := Actor{ID: "m1", Role: models.RoleMember, State: "Lagos"}
	got := VisiblePayments(member, payments)
	if len(got) != 1 || got[0].ID != "p1" {
		t.Errorf("member sees %d payments, want only their own", len(got))
	}

	lagosAdmin := Actor{ID: "a2", Role: models.RoleStateAdmin, State: "Lagos"}
	for _, p := range VisiblePayments(lagosAdmin, payments) {
		if p.UserState != "Lagos" {
			t.Errorf("lagos admin sees %s payment %s", p.UserState, p.ID)
		}
	}

	superAdmin := Actor{ID: "a1", Role: models.RoleSuperAdmin, State: "National"}
	if got := VisiblePayments(superAdmin, payments); len(got) != 3 {
		t.Errorf("super admin sees %d payments, want all 3", len(got))
	}
}

func TestStatsOverVisibleSet(t *testing.T) {
	payments := []models.Payment{
		{ID: "p1", UserID: "m5", UserState: "Lagos", Amount: 5000, Status: models.PaymentSuccess},
		{ID: "p2", UserID: "m5", UserState: "Lagos", Amount: 10000, Status: models.PaymentFailed},
		{ID: "p3", UserID: "m3", UserState: "Abuja", Amount: 10000, Status: models.PaymentSuccess},
	}

	lagosAdmin := Actor{ID: "a2", Role: models.RoleStateAdmin, State: "Lagos"}
	stats := Stats(lagosAdmin, testMembers, payments)

	if stats.TotalMembers != 3 {
		t.Errorf("total members = %d, want 3 Lagos members", stats.TotalMembers)
	}
	if stats.PendingMembers != 2 {
		t.Errorf("pending members = %d, want 2", stats.PendingMembers)
	}
	// revenue sums stored rows as-is, FAILED included
	if stats.TotalRevenue != 15000 {
		t.Errorf("revenue = %d, want 15000", stats.TotalRevenue)
	}
	if len(stats.RecentPayments) != 2 {
		t.Errorf("recent payments = %d, want the 2 Lagos rows", len(stats.RecentPayments))
	}

	superAdmin := Actor{ID: "a1", Role: models.RoleSuperAdmin, State: "National"}
	stats = Stats(superAdmin, testMembers, payments)
	if stats.TotalRevenue != 25000 {
		t.Errorf("national revenue = %d, want 25000", stats.TotalRevenue)
	}
	if stats.ActiveMembers != 4 {
		t.Errorf("active = %d, want 4 (three admins + m5)", stats.ActiveMembers)
	}
}

func TestStatsRecentPaymentsCapped(t *testing.T) {
	superAdmin := Actor{ID: "a1", Role: models.RoleSuperAdmin, State: "National"}
	payments := make([]models.Payment, 8)
	for i := range payments {
		payments[i] = models.Payment{ID: "p", UserID: "m5", UserState: "Lagos", Amount: 1}
	}

	stats := Stats(superAdmin, testMembers, payments)
	if len(stats.RecentPayments) != 5 {
		t.Errorf("recent payments = %d, want capped at 5", len(stats.RecentPayments))
	}
	if stats.TotalRevenue != 8 {
		t.Errorf("revenue = %d, want all 8 rows summed", stats.TotalRevenue)
	}
}
