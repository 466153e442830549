package services

import (
	"strings"

	models "github.com/nampd/membership-portal-go/models"
)

// Actor is whoever is asking: their role and jurisdiction decide what they
// may see. The lifecycle engine never consults this; callers apply the
// filter before offering any action.
type Actor struct {
	ID    string
	Role  models.UserRole
	State string
}

// VisibleMembers returns the member records the actor may see. Members see
// only themselves, state-scoped admins see their own state, the super admin
// sees everything.
func VisibleMembers(actor Actor, members []models.MemberProfile) []models.MemberProfile {
	switch actor.Role {
	case models.RoleSuperAdmin:
		return members
	case models.RoleChairman, models.RoleStateAdmin:
		out := []models.MemberProfile{}
		for _, m := range members {
			if m.State == actor.State {
				out = append(out, m)
			}
		}
		return out
	default:
		out := []models.MemberProfile{}
		for _, m := range members {
			if m.ID == actor.ID {
				out = append(out, m)
			}
		}
		return out
	}
}

// PendingApprovals returns the records waiting on this actor specifically.
func PendingApprovals(actor Actor, members []models.MemberProfile) []models.MemberProfile {
	out := []models.MemberProfile{}
	for _, m := range members {
		switch actor.Role {
		case models.RoleChairman:
			if m.Status == models.StatusPendingChairman && m.State == actor.State {
				out = append(out, m)
			}
		case models.RoleStateAdmin:
			if m.Status == models.StatusPendingState && m.State == actor.State {
				out = append(out, m)
			}
		case models.RoleSuperAdmin:
			if m.Status.Pending() {
				out = append(out, m)
			}
		}
	}
	return out
}

// VisiblePayments filters the ledger by the actor's jurisdiction. Payments
// carry the member's state at payment time, so later profile edits do not
// move old rows between jurisdictions.
func VisiblePayments(actor Actor, payments []models.Payment) []models.Payment {
	switch actor.Role {
	case models.RoleSuperAdmin:
		return payments
	case models.RoleChairman, models.RoleStateAdmin:
		out := []models.Payment{}
		for _, p := range payments {
			if p.UserState == actor.State {
				out = append(out, p)
			}
		}
		return out
	default:
		out := []models.Payment{}
		for _, p := range payments {
			if p.UserID == actor.ID {
				out = append(out, p)
			}
		}
		return out
	}
}

// Directory lists MEMBER-role records visible to the actor, optionally
// narrowed by a case-insensitive search over name, business and NAMPD id.
// Admin and chairman accounts are never listed.
func Directory(actor Actor, members []models.MemberProfile, search string) []models.MemberProfile {
	search = strings.ToLower(strings.TrimSpace(search))
	out := []models.MemberProfile{}
	for _, m := range VisibleMembers(actor, members) {
		if m.Role != models.RoleMember {
			continue
		}
		if search != "" && !matchesSearch(m, search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesSearch(m models.MemberProfile, search string) bool {
	return strings.Contains(strings.ToLower(m.FullName), search) ||
		strings.Contains(strings.ToLower(m.BusinessName), search) ||
		(m.NampdID != "" && strings.Contains(strings.ToLower(m.NampdID), search))
}

// Stats computes the dashboard aggregates over the actor's visible records.
// Revenue sums every visible ledger row as stored, with no status filter.
func Stats(actor Actor, members []models.MemberProfile, payments []models.Payment) models.DashboardStats {
	visibleMembers := VisibleMembers(actor, members)
	visiblePayments := VisiblePayments(actor, payments)

	stats := models.DashboardStats{RecentPayments: []models.Payment{}}
	for _, m := range visibleMembers {
		if m.Role == models.RoleMember {
			stats.TotalMembers++
		}
		if m.Status == models.StatusActive {
			stats.ActiveMembers++
		}
		if m.Status.Pending() {
			stats.PendingMembers++
		}
	}
	for _, p := range visiblePayments {
		stats.TotalRevenue += p.Amount
	}
	if len(visiblePayments) > 5 {
		visiblePayments = visiblePayments[:5]
	}
	stats.RecentPayments = visiblePayments
	return stats
}
