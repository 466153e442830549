package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
)

// ---------------- STATS ----------------
// DashboardStats aggregates member and revenue numbers over the records the
// actor is allowed to see, so a state admin's dashboard is scoped to their
// own state while the super admin sees national totals.
func DashboardStats(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c, st)
		if !ok {
			return
		}

		members, err := st.ListMembers(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch members"})
			return
		}

		payments, err := st.ListPayments(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payments"})
			return
		}

		c.JSON(http.StatusOK, services.Stats(actor, members, payments))
	}
}
