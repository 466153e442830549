package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/nampd/membership-portal-go/models"
	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
)

// ---------------- LIST PENDING ----------------
// ListApprovals returns the registrations waiting on the acting admin
// specifically. Members always get an empty list; they never approve.
func ListApprovals(st store.Store) gin.HandlerFunc {
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

		c.JSON(http.StatusOK, services.PendingApprovals(actor, members))
	}
}

// ---------------- APPROVE ----------------
// ApproveMember advances a registration one workflow step. The engine
// decides purely on (role, status); the jurisdiction check here mirrors the
// visibility filter so admins cannot act outside their state.
func ApproveMember(st store.Store, engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c, st)
		if !ok {
			return
		}
		if actor.Role == models.RoleMember {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		target, err := st.GetMember(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		if len(services.VisibleMembers(actor, []models.MemberProfile{target})) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		result, err := engine.Advance(c.Request.Context(), target.ID, actor.Role)
		if err == store.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not advance member"})
			return
		}

		if !result.Applied {
			c.JSON(http.StatusConflict, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ---------------- REJECT ----------------
// RejectMember marks a registration REJECTED. Any authenticated role may
// reject; the original imposes no role gate here and that behavior is kept.
func RejectMember(st store.Store, engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentActor(c, st); !ok {
			return
		}

		member, err := engine.Reject(c.Request.Context(), c.Param("id"))
		if err == store.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reject member"})
			return
		}

		c.JSON(http.StatusOK, member)
	}
}
