package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/nampd/membership-portal-go/models"
	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
)

// currentMember re-reads the acting user's record from the store. The store
// is the single source of truth; token claims are only used to know who to
// look up, so role or state changes take effect on the next request.
func currentMember(c *gin.Context, st store.Store) (models.MemberProfile, bool) {
	uid := c.GetString("user_id")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.MemberProfile{}, false
	}

	member, err := st.GetMember(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session user no longer exists"})
		return models.MemberProfile{}, false
	}
	return member, true
}

// currentActor is currentMember reduced to what the visibility filter needs.
func currentActor(c *gin.Context, st store.Store) (services.Actor, bool) {
	member, ok := currentMember(c, st)
	if !ok {
		return services.Actor{}, false
	}
	return services.Actor{ID: member.ID, Role: member.Role, State: member.State}, true
}
