package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	models "github.com/nampd/membership-portal-go/models"
	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
	utils "github.com/nampd/membership-portal-go/utils"
)

// ---------------- LIST (DIRECTORY) ----------------
func ListMembers(st store.Store) gin.HandlerFunc {
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

		directory := services.Directory(actor, members, c.Query("q"))
		if len(directory) == 0 {
			c.JSON(http.StatusOK, []models.MemberProfile{})
			return
		}

		// --- Pick the most recently updated record ---
		latest := directory[0]
		for _, m := range directory {
			if m.UpdatedAt.After(latest.UpdatedAt) {
				latest = m
			}
		}

		// --- Conditional response from latest record ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, directory)
	}
}

// ---------------- GET ----------------
func GetMember(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c, st)
		if !ok {
			return
		}

		member, err := st.GetMember(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}

		visible := services.VisibleMembers(actor, []models.MemberProfile{member})
		if len(visible) == 0 {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		etag := utils.GenerateETag(member.ID, member.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, member)
	}
}

// ---------------- UPDATE PROFILE ----------------
// UpdateProfile never writes the record itself; the engine applies the
// changed fields under its mutex so an edit racing an approval or payment
// cannot clobber the fresher status.
func UpdateProfile(st store.Store, engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := currentMember(c, st)
		if !ok {
			return
		}

		var input struct {
			FullName        string `form:"full_name"`
			Phone           string `form:"phone"`
			NinNumber       string `form:"nin_number"`
			BusinessName    string `form:"business_name"`
			BusinessAddress string `form:"business_address"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		upd := services.ProfileUpdate{
			FullName:        input.FullName,
			Phone:           input.Phone,
			NinNumber:       input.NinNumber,
			BusinessName:    input.BusinessName,
			BusinessAddress: input.BusinessAddress,
		}

		// --- Re-uploaded documents (best effort) ---
		var warnings []string
		form, _ := c.MultipartForm()
		if form != nil {
			var url string
			if url, warnings = uploadDocumentField(form, "nin", warnings); url != "" {
				deleteReplacedDocument(member.Documents.NinURL)
				upd.NinURL = url
			}
			if url, warnings = uploadDocumentField(form, "passport", warnings); url != "" {
				deleteReplacedDocument(member.Documents.PassportURL)
				upd.PassportURL = url
			}
			if url, warnings = uploadDocumentField(form, "business", warnings); url != "" {
				deleteReplacedDocument(member.Documents.BusinessURL)
				upd.BusinessURL = url
			}
		}

		updated, err := engine.UpdateProfile(c.Request.Context(), member.ID, upd)
		if err == services.ErrNoProfileChanges {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "profile updated",
			"member":   updated,
			"warnings": warnings,
		})
	}
}

// deleteReplacedDocument clears a superseded upload from storage. Cleanup is
// best effort.
func deleteReplacedDocument(old string) {
	if old == "" {
		return
	}
	go func() {
		if err := utils.DeleteFromCloudinary(old); err != nil {
			log.Printf("could not delete replaced document: %v", err)
		}
	}()
}

// ---------------- MEMBERSHIP CARD ----------------
// MemberCard returns the data the certificate and digital ID surfaces
// render. Only active members with an issued NAMPD id have a card.
func MemberCard(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := currentMember(c, st)
		if !ok {
			return
		}

		if member.Status != models.StatusActive || member.NampdID == "" {
			c.JSON(http.StatusConflict, gin.H{"error": "membership is not active"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"nampd_id":      member.NampdID,
			"full_name":     member.FullName,
			"state":         member.State,
			"business_name": member.BusinessName,
			"passport_url":  member.Documents.PassportURL,
			"expiry_date":   member.ExpiryDate,
		})
	}
}

// ---------------- ADMIN STATUS OVERRIDE ----------------
// OverrideStatus is the administrative escape hatch outside the normal
// workflow; it is the only way a record ever becomes SUSPENDED.
func OverrideStatus(st store.Store, engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c, st)
		if !ok {
			return
		}
		if actor.Role != models.RoleSuperAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		var input struct {
			Status models.MembershipStatus `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		member, err := engine.OverrideStatus(c.Request.Context(), c.Param("id"), input.Status)
		if err == store.ErrMemberNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		if err == services.ErrInvalidStatus {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update status"})
			return
		}

		c.JSON(http.StatusOK, member)
	}
}
