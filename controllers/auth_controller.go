package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/nampd/membership-portal-go/config"
	models "github.com/nampd/membership-portal-go/models"
	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
	utils "github.com/nampd/membership-portal-go/utils"
)

// ---------------- REGISTER ----------------
func Register(cfg *config.Config, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Bind form fields ---
		var input struct {
			Email           string `form:"email" binding:"required,email"`
			FullName        string `form:"full_name" binding:"required"`
			Phone           string `form:"phone"`
			NinNumber       string `form:"nin_number"`
			State           string `form:"state" binding:"required"`
			BusinessName    string `form:"business_name"`
			BusinessAddress string `form:"business_address"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if _, err := st.GetMemberByEmail(c.Request.Context(), input.Email); err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}

		// --- Handle document uploads (best effort, never fatal) ---
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}

		var docs models.Documents
		var warnings []string
		if form != nil {
			docs.NinURL, warnings = uploadDocumentField(form, "nin", warnings)
			docs.PassportURL, warnings = uploadDocumentField(form, "passport", warnings)
			docs.BusinessURL, warnings = uploadDocumentField(form, "business", warnings)
		}

		// --- Save member ---
		now := time.Now()
		member := models.MemberProfile{
			ID:               services.NewMemberID(),
			Email:            input.Email,
			FullName:         input.FullName,
			Phone:            input.Phone,
			NinNumber:        input.NinNumber,
			Role:             models.RoleMember,
			State:            input.State,
			BusinessName:     input.BusinessName,
			BusinessAddress:  input.BusinessAddress,
			Documents:        docs,
			Status:           models.StatusPendingChairman,
			RegistrationDate: now,
			UpdatedAt:        now,
		}

		if err := st.InsertMember(c.Request.Context(), member); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create member"})
			return
		}

		token, err := utils.GenerateToken(member, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "registration submitted, awaiting chairman approval",
			"member":   member,
			"token":    token,
			"warnings": warnings,
		})
	}
}

// uploadDocumentField uploads the first file under key, if any. Failures are
// returned as warnings so a broken upload never aborts registration.
func uploadDocumentField(form *multipart.Form, key string, warnings []string) (string, []string) {
	files := form.File[key]
	if len(files) == 0 {
		return "", warnings
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return "", append(warnings, fmt.Sprintf("could not read %s document", key))
	}
	defer file.Close()

	url, err := utils.UploadDocument(file, fileHeader)
	if err != nil {
		return "", append(warnings, fmt.Sprintf("%s document upload failed", key))
	}
	return url, warnings
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email" binding:"required,email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		member, err := st.GetMemberByEmail(c.Request.Context(), input.Email)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "user not found",
				"hint":  "demo accounts: super@nampd.com, lagos.admin@nampd.com, member@gmail.com",
			})
			return
		}

		token, err := utils.GenerateToken(member, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"member": member, "token": token})
	}
}

// ---------------- ME ----------------
func Me(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := currentMember(c, st)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, member)
	}
}

// ---------------- STATES ----------------
func ListStates() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.States)
	}
}

// ---------------- OCR AUTOFILL ----------------
func OCRAutofill(ocr *utils.OCRClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("document")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "document file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		image, err := io.ReadAll(file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read file"})
			return
		}

		mimeType := fileHeader.Header.Get("Content-Type")
		if mimeType == "" {
			mimeType = "image/jpeg"
		}

		result, err := ocr.ExtractIdentity(c.Request.Context(), image, mimeType)
		if err != nil {
			// never fatal; the registrant types the fields by hand instead
			c.JSON(http.StatusOK, gin.H{"warning": "could not auto-fill from document"})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
