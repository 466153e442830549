package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	config "github.com/nampd/membership-portal-go/config"
	models "github.com/nampd/membership-portal-go/models"
	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
)

// ---------------- LIST ----------------
func ListPayments(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c, st)
		if !ok {
			return
		}

		payments, err := st.ListPayments(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch payments"})
			return
		}

		c.JSON(http.StatusOK, services.VisiblePayments(actor, payments))
	}
}

// ---------------- PAY ----------------
// CreatePayment is the simulated gateway: every submitted payment succeeds
// and is recorded through the lifecycle engine, which applies the
// activation rule. The amount defaults to the fee schedule for the type.
func CreatePayment(cfg *config.Config, st store.Store, engine *services.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := currentActor(c, st)
		if !ok {
			return
		}

		var input struct {
			Amount int                `json:"amount"`
			Type   models.PaymentType `json:"type" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Amount == 0 {
			switch input.Type {
			case models.PaymentRegistration:
				input.Amount = cfg.RegistrationFee
			case models.PaymentAnnualDues:
				input.Amount = cfg.AnnualDuesFee
			case models.PaymentRenewal:
				input.Amount = cfg.RenewalFee
			}
		}

		result, err := engine.RecordPayment(c.Request.Context(), actor.ID, input.Amount, input.Type)
		switch err {
		case nil:
		case services.ErrInvalidAmount, services.ErrInvalidPaymentType:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case store.ErrMemberNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
			return
		}

		c.JSON(http.StatusCreated, result)
	}
}
