package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/nampd/membership-portal-go/config"
	controllers "github.com/nampd/membership-portal-go/controllers"
	middleware "github.com/nampd/membership-portal-go/middleware"
	services "github.com/nampd/membership-portal-go/services"
	store "github.com/nampd/membership-portal-go/store"
	utils "github.com/nampd/membership-portal-go/utils"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, st store.Store, engine *services.Engine, ocr *utils.OCRClient) {
	// public
	r.POST("/auth/register", controllers.Register(cfg, st))
	r.POST("/auth/login", controllers.Login(cfg, st))
	r.GET("/states", controllers.ListStates())
	r.POST("/documents/ocr", controllers.OCRAutofill(ocr))

	// protected
	auth := middleware.AuthMiddleware(cfg)

	r.GET("/auth/me", auth, controllers.Me(st))

	profile := r.Group("/profile")
	profile.Use(auth)
	{
		profile.PATCH("", controllers.UpdateProfile(st, engine))
		profile.GET("/card", controllers.MemberCard(st))
	}

	members := r.Group("/members")
	members.Use(auth)
	{
		members.GET("", controllers.ListMembers(st))
		members.GET("/:id", controllers.GetMember(st))
		members.POST("/:id/status", controllers.OverrideStatus(st, engine))
	}

	approvals := r.Group("/approvals")
	approvals.Use(auth)
	{
		approvals.GET("", controllers.ListApprovals(st))
		approvals.POST("/:id/approve", controllers.ApproveMember(st, engine))
		approvals.POST("/:id/reject", controllers.RejectMember(st, engine))
	}

	payments := r.Group("/payments")
	payments.Use(auth)
	{
		payments.GET("", controllers.ListPayments(st))
		payments.POST("", controllers.CreatePayment(cfg, st, engine))
	}

	r.GET("/dashboard/stats", auth, controllers.DashboardStats(st))
}
