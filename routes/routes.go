package routes

import (
	"time"

	"github.com/Archiit19/equipment-lending/app"
	"github.com/Archiit19/equipment-lending/controllers"
	"github.com/Archiit19/equipment-lending/models"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	equipCtl := controllers.NewEquipmentController(s)
	reqCtl := controllers.NewRequestController(s)
	notifCtl := controllers.NewNotificationController(s)
	userCtl := controllers.NewUserController(s)

	authMW := app.AuthRequired(s.AppSess, s.Repo)
	staffMW := app.RequireRole(models.RoleStaff, models.RoleAdmin)
	adminMW := app.RequireRole(models.RoleAdmin)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)

	// ------------------------------
	// Equipment
	// ------------------------------
	equipment := r.Group("/api/equipment", authMW, seenMW)
	{
		equipment.GET("", equipCtl.List) // ?q=&category=&availableOnly=true&startDate=&endDate=
		equipment.GET("/:id", equipCtl.Get)
		equipment.GET("/:id/availability", equipCtl.Availability)
	}

	equipmentAdmin := r.Group("/api/equipment", authMW, adminMW)
	{
		equipmentAdmin.POST("", equipCtl.Create)
		equipmentAdmin.PUT("/:id", equipCtl.Update)
		equipmentAdmin.DELETE("/:id", equipCtl.Delete)
	}

	// ------------------------------
	// Borrow requests
	// ------------------------------
	requests := r.Group("/api/requests", authMW, seenMW)
	{
		requests.POST("", reqCtl.Create)
		requests.GET("", reqCtl.List) // ?all=true for staff/admin
	}

	decisions := r.Group("/api/requests", authMW, staffMW)
	{
		decisions.PATCH("/:id/approve", reqCtl.Approve)
		decisions.PATCH("/:id/reject", reqCtl.Reject)
		decisions.PATCH("/:id/issue", reqCtl.Issue)
		decisions.PATCH("/:id/return", reqCtl.Return)
	}

	// ------------------------------
	// Notifications
	// ------------------------------
	notifications := r.Group("/api/notifications", authMW, seenMW)
	{
		notifications.GET("", notifCtl.List)
		notifications.PATCH("/:id/read", notifCtl.MarkRead)
	}

	// ------------------------------
	// Users (admin list + self)
	// ------------------------------
	users := r.Group("/api/users", authMW)
	{
		users.GET("/me", userCtl.Me)
	}
	usersAdmin := r.Group("/api/users", authMW, adminMW)
	{
		usersAdmin.GET("", userCtl.ListUsers) // ?q=&page=&size=
	}
}
