package routes

import (
	"uneaty-api/handlers"
	"uneaty-api/middleware"
	"uneaty-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Delivery services (no auth needed)
		public.GET("/delivery-services", handlers.ListServices)
		public.GET("/delivery-services/:id", handlers.GetService)

		// Lifecycle info (great for docs/Postman)
		public.GET("/order-lifecycle", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/me", handlers.GetMe)

		// Delivery service management (ownership checked in handlers)
		auth.POST("/delivery-services", handlers.CreateService)
		auth.PUT("/delivery-services/:id", handlers.UpdateService)
		auth.DELETE("/delivery-services/:id", handlers.DeleteService)

		// Orders — listing and detail are role-scoped inside the core
		auth.GET("/orders", handlers.ListOrders)
		auth.GET("/orders/:id", handlers.GetOrder)
		auth.POST("/orders", middleware.RoleRequired(models.RoleCustomer), handlers.CreateOrder)
		auth.PUT("/orders/:id/status",
			middleware.RoleRequired(models.RoleDeliverer, models.RoleAdmin),
			handlers.UpdateOrderStatus)
		auth.PUT("/orders/:id/cancel", handlers.CancelOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/users", handlers.ListUsers)
	}
}
