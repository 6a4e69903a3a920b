package routes

import (
	"taxi-booking-api/handlers"
	"taxi-booking-api/middleware"
	"taxi-booking-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, env *handlers.Env) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", env.Login)
		public.POST("/auth/register", env.Register)

		// Booking lifecycle documentation
		public.GET("/state-machine", env.GetStateMachineInfo)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(env.Tokens.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/bookings", env.CreateBooking)
		customer.GET("/bookings", env.GetMyBookings)
		customer.PUT("/bookings/:id", env.UpdateBooking)
		customer.PUT("/bookings/:id/cancel", env.CancelBooking)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(env.Tokens.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/bookings", env.AdminGetAllBookings)
		admin.PUT("/bookings/:id/assign", env.AdminAssignDriver)
		admin.GET("/drivers", env.AdminListDrivers)
		admin.POST("/drivers", env.AdminRegisterDriver)
	}

	// ── Driver routes ──────────────────────────────────────────────
	driver := r.Group("/api/driver")
	driver.Use(env.Tokens.AuthRequired(), middleware.RoleRequired(models.RoleDriver))
	{
		driver.GET("/trips", env.GetMyTrips)
		driver.PUT("/trips/:id/complete", env.CompleteTrip)
		driver.PUT("/trips/:id/cancel", env.CancelTrip)
	}
}
