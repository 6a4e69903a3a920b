package main

import (
	"log"
	"net/http"
	"time"

	"taxi-booking-api/booking"
	"taxi-booking-api/config"
	"taxi-booking-api/handlers"
	"taxi-booking-api/middleware"
	"taxi-booking-api/routes"
	"taxi-booking-api/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Optional .env for local overrides; absence is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}
	gin.SetMode(cfg.GinMode)

	// Open the database once; every component gets this handle
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	log.Println("Database ready at", cfg.DBPath)

	env := &handlers.Env{
		Store:    st,
		Bookings: booking.NewService(st),
		Tokens:   middleware.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		Metrics:  middleware.NewMetrics(),
	}

	// Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(env.Metrics.HTTPMetrics())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Taxi Booking API",
			"version": "1.0.0",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Taxi Booking API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"roles":   []string{"Admin", "Customer", "Driver"},
		})
	})

	routes.SetupRoutes(r, env)

	log.Printf("Server running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
