package handlers

import (
	"errors"
	"net/http"

	"taxi-booking-api/models"
	"taxi-booking-api/store"

	"github.com/gin-gonic/gin"
)

type AssignDriverRequest struct {
	DriverID uint `json:"driver_id" binding:"required"`
}

type RegisterDriverRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Phone    string `json:"phone" binding:"required,len=10,numeric"`
	Vehicle  string `json:"vehicle_no" binding:"required"`
	License  string `json:"license_no" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// AdminGetAllBookings lists every booking with customer and driver names
func (e *Env) AdminGetAllBookings(c *gin.Context) {
	rows, err := e.Bookings.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	// Status breakdown for the dashboard header.
	summary := map[string]int{}
	for _, r := range rows {
		summary[string(r.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(rows),
		"summary":  summary,
		"bookings": rows,
	})
}

// AdminListDrivers returns all registered drivers for the assignment picker
func (e *Env) AdminListDrivers(c *gin.Context) {
	drivers, err := e.Store.ListDrivers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list drivers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(drivers), "drivers": drivers})
}

// AdminAssignDriver puts a driver on a pending booking
func (e *Env) AdminAssignDriver(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}
	var req AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := e.Bookings.Assign(c.Request.Context(), id, req.DriverID); err != nil {
		respondBookingError(c, err)
		return
	}

	e.Metrics.TransitionsTotal.WithLabelValues(string(models.StatusAssigned)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":    "Driver assigned successfully",
		"booking_id": id,
		"driver_id":  req.DriverID,
		"status":     models.StatusAssigned,
	})
}

// AdminRegisterDriver creates a driver account. The vehicle and license
// numbers are required on the form but not stored; the users table has no
// columns for them.
func (e *Env) AdminRegisterDriver(c *gin.Context) {
	var req RegisterDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := e.Store.CreateDriver(c.Request.Context(), req.Username, req.Password, req.Name, req.Phone)
	if errors.Is(err, store.ErrUsernameTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register driver"})
		return
	}

	e.Metrics.RegistrationsTotal.WithLabelValues(string(models.RoleDriver)).Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Driver registered successfully",
		"username": req.Username,
	})
}
