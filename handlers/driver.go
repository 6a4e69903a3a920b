package handlers

import (
	"net/http"

	"taxi-booking-api/middleware"
	"taxi-booking-api/models"

	"github.com/gin-gonic/gin"
)

// GetMyTrips lists the trips assigned to the logged-in driver
func (e *Env) GetMyTrips(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	rows, err := e.Bookings.ListByDriver(c.Request.Context(), driverID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list trips"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "trips": rows})
}

// CompleteTrip marks one of the driver's own trips as finished
func (e *Env) CompleteTrip(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := e.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if b.DriverID == nil || *b.DriverID != driverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this trip"})
		return
	}

	if err := e.Bookings.Complete(c.Request.Context(), id); err != nil {
		respondBookingError(c, err)
		return
	}
	e.Metrics.TransitionsTotal.WithLabelValues(string(models.StatusCompleted)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":    "Trip completed successfully",
		"booking_id": id,
		"status":     models.StatusCompleted,
	})
}

// CancelTrip cancels one of the driver's own trips and releases the driver
func (e *Env) CancelTrip(c *gin.Context) {
	driverID := middleware.GetUserID(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := e.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if b.DriverID == nil || *b.DriverID != driverID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this trip"})
		return
	}

	if err := e.Bookings.CancelByDriver(c.Request.Context(), id); err != nil {
		respondBookingError(c, err)
		return
	}
	e.Metrics.TransitionsTotal.WithLabelValues(string(models.StatusCancelled)).Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":    "Trip cancelled successfully",
		"booking_id": id,
		"status":     models.StatusCancelled,
	})
}
