package handlers

import (
	"net/http"

	"taxi-booking-api/middleware"
	"taxi-booking-api/models"

	"github.com/gin-gonic/gin"
)

type BookingRequest struct {
	Pickup  string `json:"pickup_location" binding:"required"`
	Dropoff string `json:"dropoff_location" binding:"required"`
	Date    string `json:"booking_date" binding:"required"`
	Time    string `json:"booking_time" binding:"required"`
}

// CreateBooking books a new taxi trip for the logged-in customer
func (e *Env) CreateBooking(c *gin.Context) {
	customerID := middleware.GetUserID(c)

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDateTime(req.Date, req.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time format"})
		return
	}

	b, err := e.Bookings.Create(c.Request.Context(), customerID, req.Pickup, req.Dropoff, req.Date, req.Time)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	e.Metrics.BookingsCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Taxi booked successfully",
		"booking": b,
	})
}

// GetMyBookings lists the logged-in customer's bookings
func (e *Env) GetMyBookings(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	rows, err := e.Bookings.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rows), "bookings": rows})
}

// UpdateBooking edits the trip fields of a booking that has not finished
func (e *Env) UpdateBooking(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDateTime(req.Date, req.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time format"})
		return
	}

	b, err := e.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if b.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to you"})
		return
	}

	if err := e.Bookings.Update(c.Request.Context(), id, req.Pickup, req.Dropoff, req.Date, req.Time); err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking_id": id})
}

// CancelBooking cancels one of the customer's own bookings
func (e *Env) CancelBooking(c *gin.Context) {
	customerID := middleware.GetUserID(c)
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := e.Bookings.Get(c.Request.Context(), id)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	if b.CustomerID != customerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This booking does not belong to you"})
		return
	}

	if err := e.Bookings.CancelByCustomer(c.Request.Context(), id); err != nil {
		respondBookingError(c, err)
		return
	}
	e.Metrics.TransitionsTotal.WithLabelValues(string(models.StatusCancelled)).Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking_id": id})
}
