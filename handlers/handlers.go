package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"taxi-booking-api/booking"
	"taxi-booking-api/middleware"
	"taxi-booking-api/store"

	"github.com/gin-gonic/gin"
)

// Env carries the dependencies every handler needs. It is built once in
// main and shared; handlers never reach for globals.
type Env struct {
	Store    *store.Store
	Bookings *booking.Service
	Tokens   *middleware.TokenIssuer
	Metrics  *middleware.Metrics
}

// Stored date and time layouts, the same formats the booking form accepted.
const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func validDateTime(date, timeOfDay string) bool {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return false
	}
	if _, err := time.Parse(timeLayout, timeOfDay); err != nil {
		return false
	}
	return true
}

// bookingIDParam parses the :id path segment.
func bookingIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return 0, false
	}
	return uint(id), true
}

// respondBookingError maps workflow errors onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, booking.ErrDriverNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Driver not found"})
	case errors.Is(err, booking.ErrDriverUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Driver has an overlapping booking at this time"})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage error"})
	}
}
