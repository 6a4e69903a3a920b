// Package booking implements the trip lifecycle: creation, driver
// assignment, field edits, completion and cancellation, plus the role-scoped
// listings each dashboard shows. All status changes go through the
// transition table in the statemachine package, and every transition is a
// single UPDATE so a rejected operation leaves no partial state behind.
package booking

import (
	"context"
	"errors"
	"fmt"

	"taxi-booking-api/models"
	"taxi-booking-api/statemachine"
	"taxi-booking-api/store"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports an unknown booking identifier.
	ErrNotFound = errors.New("booking not found")
	// ErrInvalidTransition reports a status change the state machine
	// rejects, including any operation on a Completed or Cancelled booking.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrDriverUnavailable reports that the driver already holds a live
	// booking at the same date and time.
	ErrDriverUnavailable = errors.New("driver has an overlapping booking at this time")
	// ErrDriverNotFound reports an assignment target that is not a
	// Driver-role user.
	ErrDriverNotFound = errors.New("driver not found")
)

// Service is the booking workflow. Presentation code calls these named
// operations only; no raw queries live outside this package and the store.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// Create records a new trip request for the customer. New bookings start
// Pending with no driver.
func (s *Service) Create(ctx context.Context, customerID uint, pickup, dropoff, date, timeOfDay string) (*models.Booking, error) {
	b := models.Booking{
		CustomerID: customerID,
		Pickup:     pickup,
		Dropoff:    dropoff,
		Date:       date,
		Time:       timeOfDay,
		Status:     models.StatusPending,
	}
	if err := s.store.DB.WithContext(ctx).Create(&b).Error; err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &b, nil
}

// Get returns a booking by id.
func (s *Service) Get(ctx context.Context, bookingID uint) (*models.Booking, error) {
	var b models.Booking
	err := s.store.DB.WithContext(ctx).First(&b, "booking_id = ?", bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	return &b, nil
}

// Update overwrites the four trip fields of a booking that has not finished.
// The status is left untouched.
func (s *Service) Update(ctx context.Context, bookingID uint, pickup, dropoff, date, timeOfDay string) error {
	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.Status.IsTerminal() {
		return fmt.Errorf("%w: cannot update %s booking", ErrInvalidTransition, b.Status)
	}
	err = s.store.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]interface{}{
			"pickup_location":  pickup,
			"dropoff_location": dropoff,
			"booking_date":     date,
			"booking_time":     timeOfDay,
		}).Error
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

// Assign puts a driver on a pending booking. The driver must have no other
// live booking at the same date and time.
func (s *Service) Assign(ctx context.Context, bookingID, driverID uint) error {
	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := statemachine.CanTransition(b.Status, models.StatusAssigned, "admin"); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
	}
	driver, err := s.store.GetDriver(ctx, driverID)
	if err != nil {
		return err
	}
	if driver == nil {
		return ErrDriverNotFound
	}
	available, err := s.store.IsDriverAvailable(ctx, driverID, b.Date, b.Time)
	if err != nil {
		return err
	}
	if !available {
		return ErrDriverUnavailable
	}
	err = s.store.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]interface{}{
			"driver_id": driverID,
			"status":    models.StatusAssigned,
		}).Error
	if err != nil {
		return fmt.Errorf("assign driver: %w", err)
	}
	return nil
}

// CancelByCustomer cancels a booking from any non-terminal status. The
// driver reference, if any, is left in place.
func (s *Service) CancelByCustomer(ctx context.Context, bookingID uint) error {
	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := statemachine.CanTransition(b.Status, models.StatusCancelled, "customer"); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
	}
	err = s.store.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Update("status", models.StatusCancelled).Error
	if err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}
	return nil
}

// CancelByDriver cancels an assigned trip and releases the driver from it.
func (s *Service) CancelByDriver(ctx context.Context, bookingID uint) error {
	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := statemachine.CanTransition(b.Status, models.StatusCancelled, "driver"); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
	}
	err = s.store.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":    models.StatusCancelled,
			"driver_id": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("cancel trip: %w", err)
	}
	return nil
}

// Complete marks an assigned trip as finished.
func (s *Service) Complete(ctx context.Context, bookingID uint) error {
	b, err := s.Get(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := statemachine.CanTransition(b.Status, models.StatusCompleted, "driver"); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, err.Error())
	}
	err = s.store.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("booking_id = ?", bookingID).
		Update("status", models.StatusCompleted).Error
	if err != nil {
		return fmt.Errorf("complete trip: %w", err)
	}
	return nil
}
