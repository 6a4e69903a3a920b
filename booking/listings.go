package booking

import (
	"context"
	"fmt"

	"taxi-booking-api/models"
)

// AdminRow is one line of the all-bookings view: every booking joined with
// its customer and driver names.
type AdminRow struct {
	ID       uint          `json:"id"`
	Customer string        `json:"customer"`
	Pickup   string        `json:"pickup_location"`
	Dropoff  string        `json:"dropoff_location"`
	Date     string        `json:"booking_date"`
	Time     string        `json:"booking_time"`
	Driver   string        `json:"driver"`
	Status   models.Status `json:"status"`
}

// CustomerRow is one line of a customer's own bookings.
type CustomerRow struct {
	ID      uint          `json:"id"`
	Pickup  string        `json:"pickup_location"`
	Dropoff string        `json:"dropoff_location"`
	Date    string        `json:"booking_date"`
	Time    string        `json:"booking_time"`
	Driver  string        `json:"driver"`
	Status  models.Status `json:"status"`
}

// DriverRow is one line of a driver's trip sheet, including the customer's
// contact phone.
type DriverRow struct {
	ID       uint          `json:"id"`
	Customer string        `json:"customer"`
	Phone    string        `json:"phone"`
	Pickup   string        `json:"pickup_location"`
	Dropoff  string        `json:"dropoff_location"`
	Date     string        `json:"booking_date"`
	Time     string        `json:"booking_time"`
	Status   models.Status `json:"status"`
}

const listingOrder = "bookings.booking_date DESC, bookings.booking_time DESC"

// ListAll returns every booking for the admin view, newest trip date first.
func (s *Service) ListAll(ctx context.Context) ([]AdminRow, error) {
	var rows []AdminRow
	err := s.store.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.booking_id AS id, c.name AS customer,"+
			" bookings.pickup_location AS pickup, bookings.dropoff_location AS dropoff,"+
			" bookings.booking_date AS date, bookings.booking_time AS time,"+
			" COALESCE(d.name, ?) AS driver, bookings.status", models.NotAssigned).
		Joins("JOIN users c ON bookings.customer_id = c.user_id").
		Joins("LEFT JOIN users d ON bookings.driver_id = d.user_id").
		Order(listingOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return rows, nil
}

// ListByCustomer returns the bookings the customer created.
func (s *Service) ListByCustomer(ctx context.Context, customerID uint) ([]CustomerRow, error) {
	var rows []CustomerRow
	err := s.store.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.booking_id AS id,"+
			" bookings.pickup_location AS pickup, bookings.dropoff_location AS dropoff,"+
			" bookings.booking_date AS date, bookings.booking_time AS time,"+
			" COALESCE(d.name, ?) AS driver, bookings.status", models.NotAssigned).
		Joins("LEFT JOIN users d ON bookings.driver_id = d.user_id").
		Where("bookings.customer_id = ?", customerID).
		Order(listingOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list customer bookings: %w", err)
	}
	return rows, nil
}

// ListByDriver returns the trips assigned to the driver.
func (s *Service) ListByDriver(ctx context.Context, driverID uint) ([]DriverRow, error) {
	var rows []DriverRow
	err := s.store.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Select("bookings.booking_id AS id, c.name AS customer, c.phone AS phone," +
			" bookings.pickup_location AS pickup, bookings.dropoff_location AS dropoff," +
			" bookings.booking_date AS date, bookings.booking_time AS time, bookings.status").
		Joins("JOIN users c ON bookings.customer_id = c.user_id").
		Where("bookings.driver_id = ?", driverID).
		Order(listingOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list driver trips: %w", err)
	}
	return rows, nil
}
