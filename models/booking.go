package models

import "time"

// Status represents the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAssigned  Status = "Assigned"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// NotAssigned is the driver-name placeholder shown while a booking has no
// driver.
const NotAssigned = "Not Assigned"

type Booking struct {
	ID         uint      `json:"id" gorm:"column:booking_id;primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"not null"`
	Customer   User      `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	DriverID   *uint     `json:"driver_id"`
	Driver     *User     `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Pickup     string    `json:"pickup_location" gorm:"column:pickup_location;not null"`
	Dropoff    string    `json:"dropoff_location" gorm:"column:dropoff_location;not null"`
	// Date and Time are stored as "2006-01-02" and "15:04" strings. Listings
	// sort them lexicographically, which matches calendar order for this
	// format.
	Date      string    `json:"booking_date" gorm:"column:booking_date;not null"`
	Time      string    `json:"booking_time" gorm:"column:booking_time;not null"`
	Status    Status    `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt time.Time `json:"created_at"`
}

func (Booking) TableName() string { return "bookings" }
