package booking

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"taxi-booking-api/models"
	"taxi-booking-api/store"
)

type fixture struct {
	svc      *Service
	st       *store.Store
	customer *store.AuthUser
	driver   *store.AuthUser
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	ctx := context.Background()
	if err := st.CreateUser(ctx, "alice", "alicepass", models.RoleCustomer, "Alice Smith", "5551234567"); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	if err := st.CreateDriver(ctx, "bob", "bobdriver", "Bob Jones", "5557654321"); err != nil {
		t.Fatalf("create driver: %v", err)
	}
	customer, _ := st.Authenticate(ctx, "alice", "alicepass")
	driver, _ := st.Authenticate(ctx, "bob", "bobdriver")
	return &fixture{svc: NewService(st), st: st, customer: customer, driver: driver}
}

func (f *fixture) mustCreate(t *testing.T, date, timeOfDay string) *models.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), f.customer.ID, "Main St", "Oak Ave", date, timeOfDay)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func (f *fixture) reload(t *testing.T, id uint) *models.Booking {
	t.Helper()
	b, err := f.svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("reload booking %d: %v", id, err)
	}
	return b
}

func TestCreateStartsPendingWithoutDriver(t *testing.T) {
	f := newFixture(t)
	b := f.mustCreate(t, "2024-06-01", "09:00")

	if b.Status != models.StatusPending {
		t.Errorf("new booking status = %s, want Pending", b.Status)
	}
	if b.DriverID != nil {
		t.Errorf("new booking driver = %v, want nil", *b.DriverID)
	}
	if b.ID == 0 {
		t.Error("new booking has no identifier")
	}
}

func TestAssignAvailableDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, "2024-06-01", "09:00")

	if err := f.svc.Assign(ctx, b.ID, f.driver.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	got := f.reload(t, b.ID)
	if got.Status != models.StatusAssigned {
		t.Errorf("status after assign = %s, want Assigned", got.Status)
	}
	if got.DriverID == nil || *got.DriverID != f.driver.ID {
		t.Errorf("driver after assign = %v, want %d", got.DriverID, f.driver.ID)
	}
}

func TestAssignDoubleBookedDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.mustCreate(t, "2024-06-01", "09:00")
	second := f.mustCreate(t, "2024-06-01", "09:00")

	if err := f.svc.Assign(ctx, first.ID, f.driver.ID); err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	err := f.svc.Assign(ctx, second.ID, f.driver.ID)
	if !errors.Is(err, ErrDriverUnavailable) {
		t.Fatalf("second Assign err = %v, want ErrDriverUnavailable", err)
	}

	// Neither booking may change.
	if got := f.reload(t, first.ID); got.Status != models.StatusAssigned {
		t.Errorf("first booking status = %s, want Assigned", got.Status)
	}
	got := f.reload(t, second.ID)
	if got.Status != models.StatusPending {
		t.Errorf("second booking status = %s, want Pending", got.Status)
	}
	if got.DriverID != nil {
		t.Errorf("second booking driver = %v, want nil", *got.DriverID)
	}
}

func TestAssignSameDriverDifferentTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.mustCreate(t, "2024-06-01", "09:00")
	second := f.mustCreate(t, "2024-06-01", "10:30")

	if err := f.svc.Assign(ctx, first.ID, f.driver.ID); err != nil {
		t.Fatalf("first Assign: %v", err)
	}
	if err := f.svc.Assign(ctx, second.ID, f.driver.ID); err != nil {
		t.Fatalf("Assign at different time: %v", err)
	}
}

func TestAssignUnknownBookingAndDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, "2024-06-01", "09:00")

	if err := f.svc.Assign(ctx, 9999, f.driver.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Assign(unknown booking) err = %v, want ErrNotFound", err)
	}
	if err := f.svc.Assign(ctx, b.ID, 9999); !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("Assign(unknown driver) err = %v, want ErrDriverNotFound", err)
	}
	// A customer ID must not be assignable as a driver.
	if err := f.svc.Assign(ctx, b.ID, f.customer.ID); !errors.Is(err, ErrDriverNotFound) {
		t.Errorf("Assign(customer as driver) err = %v, want ErrDriverNotFound", err)
	}
}

func TestUpdateRewritesTripFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, "2024-06-01", "09:00")

	if err := f.svc.Update(ctx, b.ID, "Pine Rd", "Elm St", "2024-06-02", "14:30"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got := f.reload(t, b.ID)
	if got.Pickup != "Pine Rd" || got.Dropoff != "Elm St" || got.Date != "2024-06-02" || got.Time != "14:30" {
		t.Errorf("updated booking = %+v", got)
	}
	if got.Status != models.StatusPending {
		t.Errorf("status after update = %s, want Pending unchanged", got.Status)
	}
}

func TestTerminalBookingRejectsEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, terminal := range []models.Status{models.StatusCompleted, models.StatusCancelled} {
		b := f.mustCreate(t, "2024-07-01", "08:00")
		if err := f.st.DB.Model(&models.Booking{}).Where("booking_id = ?", b.ID).
			Update("status", terminal).Error; err != nil {
			t.Fatalf("force status: %v", err)
		}

		if err := f.svc.Assign(ctx, b.ID, f.driver.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Assign on %s booking err = %v, want ErrInvalidTransition", terminal, err)
		}
		if err := f.svc.Update(ctx, b.ID, "X", "Y", "2024-07-02", "09:00"); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Update on %s booking err = %v, want ErrInvalidTransition", terminal, err)
		}
		if err := f.svc.Complete(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Complete on %s booking err = %v, want ErrInvalidTransition", terminal, err)
		}
		if err := f.svc.CancelByCustomer(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("CancelByCustomer on %s booking err = %v, want ErrInvalidTransition", terminal, err)
		}

		if got := f.reload(t, b.ID); got.Status != terminal {
			t.Errorf("terminal booking status changed to %s", got.Status)
		}
	}
}

func TestCancelByCustomerKeepsDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, "2024-06-01", "09:00")

	if err := f.svc.Assign(ctx, b.ID, f.driver.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := f.svc.CancelByCustomer(ctx, b.ID); err != nil {
		t.Fatalf("CancelByCustomer: %v", err)
	}

	got := f.reload(t, b.ID)
	if got.Status != models.StatusCancelled {
		t.Errorf("status = %s, want Cancelled", got.Status)
	}
	if got.DriverID == nil || *got.DriverID != f.driver.ID {
		t.Error("customer cancel must leave the driver reference in place")
	}

	// Cancelling again must fail; the booking is terminal now.
	if err := f.svc.CancelByCustomer(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("second cancel err = %v, want ErrInvalidTransition", err)
	}
}

func TestCancelByDriverClearsDriver(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.mustCreate(t, "2024-06-01", "09:00")

	if err := f.svc.Assign(ctx, b.ID, f.driver.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := f.svc.CancelByDriver(ctx, b.ID); err != nil {
		t.Fatalf("CancelByDriver: %v", err)
	}

	got := f.reload(t, b.ID)
	if got.Status != models.StatusCancelled {
		t.Errorf("status = %s, want Cancelled", got.Status)
	}
	if got.DriverID != nil {
		t.Errorf("driver after driver cancel = %v, want nil", *got.DriverID)
	}

	// The slot is free again for another booking.
	other := f.mustCreate(t, "2024-06-01", "09:00")
	if err := f.svc.Assign(ctx, other.ID, f.driver.ID); err != nil {
		t.Errorf("driver not released after cancelling: %v", err)
	}
}

func TestCancelByDriverRequiresAssigned(t *testing.T) {
	f := newFixture(t)
	b := f.mustCreate(t, "2024-06-01", "09:00")

	err := f.svc.CancelByDriver(context.Background(), b.ID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("CancelByDriver on Pending err = %v, want ErrInvalidTransition", err)
	}
}

func TestCompleteRequiresAssigned(t *testing.T) {
	f := newFixture(t)
	b := f.mustCreate(t, "2024-06-01", "09:00")

	err := f.svc.Complete(context.Background(), b.ID)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Complete on Pending err = %v, want ErrInvalidTransition", err)
	}
}

// Full lifecycle: book, assign, complete, then nothing else is allowed.
func TestTripLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b := f.mustCreate(t, "2024-06-01", "09:00")
	if b.Status != models.StatusPending || b.DriverID != nil {
		t.Fatalf("fresh booking = %+v", b)
	}

	if err := f.svc.Assign(ctx, b.ID, f.driver.ID); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if got := f.reload(t, b.ID); got.Status != models.StatusAssigned {
		t.Fatalf("after assign: %s", got.Status)
	}

	if err := f.svc.Complete(ctx, b.ID); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got := f.reload(t, b.ID); got.Status != models.StatusCompleted {
		t.Fatalf("after complete: %s", got.Status)
	}

	for name, cancel := range map[string]func(context.Context, uint) error{
		"customer": f.svc.CancelByCustomer,
		"driver":   f.svc.CancelByDriver,
	} {
		if err := cancel(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s cancel of completed trip err = %v, want ErrInvalidTransition", name, err)
		}
	}
}

func TestGetUnknownBooking(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(context.Background(), 42)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(42) err = %v, want ErrNotFound", err)
	}
}
