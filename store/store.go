package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"taxi-booking-api/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUsernameTaken is returned when registration collides with an existing
// username. It is the only storage failure treated as recoverable.
var ErrUsernameTaken = errors.New("username already exists")

// Default admin account seeded on first run.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
	defaultAdminName     = "System Admin"
	defaultAdminPhone    = "1234567890"
)

// Store owns the database handle. It is opened once at process start and
// passed to every component that needs it; nothing else touches the
// connection.
type Store struct {
	DB *gorm.DB
}

// Open connects to the SQLite database at path, creates the schema if it is
// absent and seeds the default admin account. Safe to call against an
// existing database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Booking{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	s := &Store{DB: db}
	if err := s.seedAdmin(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) seedAdmin() error {
	var existing models.User
	err := s.DB.Where("username = ?", defaultAdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("seed admin: %w", err)
	}
	admin := models.User{
		Username:     defaultAdminUsername,
		PasswordHash: HashPassword(defaultAdminPassword),
		Role:         models.RoleAdmin,
		Name:         defaultAdminName,
		Phone:        defaultAdminPhone,
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

// HashPassword computes the stored credential digest: unsalted SHA-256 hex.
// Credentials are matched by exact digest comparison in the login query, so
// the digest must be deterministic. Not suitable for anything beyond the
// trusted single-machine deployment this system targets.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// AuthUser is the identity returned by a successful login.
type AuthUser struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	Name     string      `json:"name"`
}

// Authenticate matches username and password digest exactly. A wrong
// username or password returns (nil, nil): a negative result, not an error,
// so callers cannot distinguish the two cases.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*AuthUser, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Where("username = ? AND password = ?", username, HashPassword(password)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return &AuthUser{ID: user.ID, Username: user.Username, Role: user.Role, Name: user.Name}, nil
}

// CreateUser inserts a new account with the hashed credential. A taken
// username reports ErrUsernameTaken.
func (s *Store) CreateUser(ctx context.Context, username, password string, role models.Role, name, phone string) error {
	var existing models.User
	err := s.DB.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("create user: %w", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: HashPassword(password),
		Role:         role,
		Name:         name,
		Phone:        phone,
	}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// CreateDriver is CreateUser with the role fixed to Driver.
func (s *Store) CreateDriver(ctx context.Context, username, password, name, phone string) error {
	return s.CreateUser(ctx, username, password, models.RoleDriver, name, phone)
}

// GetDriver returns the Driver-role user with the given id, or nil when no
// such driver exists.
func (s *Store) GetDriver(ctx context.Context, driverID uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND role = ?", driverID, models.RoleDriver).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &user, nil
}

// DriverOption is a driver identity suitable for an assignment picker.
type DriverOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListDrivers returns every Driver-role user in storage order.
func (s *Store) ListDrivers(ctx context.Context) ([]DriverOption, error) {
	var drivers []DriverOption
	err := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Select("user_id as id, name").
		Where("role = ?", models.RoleDriver).
		Find(&drivers).Error
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

// IsDriverAvailable reports whether the driver has no non-terminal booking
// at exactly the given date and time. Exact match only; there is no overlap
// window or trip-duration modeling.
func (s *Store) IsDriverAvailable(ctx context.Context, driverID uint, date, timeOfDay string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&models.Booking{}).
		Where("driver_id = ? AND booking_date = ? AND booking_time = ?", driverID, date, timeOfDay).
		Where("status NOT IN ?", []models.Status{models.StatusCancelled, models.StatusCompleted}).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check driver availability: %w", err)
	}
	return count == 0, nil
}
