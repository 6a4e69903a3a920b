package models

// Role defines the fixed set of account roles. A user's role is set at
// registration and never changes.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
	RoleDriver   Role = "Driver"
)

type User struct {
	ID           uint   `json:"id" gorm:"column:user_id;primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password;not null"`
	Role         Role   `json:"role" gorm:"not null"`
	Name         string `json:"name" gorm:"not null"`
	Phone        string `json:"phone"`
}

func (User) TableName() string { return "users" }
