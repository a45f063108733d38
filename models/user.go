package models

import "time"

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User accounts sign up with an email, a phone, or both. Email and phone are
// pointers so the unique indexes only bite when a value is actually present.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Email        *string   `json:"email,omitempty" gorm:"uniqueIndex"`
	Phone        *string   `json:"phone,omitempty" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	ReferralCode string    `json:"referral_code,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
