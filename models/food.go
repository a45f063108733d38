package models

import "time"

// Food is a catalog item. Deletion is modeled as IsAvailable=false — there is
// no hard-delete path anywhere in the system.
//
// IsAvailable must not carry a gorm default tag: GORM omits zero-value fields
// of defaulted columns from the INSERT, turning an explicit false into true.
// The create handler applies the default instead.
type Food struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
