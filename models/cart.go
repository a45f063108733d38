package models

import "time"

// Cart is owned 1:1 by a user and created lazily on the first add. Clearing
// empties the items but keeps the cart row.
type Cart struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	UserID    uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem holds a live food reference. Each food appears at most once per
// cart; re-adding increments Quantity instead of duplicating the line.
type CartItem struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	CartID   uint `json:"cart_id" gorm:"not null;index"`
	FoodID   uint `json:"food_id" gorm:"not null"`
	Food     Food `json:"food,omitempty" gorm:"foreignKey:FoodID"`
	Quantity int  `json:"quantity" gorm:"not null"`
}
