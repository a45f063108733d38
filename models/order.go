package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusCompleted      OrderStatus = "Completed"
	StatusCancelled      OrderStatus = "Cancelled"
)

// Who cancelled an order, recorded only when the order reaches Cancelled.
const (
	CancelledByCustomer = "customer"
	CancelledByAdmin    = "admin"
)

// Order is a snapshot of a cart at placement time. Items copy the food's name
// and price as they were when the order was created; only Status and
// CancelledBy ever change afterwards.
type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	UserID        uint                 `json:"user_id" gorm:"not null;index"`
	Items         []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	TotalPrice    float64              `json:"total_price" gorm:"not null"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'Pending'"`
	CancelledBy   string               `json:"cancelled_by,omitempty"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"not null;index"`
	FoodID   uint    `json:"food_id" gorm:"not null"`
	Name     string  `json:"name" gorm:"not null"`          // snapshot name
	Price    float64 `json:"price" gorm:"not null"`         // snapshot price at time of order
	Quantity int     `json:"quantity" gorm:"not null"`
	Subtotal float64 `json:"subtotal" gorm:"not null"`
}

// OrderStatusHistory tracks every status change — audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	Actor      string      `json:"actor"`
	CreatedAt  time.Time   `json:"created_at"`
}
