package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/statemachine"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewOrderHandler(db *gorm.DB, log *zap.Logger) *OrderHandler {
	return &OrderHandler{db: db, log: log}
}

type PlaceOrderRequest struct {
	UserID uint `json:"userId" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Actor  string `json:"actor"`
}

// PlaceOrder snapshots the user's cart into an order. Availability is
// re-checked for every line at this moment, and prices are read fresh rather
// than trusted from the cart. Order creation and cart clearing commit
// together or not at all.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var cart models.Cart
	err := h.db.Where("user_id = ?", req.UserID).Preload("Items.Food").First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && len(cart.Items) == 0) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot place order with empty cart"})
		return
	}
	if err != nil {
		h.log.Error("failed to load cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	var unavailable []gin.H
	for _, item := range cart.Items {
		if !item.Food.IsAvailable {
			unavailable = append(unavailable, gin.H{
				"foodId": item.FoodID,
				"name":   item.Food.Name,
			})
		}
	}
	if len(unavailable) > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"message":          "Some cart items are unavailable",
			"unavailableItems": unavailable,
		})
		return
	}

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	var total float64
	for _, item := range cart.Items {
		subtotal := item.Food.Price * float64(item.Quantity)
		total += subtotal
		orderItems = append(orderItems, models.OrderItem{
			FoodID:   item.FoodID,
			Name:     item.Food.Name,
			Price:    item.Food.Price,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
	}

	order := models.Order{
		UserID:     req.UserID,
		Items:      orderItems,
		TotalPrice: total,
		Status:     models.StatusPending,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:  order.ID,
			ToStatus: models.StatusPending,
			Actor:    "customer",
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		h.log.Error("failed to place order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to place order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order created successfully",
		"order":   order,
	})
}

// GetOrder returns a single order with its line items.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid order ID")
	if !ok {
		return
	}

	var order models.Order
	if err := h.db.Preload("Items").Preload("StatusHistory").First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// GetUserOrders returns all orders for a user, newest first.
func (h *OrderHandler) GetUserOrders(c *gin.Context) {
	userID, ok := parseID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	var orders []models.Order
	if err := h.db.Preload("Items").Where("user_id = ?", userID).Order("created_at desc").Find(&orders).Error; err != nil {
		h.log.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// UpdateStatus moves an order through its lifecycle. Terminal orders reject
// every update. A transition to Cancelled records who cancelled: "admin"
// when the caller says so, "customer" otherwise.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid order ID")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	newStatus := models.OrderStatus(req.Status)
	if !statemachine.IsValid(newStatus) {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":         "Invalid order status",
			"allowedStatuses": statemachine.AllStatuses,
		})
		return
	}

	var order models.Order
	if err := h.db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, newStatus); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"message": fmt.Sprintf("Cannot update order from terminal status: %s", order.Status),
		})
		return
	}

	prevStatus := order.Status
	updates := map[string]interface{}{"status": newStatus}
	message := "Order status updated"

	if newStatus == models.StatusCancelled {
		cancelledBy := models.CancelledByCustomer
		if req.Actor == models.CancelledByAdmin {
			cancelledBy = models.CancelledByAdmin
		}
		updates["cancelled_by"] = cancelledBy
		order.CancelledBy = cancelledBy
		message = fmt.Sprintf("Order cancelled by %s", cancelledBy)
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   newStatus,
			Actor:      req.Actor,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		h.log.Error("failed to update order status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update order status"})
		return
	}

	order.Status = newStatus
	c.JSON(http.StatusOK, gin.H{"message": message, "order": order})
}
