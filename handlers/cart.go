package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CartHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCartHandler(db *gorm.DB, log *zap.Logger) *CartHandler {
	return &CartHandler{db: db, log: log}
}

type AddToCartRequest struct {
	UserID   uint `json:"userId" binding:"required"`
	FoodID   uint `json:"foodId" binding:"required"`
	Quantity *int `json:"quantity"`
}

// AddItem puts a food into the user's cart. The cart is created lazily on
// the first add; re-adding a food already in the cart increments its
// quantity instead of appending a second line.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "quantity must be an integer >= 1"})
			return
		}
		quantity = *req.Quantity
	}

	var food models.Food
	if err := h.db.First(&food, req.FoodID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
		return
	}
	if !food.IsAvailable {
		c.JSON(http.StatusConflict, gin.H{"message": "Food is currently unavailable"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Where("user_id = ?", req.UserID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Cart{
				UserID: req.UserID,
				Items:  []models.CartItem{{FoodID: req.FoodID, Quantity: quantity}},
			}
			return tx.Create(&cart).Error
		}
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND food_id = ?", cart.ID, req.FoodID).First(&item).Error
		if err == nil {
			return tx.Model(&item).Update("quantity", item.Quantity+quantity).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.CartItem{CartID: cart.ID, FoodID: req.FoodID, Quantity: quantity}).Error
	})
	if err != nil {
		h.log.Error("failed to update cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	cart, err := h.loadCart(req.UserID)
	if err != nil {
		h.log.Error("failed to load cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart updated", "cart": cart})
}

// GetCart returns the user's cart with food details resolved. A user with no
// cart gets an empty synthetic one; nothing is persisted.
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, ok := parseID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	cart, err := h.loadCart(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{"cart": models.Cart{UserID: userID, Items: []models.CartItem{}}})
		return
	}
	if err != nil {
		h.log.Error("failed to load cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": cart})
}

// ClearCart empties the item list. A user with no cart gets an empty one
// created (upsert semantics).
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := parseID(c, "userId", "Invalid user ID")
	if !ok {
		return
	}

	var cart models.Cart
	err := h.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Cart{UserID: userID}
			return tx.Create(&cart).Error
		}
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		h.log.Error("failed to clear cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	cart.Items = []models.CartItem{}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": cart})
}

func (h *CartHandler) loadCart(userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := h.db.Where("user_id = ?", userID).Preload("Items.Food").First(&cart).Error
	if err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}
