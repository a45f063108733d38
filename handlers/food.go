package handlers

import (
	"net/http"
	"strings"

	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type FoodHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewFoodHandler(db *gorm.DB, log *zap.Logger) *FoodHandler {
	return &FoodHandler{db: db, log: log}
}

type CreateFoodRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	IsAvailable *bool    `json:"isAvailable"`
}

type UpdateFoodRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsAvailable *bool    `json:"isAvailable"`
}

// List returns all currently available foods, newest first.
func (h *FoodHandler) List(c *gin.Context) {
	var foods []models.Food
	if err := h.db.Where("is_available = ?", true).Order("created_at desc").Find(&foods).Error; err != nil {
		h.log.Error("failed to list foods", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

// Create adds a catalog item. Availability defaults to true.
func (h *FoodHandler) Create(c *gin.Context) {
	var req CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and description must be non-empty"})
		return
	}

	food := models.Food{
		Name:        name,
		Description: description,
		Price:       *req.Price,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		food.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Create(&food).Error; err != nil {
		h.log.Error("failed to create food", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create food"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Food created", "food": food})
}

// Update applies a partial update. Each provided field is validated on its
// own; a request carrying no fields is rejected.
func (h *FoodHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid food ID")
	if !ok {
		return
	}

	var req UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	updates := map[string]interface{}{}

	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "price must be a non-negative number"})
			return
		}
		updates["price"] = *req.Price
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "name must be a non-empty string"})
			return
		}
		updates["name"] = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "description must be a non-empty string"})
			return
		}
		updates["description"] = description
	}

	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No valid fields to update"})
		return
	}

	var food models.Food
	if err := h.db.First(&food, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
		return
	}

	if err := h.db.Model(&food).Updates(updates).Error; err != nil {
		h.log.Error("failed to update food", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update food"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food updated", "food": food})
}

// SoftDelete marks a food unavailable. The record itself is never removed.
func (h *FoodHandler) SoftDelete(c *gin.Context) {
	id, ok := parseID(c, "id", "Invalid food ID")
	if !ok {
		return
	}

	var food models.Food
	if err := h.db.First(&food, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Food not found"})
		return
	}

	if err := h.db.Model(&food).Update("is_available", false).Error; err != nil {
		h.log.Error("failed to soft-delete food", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update food"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Food marked unavailable", "food": food})
}
