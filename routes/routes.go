package routes

import (
	"food-ordering-api/handlers"
	"food-ordering-api/middleware"
	"food-ordering-api/models"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything SetupRoutes needs to mount.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Food      *handlers.FoodHandler
	Cart      *handlers.CartHandler
	Order     *handlers.OrderHandler
	JWTSecret []byte
}

func SetupRoutes(r *gin.Engine, h Handlers) {
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/verify-otp", h.Auth.VerifyOTP)
		auth.POST("/resend-otp", h.Auth.ResendOTP)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", middleware.AuthRequired(h.JWTSecret), h.Auth.Me)
	}

	foods := api.Group("/foods")
	{
		foods.GET("", h.Food.List)

		// catalog mutations are admin operations
		manage := foods.Group("")
		manage.Use(middleware.AuthRequired(h.JWTSecret), middleware.RoleRequired(models.RoleAdmin))
		{
			manage.POST("", h.Food.Create)
			manage.PATCH("/:id", h.Food.Update)
			manage.DELETE("/:id", h.Food.SoftDelete) // soft delete only
		}
	}

	cart := api.Group("/cart")
	{
		cart.POST("", h.Cart.AddItem)
		cart.GET("/:userId", h.Cart.GetCart)
		cart.DELETE("/:userId/clear", h.Cart.ClearCart)
	}

	orders := api.Group("/orders")
	{
		orders.POST("", h.Order.PlaceOrder)
		orders.GET("/:id", h.Order.GetOrder)
		orders.PATCH("/:id/status", h.Order.UpdateStatus)
	}

	api.GET("/users/:userId/orders", h.Order.GetUserOrders)
}
