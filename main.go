package main

import (
	"context"
	"log"
	"net/http"

	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/logger"
	"food-ordering-api/mailer"
	"food-ordering-api/otp"
	"food-ordering-api/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg.DBPath)
	if err != nil {
		zlog.Fatal("database init failed", zap.Error(err))
	}

	redisClient, err := otp.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		zlog.Fatal("redis init failed", zap.Error(err))
	}
	codes := otp.NewRedisStore(redisClient)

	mail, err := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SenderName)
	if err != nil {
		zlog.Fatal("mailer init failed", zap.Error(err))
	}

	secret := []byte(cfg.JWTSecret)

	r := gin.New()
	r.Use(logger.RequestLogger(zlog), gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "food-ordering-api"})
	})

	routes.SetupRoutes(r, routes.Handlers{
		Auth:      handlers.NewAuthHandler(db, codes, mail, secret, zlog),
		Food:      handlers.NewFoodHandler(db, zlog),
		Cart:      handlers.NewCartHandler(db, zlog),
		Order:     handlers.NewOrderHandler(db, zlog),
		JWTSecret: secret,
	})

	zlog.Info("server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("server failed", zap.Error(err))
	}
}
