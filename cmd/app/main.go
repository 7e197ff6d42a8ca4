package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"e1xp_creator_backend/internal/api"
	"e1xp_creator_backend/internal/middleware"
	"e1xp_creator_backend/internal/repository"
	"e1xp_creator_backend/internal/service"
	"e1xp_creator_backend/pkg/auth"
	"e1xp_creator_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	walletAuth := auth.NewWalletAuth(cfg.WalletAuth.Secret, cfg.WalletAuth.DebugMode)

	hub := api.NewNotificationHub()
	notificationService := service.NewNotificationService(repo, hub)
	creatorService := service.NewCreatorService(repo)
	streakService := service.NewStreakService(repo, notificationService, service.UTCClock{})
	referralService := service.NewReferralService(repo, notificationService)
	coinService := service.NewCoinService(repo, notificationService)
	followService := service.NewFollowService(repo)
	commentService := service.NewCommentService(repo)

	authz := middleware.NewAuthorization(creatorService)

	router := gin.New()
	router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.AllowCredentials = true
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute))

	a := router.Group("/api/v1")
	api.NewCreatorRoutes(a, creatorService, walletAuth)
	api.NewStreakRoutes(a, streakService, walletAuth)
	api.NewReferralRoutes(a, referralService, walletAuth)
	api.NewNotificationRoutes(a, notificationService, hub, walletAuth)
	api.NewCoinRoutes(a, coinService, walletAuth, authz)
	api.NewFollowRoutes(a, followService, walletAuth)
	api.NewCommentRoutes(a, commentService, walletAuth)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
