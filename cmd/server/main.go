package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/taskhive/taskhive/internal/api"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/db"
	"github.com/taskhive/taskhive/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := utils.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger := utils.MustNewLogger(cfg.Logging)
	defer logger.Sync()

	ctx := context.Background()

	var store db.Store
	if cfg.Mongo.URI == "" {
		logger.Warn("MONGO_URI not set; using in-memory store, data will not survive restarts")
		store = db.NewMemory()
	} else {
		mongoStore, err := db.NewMongo(ctx, cfg.Mongo)
		if err != nil {
			logger.Fatal("mongo connect failed", zap.Error(err))
		}
		defer func() {
			if err := mongoStore.Close(context.Background()); err != nil {
				logger.Warn("mongo close failed", zap.Error(err))
			}
		}()

		if err := mongoStore.EnsureIndexes(ctx); err != nil {
			logger.Fatal("mongo ensure indexes failed", zap.Error(err))
		}
		store = mongoStore
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("token issuer init failed", zap.Error(err))
	}

	authService := auth.NewService(store, issuer)
	router := setupRouter(authService, store, cfg.Upload.AvatarMaxBytes)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped cleanly")
}

func setupRouter(authService *auth.Service, store db.Store, avatarMaxBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api.NewHandler(authService, store, avatarMaxBytes).RegisterRoutes(router)

	return router
}
