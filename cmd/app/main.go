package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	dbadapter "blogly/internal/adapters/database"
	"blogly/internal/adapters/httpapi"
	redisadapter "blogly/internal/adapters/redis"
	"blogly/internal/config"
	commentapp "blogly/internal/core/comment/service"
	postapp "blogly/internal/core/post/service"
	userapp "blogly/internal/core/user/service"
	sessionPort "blogly/internal/ports/session"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.InitLogger("info", false)
		config.Logger.Fatal("Loading configuration failed", zap.Error(err))
	}
	config.InitLogger(cfg.LogLevel, cfg.Debug)
	defer config.Logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		config.Logger.Fatal("Database connection failed", zap.Error(err))
	}
	defer config.CloseDB(db)

	if err := dbadapter.Migrate(db); err != nil {
		config.Logger.Fatal("Error during migrations", zap.Error(err))
	}
	config.Logger.Info("Database migrations completed")

	sqlDB, err := db.DB()
	if err != nil {
		config.Logger.Fatal("Error getting raw DB", zap.Error(err))
	}

	// Session revocation is optional; without Redis, logout only clears the cookie.
	var revoker sessionPort.Revoker
	if cfg.RedisAddr != "" {
		client, err := config.InitRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			config.Logger.Fatal("Redis connection failed", zap.Error(err))
		}
		defer closeRedis(client)
		revoker = redisadapter.NewSessionRevokerRedis(client)
	}

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	userSvc := userapp.NewUserService(userRepo, revoker, []byte(cfg.SecretKey), cfg.SessionTTL)
	postSvc := postapp.NewPostService(postRepo)
	commentSvc := commentapp.NewCommentService(commentRepo)
	r := httpapi.SetupRoutes(userSvc, postSvc, commentSvc, sqlDB, httpapi.Options{
		SecureCookies: cfg.CookieSecure,
		Debug:         cfg.Debug,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Info("App is running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	config.Logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func closeRedis(client *redis.Client) {
	if err := client.Close(); err != nil {
		config.Logger.Error("Error closing Redis connection", zap.Error(err))
	}
}
