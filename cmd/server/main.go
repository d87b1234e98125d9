package main

import (
	"log"
	"net/http"
	"time"

	_ "movievault/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"movievault/internal/cache"
	"movievault/internal/config"
	"movievault/internal/db"
	"movievault/internal/handler"
	"movievault/internal/model"
	"movievault/internal/repository"
	"movievault/internal/router"
	"movievault/internal/service"
	"movievault/internal/session"
)

// @title Movie Vault API
// @version 1.0
// @description Personal movie tracking backend: watchlist, reviews, and session authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token returned by login.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Session registry: in-process by default, Redis-backed when configured
	// so sessions survive restarts and are shared across instances.
	sessionTTL := time.Duration(cfg.SessionTTLMinutes) * time.Minute
	var registry session.Registry
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		registry = session.NewRedisRegistry(redisClient, sessionTTL)
		log.Println("Session store: redis")
	default:
		registry = session.NewMemoryRegistry(sessionTTL)
		log.Println("Session store: memory (sessions do not survive restarts)")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	movieRepo := repository.NewMovieRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Initialize services
	authService := service.NewAuthService(userRepo, registry)
	watchlistService := service.NewWatchlistService(movieRepo, cacheClient)
	reviewService := service.NewReviewService(movieRepo, reviewRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	movieHandler := handler.NewMovieHandler(watchlistService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	healthHandler := handler.NewHealthHandler(gormDB)

	// Register routes
	router.Register(
		e,
		registry,
		authHandler,
		movieHandler,
		reviewHandler,
		healthHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
