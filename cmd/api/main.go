package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/config"
	"github.com/topexschool/portal-backend/internal/handler"
	"github.com/topexschool/portal-backend/internal/middleware"
	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/repository"
	"github.com/topexschool/portal-backend/internal/service"
	"github.com/topexschool/portal-backend/internal/session"
	"github.com/topexschool/portal-backend/internal/validation"
	"github.com/topexschool/portal-backend/pkg/database"
	"github.com/topexschool/portal-backend/pkg/email"
	"github.com/topexschool/portal-backend/pkg/i18n"
	jwtPkg "github.com/topexschool/portal-backend/pkg/jwt"
	"github.com/topexschool/portal-backend/pkg/logger"
	"github.com/topexschool/portal-backend/pkg/utils"
)

func main() {
	// Load .env; a missing file is fine in containers
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatal("Error loading .env file: ", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := database.NewDatabase(cfg.DatabaseURL, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(ctx).Err(); err != nil {
		cancel()
		zlog.Fatal("failed to connect to redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	cancel()

	// Repositories
	credentialRepo := repository.NewCredentialRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	roles := models.DefaultRoleTable()
	tokens := jwtPkg.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	// Services
	identityService := service.NewIdentityService(credentialRepo, zlog)
	userService := service.NewUserService(profileRepo, roles, sessions, zlog)

	if cfg.Admin.Email != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := service.SeedAdmin(ctx, identityService, profileRepo, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName, zlog)
		cancel()
		if err != nil {
			zlog.Fatal("failed to seed admin", zap.Error(err))
		}
	}

	// Email service is optional
	var mailer handler.WelcomeMailer
	if cfg.EmailEnabled() {
		mailer = email.NewEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress, cfg.Email.FromName, zlog)
	} else {
		zlog.Warn("RESEND_API_KEY not set, welcome emails disabled")
	}

	// Handlers
	authHandler := handler.NewAuthHandler(handler.AuthHandlerDeps{
		Identity:  identityService,
		Profiles:  profileRepo,
		Roles:     roles,
		Validator: validation.New(utils.NewValidator()),
		Catalog:   i18n.NewCatalog(),
		Tokens:    tokens,
		Sessions:  sessions,
		Mailer:    mailer,
		Logger:    zlog,
	})
	userHandler := handler.NewUserHandler(userService)

	app := handler.NewFiberApp(handler.AppConfig{
		AllowOrigins: cfg.AllowOrigins,
		RateLimitMax: cfg.RateLimitMax,
		AccessLog:    true,
	}, authHandler, userHandler, handler.Middlewares{
		Auth:  middleware.AuthMiddleware(tokens, sessions, zlog),
		Admin: middleware.RequireAdmin(roles, profileRepo, zlog),
	}, zlog)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}

	if err := authHandler.Drain(); err != nil {
		zlog.Warn("background work failed", zap.Error(err))
	}
}
