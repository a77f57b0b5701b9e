package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
)

type AppConfig struct {
	AllowOrigins string
	// RateLimitMax is requests per minute per IP; 0 disables the limiter.
	RateLimitMax int
	AccessLog    bool
}

type Middlewares struct {
	Auth  fiber.Handler
	Admin fiber.Handler
}

func NewFiberApp(cfg AppConfig, authHandler *AuthHandler, userHandler *UserHandler, mw Middlewares, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler(log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
		// cors panics on credentials with a wildcard origin.
		AllowCredentials: !strings.Contains(cfg.AllowOrigins, "*"),
	}))
	if cfg.AccessLog {
		app.Use(logger.New())
	}
	if cfg.RateLimitMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
		}))
	}

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", mw.Auth, authHandler.Logout)

	user := api.Group("/user", mw.Auth)
	user.Get("/profile", userHandler.GetMyProfile)

	admin := api.Group("/admin", mw.Auth, mw.Admin)
	admin.Get("/profiles", userHandler.ListProfiles)
	admin.Put("/profiles/:userId/role", userHandler.SetRole)

	return app
}

// errorHandler keeps internal error details out of responses.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code < fiber.StatusInternalServerError {
				msg = fe.Message
			}
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(code).JSON(models.ErrorResponse(msg))
	}
}
