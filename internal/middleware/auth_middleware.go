package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/session"
	jwtPkg "github.com/topexschool/portal-backend/pkg/jwt"
)

const (
	LocalUserID    = "userID"
	LocalSessionID = "sessionID"
)

type TokenValidator interface {
	ValidateToken(token string) (*jwtPkg.Claims, error)
}

type SessionLookup interface {
	Get(ctx context.Context, id string) (*session.Session, error)
}

type RoleLookup interface {
	GetRole(ctx context.Context, userID string) (models.Role, bool, error)
}

// AuthMiddleware accepts a bearer token only while its session is still
// registered.
func AuthMiddleware(tokens TokenValidator, sessions SessionLookup, log *zap.Logger) fiber.Handler {
	log = log.Named("auth")
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Authorization header is required"))
		}

		// Check if the header starts with "Bearer "
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid authorization header format"))
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			log.Debug("token rejected", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		sess, err := sessions.Get(c.UserContext(), claims.SessionID)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Session expired"))
			}
			log.Error("session lookup failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
		}
		if sess.UserID != claims.UserID {
			return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("Invalid token"))
		}

		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalSessionID, claims.SessionID)

		return c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware. The role is read from the
// profile store on every request; the role claim in the token is only a hint
// for clients.
func RequireAdmin(roles *models.RoleTable, lookup RoleLookup, log *zap.Logger) fiber.Handler {
	log = log.Named("admin")
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(LocalUserID).(string)
		role, found, err := lookup.GetRole(c.UserContext(), userID)
		if err != nil {
			log.Error("role lookup failed", zap.String("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
		}
		if !found || !roles.CanAccessAdmin(role) {
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("Admin access required"))
		}
		return c.Next()
	}
}
