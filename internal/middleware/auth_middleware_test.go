package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/session"
	jwtPkg "github.com/topexschool/portal-backend/pkg/jwt"
)

type roleMap map[string]models.Role

func (m roleMap) GetRole(_ context.Context, userID string) (models.Role, bool, error) {
	if userID == "broken" {
		return "", false, errors.New("db down")
	}
	role, ok := m[userID]
	return role, ok, nil
}

type env struct {
	app      *fiber.App
	tokens   *jwtPkg.Manager
	sessions *session.Store
	roles    roleMap
}

func newEnv(t *testing.T) env {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	e := env{
		app:      fiber.New(),
		tokens:   jwtPkg.NewManager("secret", "topex", time.Hour),
		sessions: session.NewStore(rdb, time.Hour),
		roles:    roleMap{},
	}
	auth := AuthMiddleware(e.tokens, e.sessions, zap.NewNop())
	e.app.Get("/me", auth, func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(LocalUserID).(string))
	})
	e.app.Get("/admin", auth, RequireAdmin(models.DefaultRoleTable(), e.roles, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return e
}

func (e env) login(t *testing.T, userID string, role models.Role) (string, *session.Session) {
	t.Helper()
	if role != "" {
		e.roles[userID] = role
	}
	sess, err := e.sessions.Create(context.Background(), userID)
	require.NoError(t, err)
	token, err := e.tokens.GenerateToken(userID, "u@x.com", string(role), sess.ID)
	require.NoError(t, err)
	return token, sess
}

func (e env) get(t *testing.T, path, auth string) int {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	e := newEnv(t)
	token, sess := e.login(t, "U1", models.RoleStudent)

	assert.Equal(t, fiber.StatusUnauthorized, e.get(t, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, e.get(t, "/me", "Token "+token))
	assert.Equal(t, fiber.StatusUnauthorized, e.get(t, "/me", "Bearer garbage"))
	assert.Equal(t, fiber.StatusOK, e.get(t, "/me", "Bearer "+token))

	require.NoError(t, e.sessions.Revoke(context.Background(), sess.ID))
	assert.Equal(t, fiber.StatusUnauthorized, e.get(t, "/me", "Bearer "+token))
}

func TestAuthMiddlewareSessionOwnerMismatch(t *testing.T) {
	e := newEnv(t)
	_, sess := e.login(t, "U1", models.RoleStudent)
	forged, err := e.tokens.GenerateToken("U2", "x@x.com", "", sess.ID)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, e.get(t, "/me", "Bearer "+forged))
}

func TestRequireAdmin(t *testing.T) {
	e := newEnv(t)
	student, _ := e.login(t, "U1", models.RoleStudent)
	admin, _ := e.login(t, "U2", models.RoleAdmin)
	director, _ := e.login(t, "U3", models.RoleDirector)

	assert.Equal(t, fiber.StatusForbidden, e.get(t, "/admin", "Bearer "+student))
	assert.Equal(t, fiber.StatusOK, e.get(t, "/admin", "Bearer "+admin))
	assert.Equal(t, fiber.StatusOK, e.get(t, "/admin", "Bearer "+director))
}

func TestRequireAdminUsesCurrentRole(t *testing.T) {
	e := newEnv(t)
	token, _ := e.login(t, "U1", models.RoleAdmin)
	require.Equal(t, fiber.StatusOK, e.get(t, "/admin", "Bearer "+token))

	e.roles["U1"] = models.RoleStudent
	assert.Equal(t, fiber.StatusForbidden, e.get(t, "/admin", "Bearer "+token))

	delete(e.roles, "U1")
	assert.Equal(t, fiber.StatusForbidden, e.get(t, "/admin", "Bearer "+token))
}

func TestRequireAdminLookupFailure(t *testing.T) {
	e := newEnv(t)
	token, _ := e.login(t, "broken", models.RoleAdmin)

	assert.Equal(t, fiber.StatusInternalServerError, e.get(t, "/admin", "Bearer "+token))
}
