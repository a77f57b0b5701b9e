package handler

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/topexschool/portal-backend/internal/controller"
	"github.com/topexschool/portal-backend/internal/middleware"
	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/session"
	"github.com/topexschool/portal-backend/internal/validation"
	"github.com/topexschool/portal-backend/pkg/i18n"
)

type TokenIssuer interface {
	GenerateToken(userID, email, role, sessionID string) (string, error)
}

type SessionManager interface {
	Create(ctx context.Context, userID string) (*session.Session, error)
	Revoke(ctx context.Context, id string) error
}

type WelcomeMailer interface {
	SendWelcomeEmail(email, fullName string) error
}

type AuthHandler struct {
	identity  controller.IdentityProvider
	profiles  controller.ProfileStore
	roles     *models.RoleTable
	validator *validation.FormValidator
	catalog   *i18n.Catalog
	tokens    TokenIssuer
	sessions  SessionManager
	mailer    WelcomeMailer
	logger    *zap.Logger

	background errgroup.Group
}

type AuthHandlerDeps struct {
	Identity  controller.IdentityProvider
	Profiles  controller.ProfileStore
	Roles     *models.RoleTable
	Validator *validation.FormValidator
	Catalog   *i18n.Catalog
	Tokens    TokenIssuer
	Sessions  SessionManager
	// Mailer is optional.
	Mailer WelcomeMailer
	Logger *zap.Logger
}

func NewAuthHandler(d AuthHandlerDeps) *AuthHandler {
	return &AuthHandler{
		identity:  d.Identity,
		profiles:  d.Profiles,
		roles:     d.Roles,
		validator: d.Validator,
		catalog:   d.Catalog,
		tokens:    d.Tokens,
		sessions:  d.Sessions,
		mailer:    d.Mailer,
		logger:    d.Logger.Named("auth_handler"),
	}
}

func (h *AuthHandler) pageDeps(msgs *i18n.Printer, host *requestHost) controller.Deps {
	return controller.Deps{
		Identity:  h.identity,
		Profiles:  h.profiles,
		Roles:     h.roles,
		Validator: h.validator,
		Messages:  msgs,
		Session:   host,
		Navigator: host,
		Scheduler: host,
		Logger:    h.logger,
	}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginForm
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	msgs := h.catalog.Printer(c.Get(fiber.HeaderAcceptLanguage))
	host := &requestHost{}
	page := controller.NewLoginPage(h.pageDeps(msgs, host))
	defer page.Close()
	page.Fill(req)

	out, err := page.Submit(c.UserContext())
	if err != nil {
		return err
	}

	switch out.State {
	case controller.StateInvalid:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationResponse(out.Errors))
	case controller.StateFailed:
		return c.Status(failureStatus(out, fiber.StatusUnauthorized)).JSON(models.ValidationResponse(out.Errors))
	}

	resp, err := h.startSession(c, host, out.Role)
	if err != nil {
		return err
	}
	return c.JSON(models.SuccessResponse(resp, msgs.T(i18n.KeyLoginSuccess)))
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterForm
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	host := &requestHost{}
	page := controller.NewRegisterPage(h.pageDeps(h.catalog.Printer(c.Get(fiber.HeaderAcceptLanguage)), host))
	defer page.Close()
	page.Fill(req)

	out, err := page.Submit(c.UserContext())
	if err != nil {
		return err
	}

	switch out.State {
	case controller.StateInvalid:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ValidationResponse(out.Errors))
	case controller.StateFailed:
		return c.Status(failureStatus(out, fiber.StatusBadRequest)).JSON(models.ValidationResponse(out.Errors))
	}

	if h.mailer != nil {
		email, fullName := out.User.Email, req.FullName
		h.background.Go(func() error {
			if err := h.mailer.SendWelcomeEmail(email, fullName); err != nil {
				return fmt.Errorf("welcome email to %s: %w", email, err)
			}
			return nil
		})
	}

	resp, err := h.startSession(c, host, out.Role)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(resp, out.Success))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionID, _ := c.Locals(middleware.LocalSessionID).(string)
	if err := h.sessions.Revoke(c.UserContext(), sessionID); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		return err
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

// Drain waits for background work started by requests, such as welcome
// emails, and returns the first error it produced. Call it after the server
// has stopped accepting requests.
func (h *AuthHandler) Drain() error {
	return h.background.Wait()
}

// failureStatus uses the status the identity provider attached to its
// rejection, or fallback when it has none. Other failures are server errors.
func failureStatus(out controller.Outcome, fallback int) int {
	if out.Failure != controller.FailureProvider {
		return fiber.StatusInternalServerError
	}
	if out.Provider != nil && out.Provider.Status != 0 {
		return out.Provider.Status
	}
	return fallback
}

// startSession turns the login the page reported into a server session and a
// bearer token.
func (h *AuthHandler) startSession(c *fiber.Ctx, host *requestHost, role models.Role) (*models.AuthResponse, error) {
	if host.user == nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "login was not reported")
	}
	user := *host.user

	sess, err := h.sessions.Create(c.UserContext(), user.ID)
	if err != nil {
		h.logger.Error("session create failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}
	token, err := h.tokens.GenerateToken(user.ID, user.Email, string(role), sess.ID)
	if err != nil {
		h.logger.Error("token generation failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	return &models.AuthResponse{
		Token:           token,
		User:            user,
		Role:            role,
		Redirect:        string(host.dest),
		RedirectAfterMS: host.delay.Milliseconds(),
	}, nil
}
