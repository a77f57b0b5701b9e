package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/topexschool/portal-backend/internal/middleware"
	"github.com/topexschool/portal-backend/internal/models"
	"github.com/topexschool/portal-backend/internal/service"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	ListProfiles(ctx context.Context, role models.Role, limit, offset int) ([]models.Profile, error)
	SetRole(ctx context.Context, userID string, role models.Role) error
}

type UserHandler struct {
	users ProfileService
}

func NewUserHandler(users ProfileService) *UserHandler {
	return &UserHandler{
		users: users,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok || userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse("User not authenticated"))
	}

	profile, err := h.users.GetProfile(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Profile not found"))
		}
		return err
	}

	return c.JSON(models.SuccessResponse(profile, ""))
}

func (h *UserHandler) ListProfiles(c *fiber.Ctx) error {
	role := models.Role(c.Query("role"))
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	profiles, err := h.users.ListProfiles(c.UserContext(), role, limit, offset)
	if err != nil {
		if errors.Is(err, service.ErrUnknownRole) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unknown role"))
		}
		return err
	}

	return c.JSON(models.SuccessResponse(profiles, ""))
}

type setRoleRequest struct {
	Role models.Role `json:"role"`
}

func (h *UserHandler) SetRole(c *fiber.Ctx) error {
	var req setRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}

	err := h.users.SetRole(c.UserContext(), c.Params("userId"), req.Role)
	switch {
	case errors.Is(err, service.ErrUnknownRole):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Unknown role"))
	case errors.Is(err, models.ErrProfileNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Profile not found"))
	case err != nil:
		return err
	}

	return c.JSON(models.SuccessResponse(nil, "Role updated"))
}
