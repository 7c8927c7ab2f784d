package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitflow/internal/models"
)

type habitChange func(ctx context.Context, habitID uint, userID uint) (models.Habit, error)

func (handler *Handler) changeHabit(c *fiber.Ctx, action string, change habitChange) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	habit, err := change(c.UserContext(), habitID, userID)
	if err != nil {
		return serviceError(c, err, action)
	}
	return c.JSON(habit)
}
