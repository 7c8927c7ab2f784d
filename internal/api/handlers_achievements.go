package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitflow/internal/services"
)

func (handler *Handler) ListAchievements(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	achievements, err := handler.services.Achievements.List(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "fetch achievements")
	}
	return c.JSON(achievements)
}

// UnlockAchievement grants an achievement by hand. Unlocking one that is
// already held returns the stored record with 200.
func (handler *Handler) UnlockAchievement(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.UnlockAchievementInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	achievement, created, err := handler.services.Achievements.Unlock(c.UserContext(), userID, input)
	if err != nil {
		return serviceError(c, err, "unlock achievement")
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(achievement)
}

func (handler *Handler) GetAchievementCatalog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	catalog, err := handler.services.Achievements.Catalog(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "fetch achievement catalog")
	}
	return c.JSON(catalog)
}

func (handler *Handler) GetAchievementPoints(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	points, err := handler.services.Achievements.TotalPoints(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "sum achievement points")
	}
	return c.JSON(fiber.Map{"points": points})
}
