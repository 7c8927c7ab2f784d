package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.services.Reset.ClearUserData(c.UserContext(), userID); err != nil {
		return serviceError(c, err, "clear data")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
