package api

import "github.com/gofiber/fiber/v2"

const contextUserIDKey = "current_user_id"

func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals(contextUserIDKey).(uint)
	return userID, ok && userID != 0
}
