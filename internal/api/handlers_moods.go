package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitflow/internal/services"
)

func (handler *Handler) LogMood(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.CreateMoodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, unlocked, err := handler.services.Moods.LogMood(c.UserContext(), userID, input)
	if err != nil {
		return serviceError(c, err, "log mood")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"mood":         entry,
		"achievements": unlocked,
	})
}

func (handler *Handler) ListMoods(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	window, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entries, err := handler.services.Moods.ListRange(c.UserContext(), userID, window)
	if err != nil {
		return serviceError(c, err, "fetch moods")
	}
	return c.JSON(entries)
}

func (handler *Handler) GetTodaysMood(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entry, found, err := handler.services.Moods.TodaysMood(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "fetch mood")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	return c.JSON(entry)
}

func (handler *Handler) GetMoodSummary(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	window, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := handler.services.Moods.Summary(c.UserContext(), userID, window)
	if err != nil {
		return serviceError(c, err, "summarize moods")
	}
	return c.JSON(summary)
}

func (handler *Handler) GetMoodTrend(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	window, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	points, err := handler.services.Moods.Trend(c.UserContext(), userID, window)
	if err != nil {
		return serviceError(c, err, "build mood trend")
	}
	return c.JSON(points)
}

func (handler *Handler) DeleteMood(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid mood id")
	}

	if err := handler.services.Moods.Delete(c.UserContext(), entryID, userID); err != nil {
		return serviceError(c, err, "delete mood")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
