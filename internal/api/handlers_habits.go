package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitflow/internal/services"
)

func (handler *Handler) ListHabits(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	filter := services.HabitFilter{
		IncludeArchived: queryFlag(c, "archived"),
		IncludePaused:   queryFlag(c, "paused"),
	}
	habits, err := handler.services.Habits.List(c.UserContext(), userID, filter)
	if err != nil {
		return serviceError(c, err, "fetch habits")
	}
	return c.JSON(habits)
}

func (handler *Handler) CreateHabit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.CreateHabitInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	habit, unlocked, err := handler.services.Habits.Create(c.UserContext(), userID, input)
	if err != nil {
		return serviceError(c, err, "create habit")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"habit":        habit,
		"achievements": unlocked,
	})
}

func (handler *Handler) GetDueHabits(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day := handler.services.Stats.Today()
	if raw := c.Query("date"); raw != "" {
		parsed, err := parseDayParam(raw)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		day = parsed
	}

	habits, err := handler.services.Habits.DueOn(c.UserContext(), userID, day)
	if err != nil {
		return serviceError(c, err, "fetch due habits")
	}
	return c.JSON(habits)
}

func (handler *Handler) GetHabit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	habit, err := handler.services.Habits.Get(c.UserContext(), habitID, userID)
	if err != nil {
		return serviceError(c, err, "fetch habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) UpdateHabit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	input := services.UpdateHabitInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	habit, err := handler.services.Habits.Update(c.UserContext(), habitID, userID, input)
	if err != nil {
		return serviceError(c, err, "update habit")
	}
	return c.JSON(habit)
}

func (handler *Handler) DeleteHabit(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}

	if err := handler.services.Habits.HardDelete(c.UserContext(), habitID, userID); err != nil {
		return serviceError(c, err, "delete habit")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ArchiveHabit(c *fiber.Ctx) error {
	return handler.changeHabit(c, "archive habit", handler.services.Habits.Archive)
}

func (handler *Handler) UnarchiveHabit(c *fiber.Ctx) error {
	return handler.changeHabit(c, "unarchive habit", handler.services.Habits.Unarchive)
}

func (handler *Handler) TogglePauseHabit(c *fiber.Ctx) error {
	return handler.changeHabit(c, "pause habit", handler.services.Habits.TogglePause)
}

func (handler *Handler) GetHabitLogForDate(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	habitID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid habit id")
	}
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, found, err := handler.services.Completions.GetForDate(c.UserContext(), habitID, userID, day)
	if err != nil {
		return serviceError(c, err, "fetch log")
	}
	if !found {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	return c.JSON(entry)
}
