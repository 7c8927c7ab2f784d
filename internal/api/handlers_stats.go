package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitflow/internal/services"
)

func (handler *Handler) GetStatsOverview(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	overview, err := handler.services.Stats.Overview(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "load stats")
	}
	return c.JSON(overview)
}

func (handler *Handler) GetCompletionRate(c *fiber.Ctx) error {
	query, ok, err := handler.statsQuery(c)
	if !ok {
		return err
	}

	rate, err := handler.services.Stats.CompletionRate(c.UserContext(), query.userID, query.window, query.habitID)
	if err != nil {
		return serviceError(c, err, "load completion rate")
	}
	return c.JSON(fiber.Map{
		"from": services.FormatCalendarDate(query.window.Start),
		"to":   services.FormatCalendarDate(query.window.End.AddDate(0, 0, -1)),
		"rate": rate,
	})
}

func (handler *Handler) GetCompletionChart(c *fiber.Ctx) error {
	query, ok, err := handler.statsQuery(c)
	if !ok {
		return err
	}

	buckets, err := handler.services.Stats.CompletionChart(c.UserContext(), query.userID, query.window, query.habitID)
	if err != nil {
		return serviceError(c, err, "load completion chart")
	}
	return c.JSON(buckets)
}

func (handler *Handler) GetHabitBreakdown(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	window, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	breakdown, err := handler.services.Stats.HabitBreakdown(c.UserContext(), userID, window)
	if err != nil {
		return serviceError(c, err, "load habit stats")
	}
	return c.JSON(breakdown)
}

type statsRequest struct {
	userID  uint
	window  services.DateRange
	habitID *uint
}

// statsQuery resolves the caller, window and optional habit filter. When ok is
// false the error response has already been written and err is its result.
func (handler *Handler) statsQuery(c *fiber.Ctx) (statsRequest, bool, error) {
	userID, ok := currentUserID(c)
	if !ok {
		return statsRequest{}, false, apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	window, err := handler.parseRangeQuery(c)
	if err != nil {
		return statsRequest{}, false, apiError(c, fiber.StatusBadRequest, err.Error())
	}
	habitID, err := parseOptionalHabitID(c)
	if err != nil {
		return statsRequest{}, false, apiError(c, fiber.StatusBadRequest, err.Error())
	}
	return statsRequest{userID: userID, window: window, habitID: habitID}, true, nil
}
