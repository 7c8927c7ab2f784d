package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/services"
)

const (
	defaultRangeDays = 30
	maxRangeDays     = 366
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps a domain error to its HTTP status.
func serviceError(c *fiber.Ctx, err error, action string) error {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid " + validationErr.Field,
			"field": validationErr.Field,
			"rule":  validationErr.Rule,
		})
	case errors.Is(err, services.ErrValidation):
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, services.ErrConflict):
		return apiError(c, fiber.StatusConflict, "conflict")
	default:
		logger.Error("request failed", "action", action, "path", c.Path(), "err", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to "+action)
	}
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(value), nil
}

func parseDayParam(raw string) (time.Time, error) {
	return services.ParseCalendarDate(raw)
}

// parseRangeQuery reads the inclusive ?from=&to= window, defaulting to the
// last 30 days ending today.
func (handler *Handler) parseRangeQuery(c *fiber.Ctx) (services.DateRange, error) {
	today := handler.services.Stats.Today()
	rawFrom := strings.TrimSpace(c.Query("from"))
	rawTo := strings.TrimSpace(c.Query("to"))
	if rawFrom == "" && rawTo == "" {
		return services.LastNDays(today, defaultRangeDays), nil
	}

	to := today
	if rawTo != "" {
		parsed, err := parseDayParam(rawTo)
		if err != nil {
			return services.DateRange{}, errors.New("invalid to date")
		}
		to = parsed
	}
	from := to.AddDate(0, 0, -(defaultRangeDays - 1))
	if rawFrom != "" {
		parsed, err := parseDayParam(rawFrom)
		if err != nil {
			return services.DateRange{}, errors.New("invalid from date")
		}
		from = parsed
	}

	window, err := services.NewDateRange(from, to)
	if err != nil {
		return services.DateRange{}, errors.New("invalid range")
	}
	if window.Days() > maxRangeDays {
		return services.DateRange{}, errors.New("range too long")
	}
	return window, nil
}

func parseOptionalHabitID(c *fiber.Ctx) (*uint, error) {
	raw := strings.TrimSpace(c.Query("habit_id"))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return nil, errors.New("invalid habit_id")
	}
	habitID := uint(value)
	return &habitID, nil
}

func queryFlag(c *fiber.Ctx, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
