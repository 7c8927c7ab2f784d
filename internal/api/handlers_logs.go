package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitflow/internal/services"
)

func (handler *Handler) CheckIn(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := services.CreateCompletionInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.services.Completions.LogCompletion(c.UserContext(), userID, input)
	if errors.Is(err, services.ErrAlreadyCompleted) {
		return alreadyCompletedError(c, result)
	}
	if err != nil {
		return serviceError(c, err, "log completion")
	}

	status := fiber.StatusCreated
	if result.Corrected {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(result)
}

func (handler *Handler) ListLogs(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	window, err := handler.parseRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	logs, err := handler.services.Completions.GetByDateRange(c.UserContext(), userID, window)
	if err != nil {
		return serviceError(c, err, "fetch logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetTodaysLogs(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	logs, err := handler.services.Completions.GetTodays(c.UserContext(), userID)
	if err != nil {
		return serviceError(c, err, "fetch logs")
	}
	return c.JSON(logs)
}

func (handler *Handler) GetLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	logID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	entry, err := handler.services.Completions.GetByID(c.UserContext(), logID, userID)
	if err != nil {
		return serviceError(c, err, "fetch log")
	}
	return c.JSON(entry)
}

func (handler *Handler) UpdateLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	logID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	input := services.UpdateCompletionInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.services.Completions.UpdateLog(c.UserContext(), logID, userID, input)
	if errors.Is(err, services.ErrAlreadyCompleted) {
		return alreadyCompletedError(c, result)
	}
	if err != nil {
		return serviceError(c, err, "update log")
	}
	return c.JSON(result)
}

func (handler *Handler) DeleteLog(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	logID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid log id")
	}

	if err := handler.services.Completions.DeleteLog(c.UserContext(), logID, userID); err != nil {
		return serviceError(c, err, "delete log")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// alreadyCompletedError answers 409 with the completed entry already on file.
func alreadyCompletedError(c *fiber.Ctx, result services.CheckInResult) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{
		"error": "already completed",
		"log":   result.Log,
	})
}
