package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.UserRequired)

	habits := api.Group("/habits")
	habits.Get("", handler.ListHabits)
	habits.Post("", handler.CreateHabit)
	habits.Get("/due", handler.GetDueHabits)
	habits.Get("/:id", handler.GetHabit)
	habits.Patch("/:id", handler.UpdateHabit)
	habits.Delete("/:id", handler.DeleteHabit)
	habits.Post("/:id/archive", handler.ArchiveHabit)
	habits.Post("/:id/unarchive", handler.UnarchiveHabit)
	habits.Post("/:id/pause", handler.TogglePauseHabit)
	habits.Get("/:id/logs/:date", handler.GetHabitLogForDate)

	logs := api.Group("/logs")
	logs.Get("", handler.ListLogs)
	logs.Post("", handler.CheckIn)
	logs.Get("/today", handler.GetTodaysLogs)
	logs.Get("/:id", handler.GetLog)
	logs.Patch("/:id", handler.UpdateLog)
	logs.Delete("/:id", handler.DeleteLog)

	moods := api.Group("/moods")
	moods.Get("", handler.ListMoods)
	moods.Post("", handler.LogMood)
	moods.Get("/today", handler.GetTodaysMood)
	moods.Get("/summary", handler.GetMoodSummary)
	moods.Get("/trend", handler.GetMoodTrend)
	moods.Delete("/:id", handler.DeleteMood)

	stats := api.Group("/stats")
	stats.Get("/overview", handler.GetStatsOverview)
	stats.Get("/completion-rate", handler.GetCompletionRate)
	stats.Get("/chart", handler.GetCompletionChart)
	stats.Get("/habits", handler.GetHabitBreakdown)

	achievements := api.Group("/achievements")
	achievements.Get("", handler.ListAchievements)
	achievements.Post("", handler.UnlockAchievement)
	achievements.Get("/catalog", handler.GetAchievementCatalog)
	achievements.Get("/points", handler.GetAchievementPoints)

	api.Delete("/data", handler.ClearAllData)
}
