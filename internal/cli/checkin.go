package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/habitflow/internal/models"
	"github.com/terraincognita07/habitflow/internal/services"
)

type CheckinCmd struct {
	HabitID uint    `arg:"" name:"habit-id" help:"Habit to check in."`
	Date    string  `help:"Calendar date (YYYY-MM-DD); defaults to today."`
	Status  string  `help:"completed, missed or pending." default:"completed" enum:"completed,missed,pending"`
	Note    string  `help:"Free-form note."`
	Value   float64 `help:"Quantity achieved toward the goal."`
	Mood    string  `help:"Mood label to attach."`
}

func (cmd *CheckinCmd) Run(ctx *Context) error {
	userID, err := ctx.ResolveUser()
	if err != nil {
		return err
	}
	bundle, closeDB, err := ctx.OpenServices()
	if err != nil {
		return err
	}
	defer closeDB()

	result, err := bundle.Completions.LogCompletion(context.Background(), userID, services.CreateCompletionInput{
		HabitID: cmd.HabitID,
		Date:    cmd.Date,
		Status:  cmd.Status,
		Note:    cmd.Note,
		Value:   cmd.Value,
		Mood:    cmd.Mood,
	})
	if errors.Is(err, services.ErrAlreadyCompleted) {
		return fmt.Errorf("%s is already completed on %s", result.Habit.Title, services.FormatCalendarDate(result.Log.Date))
	}
	if err != nil {
		return err
	}

	verb := "Logged"
	if result.Corrected {
		verb = "Corrected"
	}
	ctx.printf("%s %s for %s on %s\n",
		successStyle.Render("✓"),
		verb,
		headingStyle.Render(result.Habit.Title),
		services.FormatCalendarDate(result.Log.Date),
	)
	if result.Log.Status == models.LogStatusCompleted {
		ctx.printf("  streak %d (longest %d, total %d)\n",
			result.Habit.CurrentStreak, result.Habit.LongestStreak, result.Habit.TotalCompletions)
	}
	printUnlocked(ctx, result.Unlocked)
	return nil
}

func printUnlocked(ctx *Context, unlocked []models.Achievement) {
	for _, achievement := range unlocked {
		ctx.printf("%s %s (+%d)\n", successStyle.Render("🏆 Unlocked"), achievement.Title, achievement.Points)
	}
}
