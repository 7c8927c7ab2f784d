package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/terraincognita07/habitflow/internal/services"
)

type HabitsCmd struct {
	All bool `help:"Include archived and paused habits."`
}

func (cmd *HabitsCmd) Run(ctx *Context) error {
	userID, err := ctx.ResolveUser()
	if err != nil {
		return err
	}
	bundle, closeDB, err := ctx.OpenServices()
	if err != nil {
		return err
	}
	defer closeDB()

	habits, err := bundle.Habits.List(context.Background(), userID, services.HabitFilter{
		IncludeArchived: cmd.All,
		IncludePaused:   cmd.All,
	})
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.printf("%s\n", mutedStyle.Render("No habits yet."))
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, habit := range habits {
		state := "active"
		switch {
		case habit.IsArchived:
			state = "archived"
		case habit.IsPaused:
			state = "paused"
		}
		rows = append(rows, []string{
			strconv.FormatUint(uint64(habit.ID), 10),
			habit.Title,
			habit.Frequency,
			fmt.Sprintf("%d / %d", habit.CurrentStreak, habit.LongestStreak),
			strconv.Itoa(habit.TotalCompletions),
			state,
		})
	}
	ctx.printf("%s\n", renderTable([]string{"ID", "Habit", "Frequency", "Streak", "Done", "State"}, rows))
	return nil
}
