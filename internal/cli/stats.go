package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/terraincognita07/habitflow/internal/services"
)

type StatsCmd struct {
	Days int `help:"Size of the window ending today." default:"30"`
}

func (cmd *StatsCmd) Run(ctx *Context) error {
	if cmd.Days < 1 || cmd.Days > 366 {
		return fmt.Errorf("--days must be between 1 and 366")
	}
	userID, err := ctx.ResolveUser()
	if err != nil {
		return err
	}
	bundle, closeDB, err := ctx.OpenServices()
	if err != nil {
		return err
	}
	defer closeDB()

	requestCtx := context.Background()
	overview, err := bundle.Stats.Overview(requestCtx, userID)
	if err != nil {
		return err
	}
	window := services.LastNDays(bundle.Stats.Today(), cmd.Days)
	breakdown, err := bundle.Stats.HabitBreakdown(requestCtx, userID, window)
	if err != nil {
		return err
	}
	summary, err := bundle.Moods.Summary(requestCtx, userID, window)
	if err != nil {
		return err
	}

	ctx.printf("%s\n", headingStyle.Render("Today"))
	ctx.printf("  %d of %d due habits done (%d%%)\n", overview.CompletedToday, overview.DueToday, overview.TodayRate)
	ctx.printf("  best streak %d, longest ever %d, %d completions, %d points\n",
		overview.BestCurrentStreak, overview.BestLongestStreak, overview.TotalCompletions, overview.TotalPoints)

	ctx.printf("\n%s\n", headingStyle.Render(fmt.Sprintf("Last %d days", cmd.Days)))
	if len(breakdown) == 0 {
		ctx.printf("%s\n", mutedStyle.Render("No habits yet."))
	} else {
		rows := make([][]string, 0, len(breakdown))
		for _, stat := range breakdown {
			rows = append(rows, []string{
				stat.Title,
				fmt.Sprintf("%d/%d", stat.Completed, stat.Logged),
				strconv.Itoa(stat.Rate) + "%",
				strconv.Itoa(stat.CurrentStreak),
				strconv.Itoa(stat.LongestStreak),
			})
		}
		ctx.printf("%s\n", renderTable([]string{"Habit", "Done", "Rate", "Streak", "Longest"}, rows))
	}

	if summary.Entries > 0 {
		ctx.printf("\n%s\n", headingStyle.Render("Mood"))
		ctx.printf("  %d entries, average %.1f, mostly %s\n", summary.Entries, summary.AverageMood, summary.MostCommon)
	}
	return nil
}
