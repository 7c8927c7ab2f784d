package cli

import (
	"context"

	"github.com/terraincognita07/habitflow/internal/services"
)

type MoodCmd struct {
	Level  int    `arg:"" help:"Mood level from 1 to 10."`
	Label  string `arg:"" help:"happy, excited, grateful, calm, neutral, tired, anxious, stressed, sad or angry."`
	Energy int    `help:"Energy level from 1 to 10."`
	Stress int    `help:"Stress level from 1 to 10."`
	Note   string `help:"Free-form note."`
}

func (cmd *MoodCmd) Run(ctx *Context) error {
	userID, err := ctx.ResolveUser()
	if err != nil {
		return err
	}
	bundle, closeDB, err := ctx.OpenServices()
	if err != nil {
		return err
	}
	defer closeDB()

	input := services.CreateMoodInput{
		MoodLevel: cmd.Level,
		MoodLabel: cmd.Label,
		Note:      cmd.Note,
	}
	if cmd.Energy != 0 {
		energy := cmd.Energy
		input.EnergyLevel = &energy
	}
	if cmd.Stress != 0 {
		stress := cmd.Stress
		input.StressLevel = &stress
	}

	entry, unlocked, err := bundle.Moods.LogMood(context.Background(), userID, input)
	if err != nil {
		return err
	}
	ctx.printf("%s Mood %s (%d/10) logged at %s\n",
		successStyle.Render("✓"),
		headingStyle.Render(entry.MoodLabel),
		entry.MoodLevel,
		entry.LoggedAt.In(bundle.Location).Format("15:04"),
	)
	printUnlocked(ctx, unlocked)
	return nil
}
