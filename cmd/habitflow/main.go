package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/terraincognita07/habitflow/internal/cli"
	"github.com/terraincognita07/habitflow/internal/logger"
	"github.com/terraincognita07/habitflow/internal/session"
)

var version = "v0.1.0"

func main() {
	var root cli.CLI
	kongCtx := kong.Parse(&root,
		kong.Name("habitflow"),
		kong.Description("Habit tracking with streaks, moods and achievements."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": version},
	)

	if err := logger.Init(logger.Config{Debug: root.Debug, LogDir: root.LogDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: logger init failed: %v\n", err)
		os.Exit(1)
	}

	if err := kongCtx.Run(cli.NewContext(&root.Globals, session.NewKeyringStore(), os.Stdout)); err != nil {
		logger.Error("command failed", "command", kongCtx.Command(), "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
