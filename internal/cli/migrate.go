package cli

import (
	"fmt"

	"github.com/terraincognita07/habitflow/internal/db"
)

// MigrateCmd applies pending migrations; opening the database runs them.
type MigrateCmd struct{}

func (cmd *MigrateCmd) Run(ctx *Context) error {
	database, err := ctx.openDatabase()
	if err != nil {
		return err
	}
	if sqlDB, err := database.DB(); err == nil {
		defer sqlDB.Close()
	}

	statuses, err := db.Migrations(database)
	if err != nil {
		return fmt.Errorf("load migration status: %w", err)
	}
	for _, status := range statuses {
		mark := "pending"
		if status.Applied {
			mark = "applied"
		}
		ctx.printf("%s  %-8s %s\n", status.Version, mark, status.Name)
	}
	ctx.printf("✅ Database %s is up to date\n", ctx.Globals.DB)
	return nil
}
