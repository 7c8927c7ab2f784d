package cli

import (
	"context"
	"errors"
	"fmt"
)

type UseCmd struct {
	UserID uint `arg:"" optional:"" name:"user-id" help:"User id to act as."`
	Clear  bool `help:"Forget the active user."`
}

func (cmd *UseCmd) Run(ctx *Context) error {
	if ctx.Sessions == nil {
		return errors.New("active user store unavailable")
	}
	if cmd.Clear {
		if err := ctx.Sessions.Clear(); err != nil {
			return err
		}
		ctx.printf("Active user cleared\n")
		return nil
	}
	if cmd.UserID == 0 {
		return errors.New("user id must be positive")
	}
	if err := ctx.Sessions.SetActiveUser(cmd.UserID); err != nil {
		return err
	}
	ctx.printf("✓ Now acting as user %d\n", cmd.UserID)
	return nil
}

type WhoamiCmd struct{}

func (cmd *WhoamiCmd) Run(ctx *Context) error {
	userID, err := ctx.ResolveUser()
	if err != nil {
		return err
	}

	bundle, closeDB, err := ctx.OpenServices()
	if err != nil {
		return err
	}
	defer closeDB()

	user, found, err := bundle.Store.Users().FindByID(context.Background(), userID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !found {
		ctx.printf("user %d (no habits created yet)\n", userID)
		return nil
	}
	ctx.printf("user %d (%d habits created)\n", user.ID, user.HabitsCreated)
	return nil
}
