package cli

import (
	"context"
	"errors"
)

type ResetDataCmd struct {
	Yes bool `help:"Confirm deletion."`
}

func (cmd *ResetDataCmd) Run(ctx *Context) error {
	if !cmd.Yes {
		return errors.New("refusing to delete data without --yes")
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

	if err := bundle.Reset.ClearUserData(context.Background(), userID); err != nil {
		return err
	}
	ctx.printf("✅ All data of user %d deleted\n", userID)
	return nil
}
