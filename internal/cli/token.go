package cli

import (
	"fmt"
	"time"

	"github.com/terraincognita07/habitflow/internal/api"
	"github.com/terraincognita07/habitflow/internal/security"
)

type TokenCmd struct {
	SecretKey string        `name:"secret-key" help:"Key the server signs tokens with." env:"SECRET_KEY"`
	TTL       time.Duration `name:"ttl" help:"Token lifetime." default:"720h"`
}

func (cmd *TokenCmd) Run(ctx *Context) error {
	userID, err := ctx.ResolveUser()
	if err != nil {
		return err
	}
	if err := security.ValidateSecretKey(cmd.SecretKey); err != nil {
		return err
	}

	token, err := api.IssueToken(cmd.SecretKey, userID, cmd.TTL)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	ctx.printf("%s\n", token)
	return nil
}

type SecretCmd struct {
	Length int `help:"Number of characters." default:"48"`
}

func (cmd *SecretCmd) Run(ctx *Context) error {
	secret, err := security.GenerateSecretKey(cmd.Length)
	if err != nil {
		return err
	}
	ctx.printf("%s\n", secret)
	return nil
}
