package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/studyhub/backend/internal/auth"
)

func newTokenCommand() *cobra.Command {
	var name string
	var ttl time.Duration

	command := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for local development",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			token, err := auth.NewSigner(cfg.Auth.JWTSecret).GenerateToken(args[0], name, ttl)
			if err != nil {
				return err
			}
			printf(cmd, "%s\n", token)
			return nil
		},
	}

	command.Flags().StringVar(&name, "name", "", "display name carried in the token")
	command.Flags().DurationVar(&ttl, "ttl", auth.DefaultTokenTTL, "token lifetime")
	return command
}
