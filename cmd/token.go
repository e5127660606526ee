package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/spf13/cobra"
)

var ErrMissingSubject = errors.New("token subject is required")

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the protected history routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return mintToken(cmd.OutOrStdout(), config.Envs.JWTSecret, config.Envs.JWTIssuer, subject, ttl)
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "Subject claim of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "How long the token stays valid")
	return cmd
}

func mintToken(out io.Writer, secret, issuer, subject string, ttl time.Duration) error {
	if subject == "" {
		return ErrMissingSubject
	}
	if err := config.CheckSecret(secret); err != nil {
		return err
	}

	signed, err := token.NewJwtService(secret, issuer).Generate(map[string]interface{}{"sub": subject}, ttl)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	fmt.Fprintln(out, signed)
	return nil
}
