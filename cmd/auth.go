package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/otherjamesbrown/mintel-cli/credentials"
)

// AuthDeps holds the dependencies for auth commands.
type AuthDeps struct {
	Keyring *credentials.KeyringTokenProvider
	Chain   credentials.TokenProvider
}

// DefaultAuthDeps returns the production auth dependencies.
func DefaultAuthDeps() *AuthDeps {
	return &AuthDeps{
		Keyring: credentials.NewKeyringTokenProvider(),
		Chain:   credentials.DefaultTokenProvider(),
	}
}

// NewAuthCommand creates the auth command for calendar token management.
func NewAuthCommand(deps *AuthDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultAuthDeps()
	}

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the calendar service token",
		Long: `Manage the bearer token used for the calendar service.

The token resolves from $` + credentials.EnvCalendarToken + ` first, then the
system keyring.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set-token <token>",
		Short: "Store the calendar token in the system keyring",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Keyring.SetToken(args[0]); err != nil {
				return err
			}
			fmt.Printf("Token stored in %s\n", deps.Keyring.Description())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether a calendar token is configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := deps.Chain.Token()
			if errors.Is(err, credentials.ErrTokenNotFound) {
				fmt.Println("No calendar token configured.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Calendar token configured (%s)\n", deps.Chain.Description())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete-token",
		Short: "Remove the calendar token from the system keyring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := deps.Keyring.DeleteToken()
			if errors.Is(err, credentials.ErrTokenNotFound) {
				fmt.Println("No token stored.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println("Token deleted.")
			return nil
		},
	})

	return cmd
}
