/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openfleet/carrent/pkg/users"
)

const maxLoginAttempts = 3

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify a user's credentials",
	Long: `Verify a user's credentials. The identifier may be a username, a
contact number, or an email address. Up to three attempts are allowed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
			identifier, err := promptLine("Enter Username / Contact / Email: ")
			if err != nil {
				return err
			}
			password, err := promptMasked("Enter Password: ")
			if err != nil {
				return err
			}

			u, err := current.users.Authenticate(identifier, password)
			if errors.Is(err, users.ErrInvalidCredentials) {
				cmd.Printf("Invalid identifier or password (%d of %d attempts)\n",
					attempt, maxLoginAttempts)
				continue
			}
			if err != nil {
				return err
			}

			cmd.Printf("Welcome back, %s\n", u.FullName)
			return nil
		}
		return fmt.Errorf("login failed after %d attempts", maxLoginAttempts)
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
