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

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user account",
	Long: `Register a new user account. Prompts for the user's details, a
username, and a password (entered twice, masked). Usernames and contact
numbers must be unique; on a duplicate you are asked to re-enter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for {
			u, password, err := collectUser()
			if err != nil {
				return err
			}

			registered, err := current.users.Register(u, password)
			if errors.Is(err, users.ErrDuplicateUsername) || errors.Is(err, users.ErrDuplicateContact) {
				cmd.Printf("%v - please enter the details again\n\n", err)
				continue
			}
			if err != nil {
				return err
			}

			cmd.Printf("User %s registered successfully (%d users registered so far)\n",
				registered.Username, current.users.Registered())
			return nil
		}
	},
}

func collectUser() (users.User, string, error) {
	var u users.User
	var err error

	if u.FullName, err = promptLine("Enter Full Name: "); err != nil {
		return u, "", err
	}
	if u.Address, err = promptLine("Enter Address: "); err != nil {
		return u, "", err
	}
	if u.Contact, err = promptLine("Enter Contact: "); err != nil {
		return u, "", err
	}
	if u.Email, err = promptLine("Enter Email: "); err != nil {
		return u, "", err
	}
	if u.Username, err = promptLine("Enter New Username: "); err != nil {
		return u, "", err
	}

	for {
		password, err := promptMasked("Enter New Password: ")
		if err != nil {
			return u, "", err
		}
		verify, err := promptMasked("Retype the password for verification: ")
		if err != nil {
			return u, "", err
		}
		if password == verify {
			return u, password, nil
		}
		fmt.Println("Passwords do not match. Please try again.")
	}
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
