/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openfleet/carrent/pkg/users"
)

var userFields = map[string]users.Field{
	"name":     users.FieldFullName,
	"address":  users.FieldAddress,
	"contact":  users.FieldContact,
	"email":    users.FieldEmail,
	"password": users.FieldPassword,
}

// userCmd represents the user command group
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage registered users",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := current.users.List()
		if err != nil {
			return err
		}
		if len(all) == 0 {
			cmd.Println("No users registered")
			return nil
		}
		for _, u := range all {
			cmd.Printf("%-20s %-25s %-15s %s\n", u.Username, u.FullName, u.Contact, u.Email)
		}
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <username> <field> [value]",
	Short: "Update one field of a user",
	Long: `Update one field of a user located by username. Fields: name,
address, contact, email, password. The password value is prompted masked,
never passed on the command line.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]
		field, ok := userFields[args[1]]
		if !ok {
			return fmt.Errorf("unknown field %q (name, address, contact, email, password)", args[1])
		}

		var value string
		if field == users.FieldPassword {
			var err error
			if value, err = promptMasked("Enter New Password: "); err != nil {
				return err
			}
		} else {
			if len(args) < 3 {
				return fmt.Errorf("field %s requires a value", args[1])
			}
			value = args[2]
		}

		if err := current.users.UpdateField(username, field, value); err != nil {
			return err
		}
		cmd.Printf("Updated %s for %s\n", args[1], username)
		return nil
	},
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove <username>",
	Short: "Remove a user by username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.users.RemoveByUsername(args[0]); err != nil {
			return err
		}
		cmd.Printf("Removed user %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userUpdateCmd)
	userCmd.AddCommand(userRemoveCmd)
}
