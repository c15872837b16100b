/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// rentalsCmd represents the rentals command
var rentalsCmd = &cobra.Command{
	Use:   "rentals",
	Short: "List the rental ledger",
	Long: `List the rental ledger in the order bookings were made. With
--user, only that renter's bookings are shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("user")

		rentals, err := current.rentals.List(username)
		if err != nil {
			return err
		}
		if len(rentals) == 0 {
			cmd.Println("No rentals recorded")
			return nil
		}
		for _, r := range rentals {
			cmd.Printf("%s %-20s %s %s -> %s total %.2f (booked %s)\n",
				r.ID, r.Username, r.Car.Model,
				r.PickupDate, r.ReturnDate,
				float64(r.TotalCents)/100, r.CreatedAt)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rentalsCmd)
	rentalsCmd.Flags().String("user", "", "show only this user's rentals")
}
