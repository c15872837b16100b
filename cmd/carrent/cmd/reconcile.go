/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

// reconcileCmd represents the reconcile command
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Cross-check the inventory against the rental ledger",
	Long: `Cross-check the inventory against the rental ledger. Booking writes
the ledger and the car store as two separate mutations; a failure between
them leaves the stores disagreeing. This command reports every divergence
so an operator can resolve it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		divergences, err := current.bookings.Reconcile()
		if err != nil {
			return err
		}
		if len(divergences) == 0 {
			cmd.Println("Inventory and ledger agree")
			return nil
		}
		for _, d := range divergences {
			cmd.Printf("%s (%s): %s\n", d.Model, d.CarID, d.Reason)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}
