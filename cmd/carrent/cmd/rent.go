/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openfleet/carrent/pkg/booking"
	"github.com/openfleet/carrent/pkg/users"
)

// rentCmd represents the rent command
var rentCmd = &cobra.Command{
	Use:   "rent",
	Short: "Book an available car",
	Long: `Book an available car. Logs the renter in, enumerates the available
cars, and prompts for a selection (0 cancels) and the pickup and return
dates (YYYY-MM-DD). The total cost is the whole days between the dates
times the car's daily rate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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
			cmd.Println("Invalid identifier or password")
			return err
		}
		if err != nil {
			return err
		}

		cars, err := current.bookings.AvailableCars()
		if errors.Is(err, booking.ErrNoneAvailable) {
			cmd.Println("No cars are available right now")
			return nil
		}
		if err != nil {
			return err
		}

		cmd.Println("Available cars:")
		for i, c := range cars {
			printCar(cmd, i+1, c)
		}

		line, err := promptLine("Select a car (0 to cancel): ")
		if err != nil {
			return err
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			return booking.ErrInvalidSelection
		}
		car, err := booking.Select(cars, choice)
		if errors.Is(err, booking.ErrCancelled) {
			cmd.Println("Booking cancelled")
			return nil
		}
		if err != nil {
			return err
		}

		pickup, err := promptLine("Pickup date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}
		ret, err := promptLine("Return date (YYYY-MM-DD): ")
		if err != nil {
			return err
		}

		rental, err := current.bookings.Book(u.Username, car, pickup, ret)
		if errors.Is(err, booking.ErrBookingIncomplete) {
			cmd.Printf("Rental %s recorded, but the car could not be marked unavailable.\n", rental.ID)
			cmd.Println("Run 'carrent reconcile' to review store consistency.")
			return err
		}
		if err != nil {
			return err
		}

		cmd.Printf("Booked %s %s for %s: %s to %s, total %.2f (rental %s)\n",
			rental.Car.Company, rental.Car.Model, rental.Username,
			rental.PickupDate, rental.ReturnDate,
			float64(rental.TotalCents)/100, rental.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rentCmd)
}
