/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openfleet/carrent/pkg/fleet"
)

var carFields = map[string]fleet.Field{
	"model":        fleet.FieldModel,
	"company":      fleet.FieldCompany,
	"year":         fleet.FieldYear,
	"rate":         fleet.FieldRate,
	"capacity":     fleet.FieldCapacity,
	"mileage":      fleet.FieldMileage,
	"color":        fleet.FieldColor,
	"availability": fleet.FieldAvailability,
}

// carCmd represents the car command group
var carCmd = &cobra.Command{
	Use:   "car",
	Short: "Manage the car inventory",
}

var carAddCmd = &cobra.Command{
	Use:   "add <model> <company> <year> <daily-rate> <capacity> <mileage> <color>",
	Short: "Add a car to the inventory",
	Long: `Add a car to the inventory. New cars always enter as available and
receive a stable identifier.

Example:
  carrent car add Corolla Toyota 2022 45.50 5 18.2 white`,
	Args: cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.ParseUint(args[2], 10, 32)
		if err != nil {
			return fmt.Errorf("bad year %q", args[2])
		}
		rate, err := fleet.ParseRate(args[3])
		if err != nil {
			return err
		}
		capacity, err := strconv.ParseUint(args[4], 10, 32)
		if err != nil || capacity == 0 {
			return fmt.Errorf("bad capacity %q", args[4])
		}
		kmpl, err := strconv.ParseFloat(args[5], 64)
		if err != nil || kmpl < 0 {
			return fmt.Errorf("bad mileage %q", args[5])
		}

		car, err := current.cars.Add(fleet.Car{
			Model:         args[0],
			Company:       args[1],
			Year:          uint32(year),
			RateCents:     rate,
			Capacity:      uint32(capacity),
			MileageTenths: uint32(kmpl*10 + 0.5),
			Color:         args[6],
		})
		if err != nil {
			return err
		}
		cmd.Printf("Added %s %s (id %s)\n", car.Company, car.Model, car.ID)
		return nil
	},
}

var carListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the car inventory with positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cars, err := current.cars.ListAll()
		if err != nil {
			return err
		}
		if len(cars) == 0 {
			cmd.Println("No cars in inventory")
			return nil
		}
		for _, ic := range cars {
			printCar(cmd, ic.Index, ic.Car)
		}
		return nil
	},
}

var carUpdateCmd = &cobra.Command{
	Use:   "update <model> <field> <value>",
	Short: "Update one field of a car",
	Long: `Update one field of the first car with the given model name.
Fields: model, company, year, rate, capacity, mileage, color, availability.
Availability can only be set back to available here; cars are marked
unavailable by booking alone.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, ok := carFields[args[1]]
		if !ok {
			return fmt.Errorf("unknown field %q", args[1])
		}
		value := ""
		if len(args) == 3 {
			value = args[2]
		}
		if err := current.cars.UpdateField(args[0], field, value); err != nil {
			return err
		}
		cmd.Printf("Updated %s for %s\n", args[1], args[0])
		return nil
	},
}

var carRemoveCmd = &cobra.Command{
	Use:   "rm (<position> | --id <id>)",
	Short: "Remove a car by listing position or by id",
	Long: `Remove a car. A position refers to the listing taken immediately
before with "car list"; positions shift after any removal. Removing by id is
stable across listings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetString("id")
		if id != "" {
			if err := current.cars.RemoveByID(id); err != nil {
				return err
			}
			cmd.Printf("Removed car %s\n", id)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("a position or --id is required")
		}
		index, err := strconv.Atoi(args[0])
		if err != nil || index < 0 {
			return fmt.Errorf("bad position %q", args[0])
		}
		if err := current.cars.RemoveByIndex(index); err != nil {
			return err
		}
		cmd.Printf("Removed car at position %d\n", index)
		return nil
	},
}

func printCar(cmd *cobra.Command, index int, c fleet.Car) {
	status := "available"
	if !c.Available {
		status = "rented"
	}
	cmd.Printf("[%d] %s %s (%d) rate %.2f/day seats %d %.1f km/l %s - %s\n",
		index, c.Company, c.Model, c.Year,
		float64(c.RateCents)/100, c.Capacity, c.MileageKmpl(), c.Color, status)
}

func init() {
	rootCmd.AddCommand(carCmd)
	carCmd.AddCommand(carAddCmd)
	carCmd.AddCommand(carListCmd)
	carCmd.AddCommand(carUpdateCmd)
	carCmd.AddCommand(carRemoveCmd)
	carRemoveCmd.Flags().String("id", "", "remove by car id instead of position")
}
