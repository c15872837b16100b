/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openfleet/carrent/pkg/booking"
	"github.com/openfleet/carrent/pkg/config"
	"github.com/openfleet/carrent/pkg/fleet"
	"github.com/openfleet/carrent/pkg/ledger"
	"github.com/openfleet/carrent/pkg/logging"
	"github.com/openfleet/carrent/pkg/metrics"
	"github.com/openfleet/carrent/pkg/users"
)

// app holds the wired-up stores and services shared by all commands.
type app struct {
	cfg      *config.Config
	users    *users.Store
	cars     *fleet.Store
	rentals  *ledger.Ledger
	bookings *booking.Service
}

var (
	configPath string
	dataDir    string
	current    *app
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carrent",
	Short: "carrent - flat-file car rental system",
	Long: `carrent manages registered users, a car inventory, and a rental
ledger as fixed-width binary records in flat files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" {
			return nil
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		logging.Setup(cfg.Logging.Level)

		userStore, err := users.NewStore(cfg.UsersPath(), cfg.CounterPath())
		if err != nil {
			return fmt.Errorf("failed to open user store: %w", err)
		}
		carStore, err := fleet.NewStore(cfg.CarsPath())
		if err != nil {
			return fmt.Errorf("failed to open car store: %w", err)
		}
		rentalLedger, err := ledger.NewLedger(cfg.RentalsPath())
		if err != nil {
			return fmt.Errorf("failed to open rental ledger: %w", err)
		}

		m := metrics.NewStoreMetrics()
		userStore.SetObserver(m)
		carStore.SetObserver(m)
		rentalLedger.SetObserver(m)

		current = &app{
			cfg:      cfg,
			users:    userStore,
			cars:     carStore,
			rentals:  rentalLedger,
			bookings: booking.NewService(carStore, rentalLedger),
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetDefaultConfigPath(), "path to the config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the configured data directory")
}
