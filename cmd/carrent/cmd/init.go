/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openfleet/carrent/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file naming the data directory and the
four store files.

Examples:
  carrent init
  carrent init --data-dir=./data --config=./carrent.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(configPath) && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}

		cfg := config.DefaultConfig()
		if dataDir != "" {
			cfg.DataDir = dataDir
		}
		if err := config.SaveConfig(cfg, configPath); err != nil {
			return err
		}

		cmd.Printf("Wrote config to %s (data dir %s)\n", configPath, cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}
