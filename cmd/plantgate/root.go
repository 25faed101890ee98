package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plantgate",
	Short: "Session-authenticated gateway for the MedPlant API",
	Long: `PlantGate sits between browsers and the MedPlant plant
identification service. It keeps the bearer token out of the browser:
clients hold an HttpOnly session cookie, and the gateway attaches the
token to every upstream call.

Quick start:
  plantgate serve      # Start the gateway
  plantgate validate   # Validate configuration`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "plantgate.yaml", "config file path")
}
