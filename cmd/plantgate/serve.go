package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	gatehttp "github.com/medplant/plantgate/adapters/http"
	"github.com/medplant/plantgate/bootstrap"
	"github.com/medplant/plantgate/config"
)

var (
	hotReload bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway server",
	Long: `Start the PlantGate gateway server.

The server will:
  - Load configuration from plantgate.yaml (or --config)
  - Or load configuration from PLANTGATE_* environment variables
  - Relay /api requests to the MedPlant upstream
  - Manage the browser session cookie

Environment variables (for Docker deployments):
  PLANTGATE_UPSTREAM_URL    - MedPlant API URL (required)
  PLANTGATE_SERVER_PORT     - Server port (default: 8080)
  PLANTGATE_SESSION_SECURE  - Mark the session cookie Secure
  PLANTGATE_LOG_LEVEL       - Log level: debug, info, warn, error

Examples:
  plantgate serve
  plantgate serve --config /etc/plantgate/config.yaml
  plantgate serve --hot-reload=false

  # Docker (env vars only):
  PLANTGATE_UPSTREAM_URL=http://medplant:8000 plantgate serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&hotReload, "hot-reload", true, "enable hot reload of configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	gatehttp.Version = version

	hasConfigFile := false
	if _, err := os.Stat(cfgFile); err == nil {
		hasConfigFile = true
	}

	// No configuration at all
	if !hasConfigFile && !config.HasEnvConfig() {
		fmt.Println("No configuration found.")
		fmt.Println()
		fmt.Printf("Option 1: Create %s with an upstream.url entry\n", cfgFile)
		fmt.Println("Option 2: Set PLANTGATE_UPSTREAM_URL environment variable")
		fmt.Println()
		fmt.Println("Example (env vars):")
		fmt.Println("  PLANTGATE_UPSTREAM_URL=http://medplant:8000 plantgate serve")
		return nil
	}

	// Create application
	var app *bootstrap.App
	var err error

	if hasConfigFile && hotReload {
		// Hot reload only works with a config file
		app, err = bootstrap.NewWithHotReload(cfgFile)
	} else {
		cfg, loadErr := config.LoadWithFallback(cfgFile)
		if loadErr != nil {
			return fmt.Errorf("error loading config: %w", loadErr)
		}

		if !hasConfigFile {
			fmt.Println("Running with environment variables (no config file)")
		}

		app, err = bootstrap.New(cfg)
	}

	if err != nil {
		return fmt.Errorf("error initializing: %w", err)
	}

	// Run (blocks until shutdown)
	return app.Run()
}
