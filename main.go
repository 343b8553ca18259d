package main

import (
	"fmt"
	"os"

	"github.com/chaoslab/rollout-api/app"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configName string
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:   "rollout-api",
		Short: "Deployment-strategy controller for the blue-green chaos workshop",
		Long: "Manages two pod pools (blue and green), shifts capacity between them " +
			"according to the selected deployment strategy, and supports chaos " +
			"injection by deleting pods to observe the cluster's self-healing.",
		RunE: func(cmd *cobra.Command, args []string) error {
			restApp, err := app.NewRestApp(configName, configPath)
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			restApp.Run()
			return nil
		},
	}

	rootCmd.Flags().StringVar(&configName, "config", "", "config file name without extension (default rollout_config)")
	rootCmd.Flags().StringVar(&configPath, "config-path", "", "additional directory to search for the config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
