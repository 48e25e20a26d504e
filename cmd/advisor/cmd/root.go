// Package cmd - StockCompass CLI commands
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"StockCompass/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "StockCompass — equity return prediction and recommendations",
	Long: `StockCompass turns historical daily price CSVs into forward-return
predictions and risk-aware buy/sell/hold recommendations.

Commands:
    train       fit the model on historical CSVs and save the artifact
    predict     generate recommendations as JSON on stdout
    serve       run the HTTP API with scheduled refreshes
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default configs/config.yaml)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(serveCmd)
}

// initConfig loads .env and the YAML config with env overrides applied.
func initConfig() error {
	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		path = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}
