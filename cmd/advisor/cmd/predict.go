package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"StockCompass/internal/model"
	"StockCompass/internal/pipeline"
	"StockCompass/internal/realtime"
)

var (
	predictModel    string
	predictCSVs     []string
	predictRisk     int
	predictHorizon  string
	predictTop      int
	predictRealtime string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Generate recommendations as JSON on stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath := predictModel
		if modelPath == "" {
			modelPath = cfg.Data.ModelPath
		}
		csvPaths := predictCSVs
		if len(csvPaths) == 0 {
			csvPaths = cfg.Data.CSVPaths
		}
		if len(csvPaths) == 0 {
			return fmt.Errorf("no CSV files: pass --csv or set data.csv_paths in the config")
		}
		if predictRisk < 0 || predictRisk > 100 {
			return fmt.Errorf("--risk must be within 0-100")
		}
		switch predictHorizon {
		case "short", "medium", "long":
		default:
			return fmt.Errorf("--horizon must be short, medium or long")
		}

		snapshot := realtime.Resolve(predictRealtime, cfg.Realtime.APIKey, cfg.Proxy)
		recs, err := pipeline.Recommend(pipeline.Request{
			ModelPath: modelPath,
			CSVPaths:  csvPaths,
			Profile: model.UserProfile{
				RiskScore:            predictRisk,
				TimeHorizon:          model.Horizon(predictHorizon),
				DiversificationScore: cfg.Profile.DiversificationScore,
			},
			TopK:     predictTop,
			Snapshot: snapshot,
		})
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	},
}

func init() {
	predictCmd.Flags().StringVar(&predictModel, "model", "", "path to the saved model (default from config)")
	predictCmd.Flags().StringSliceVar(&predictCSVs, "csv", nil, "historical CSV files (repeatable)")
	predictCmd.Flags().IntVar(&predictRisk, "risk", 50, "user risk score 0-100")
	predictCmd.Flags().StringVar(&predictHorizon, "horizon", "medium", "time horizon: short, medium or long")
	predictCmd.Flags().IntVar(&predictTop, "top", 5, "number of recommendations")
	predictCmd.Flags().StringVar(&predictRealtime, "realtime", "", "realtime snapshot: URL, file path, or inline JSON")
}
