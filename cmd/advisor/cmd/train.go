package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"StockCompass/internal/forest"
	"StockCompass/internal/pipeline"
)

var (
	trainCSVs  []string
	trainOut   string
	trainTrees int
	trainSeed  int64
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the model on historical CSVs and save the artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		csvPaths := trainCSVs
		if len(csvPaths) == 0 {
			csvPaths = cfg.Data.CSVPaths
		}
		if len(csvPaths) == 0 {
			return fmt.Errorf("no CSV files: pass --csv or set data.csv_paths in the config")
		}
		out := trainOut
		if out == "" {
			out = cfg.Data.ModelPath
		}

		opts := forest.DefaultOptions()
		if trainTrees > 0 {
			opts.NumTrees = trainTrees
		}
		opts.Seed = trainSeed

		res, err := pipeline.Train(csvPaths, out, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Model saved to %s\n", res.ModelPath)
		fmt.Printf("Trained on %d rows across %d tickers\n", res.Rows, res.Tickers)
		fmt.Printf("MSE on held-out set: %.6f\n", res.MSE)
		return nil
	},
}

func init() {
	trainCmd.Flags().StringSliceVar(&trainCSVs, "csv", nil, "historical CSV files (repeatable)")
	trainCmd.Flags().StringVar(&trainOut, "out", "", "output model path (default from config)")
	trainCmd.Flags().IntVar(&trainTrees, "trees", 0, "number of trees (default 200)")
	trainCmd.Flags().Int64Var(&trainSeed, "seed", 42, "random seed")
}
