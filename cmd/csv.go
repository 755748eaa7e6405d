package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"econfeed/core/config"
	"econfeed/core/database"
	"econfeed/core/logger"
	"econfeed/feature/csvimport"
	"econfeed/feature/importer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// csvCmd ingests one local CSV file without starting the server.
var csvCmd = &cobra.Command{
	Use:   "csv <file>",
	Short: "Ingest a local CSV file of indicator releases",
	Long: `Validate and reconcile a CSV file into the store. The whole file is
rejected if any row fails validation.

Example:
  econfeed csv ./releases-q1.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runCSV,
}

func runCSV(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	engine := importer.NewEngine(importer.NewStore(db), logg)
	// No archive for local one-shot runs.
	svc := csvimport.NewService(engine, nil, "", logg)

	result, rejection, err := svc.Ingest(context.Background(), filepath.Base(path), data)
	if err != nil {
		return err
	}
	if rejection != nil {
		for _, e := range rejection.Errors {
			logg.Warn("Validation error", zap.String("error", e))
		}
		return fmt.Errorf("file rejected with %d validation errors", rejection.TotalErrors)
	}

	logg.Info("CSV ingested",
		zap.Int("indicators_upserted", result.IndicatorsUpserted),
		zap.Int("releases_inserted", result.ReleasesInserted))

	return nil
}

func init() {
	RootCmd.AddCommand(csvCmd)
}
