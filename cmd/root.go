package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/windload-cli/internal/config"
	"github.com/sells-group/windload-cli/internal/midas"
	"github.com/sells-group/windload-cli/internal/model"
	"github.com/sells-group/windload-cli/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "windload-cli",
	Short: "Bridge wind-load automation for MIDAS Civil NX models",
	Long:  "Classifies frame elements into structure groups by geometry and computes AASHTO wind line loads, pushing both back to the model over the MIDAS API.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initStore opens the run-history database and applies migrations.
func initStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// loadSnapshot fetches the model tables, either from a local snapshot file
// or live from the MIDAS API.
func loadSnapshot(cmd *cobra.Command, snapshotPath string) (*model.Snapshot, error) {
	if snapshotPath != "" {
		return model.LoadSnapshot(snapshotPath)
	}
	client := midas.NewClient(cfg.Midas.BaseURL, cfg.Midas.APIKey, midas.WithRateLimit(cfg.Midas.RateLimit))
	return client.Snapshot(cmd.Context())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
