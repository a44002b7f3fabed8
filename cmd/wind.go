package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/windload-cli/internal/export"
	"github.com/sells-group/windload-cli/internal/midas"
	"github.com/sells-group/windload-cli/internal/store"
	"github.com/sells-group/windload-cli/internal/wind"
)

var windCmd = &cobra.Command{
	Use:   "wind",
	Short: "Compute wind line loads",
	Long:  "Builds the AASHTO pressure table from the wind database, expands the WS and WL case tables into per-element line loads, and optionally applies them to the model as beam loads.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("wind"); err != nil {
			return err
		}

		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		dbPath, _ := cmd.Flags().GetString("db")
		outPath, _ := cmd.Flags().GetString("out")
		apply, _ := cmd.Flags().GetBool("apply")
		if dbPath == "" {
			dbPath = cfg.Wind.DatabasePath
		}

		st, err := initStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, store.RunKindWind)
		if err != nil {
			return err
		}

		plan, flags, err := runWind(cmd, dbPath, snapshotPath, outPath, apply)
		if err != nil {
			if ferr := st.FailRun(ctx, run.ID, err); ferr != nil {
				zap.L().Warn("record failed run", zap.Error(ferr))
			}
			return err
		}

		summary := map[string]any{
			"rows":    len(plan),
			"status":  flags.StatusMessage(),
			"applied": apply,
		}
		if err := st.CompleteRun(ctx, run.ID, summary); err != nil {
			zap.L().Warn("record completed run", zap.Error(err))
		}

		fmt.Fprintf(os.Stdout, "%s: %d load rows\n", flags.StatusMessage(), len(plan))
		return nil
	},
}

func runWind(cmd *cobra.Command, dbPath, snapshotPath, outPath string, apply bool) ([]wind.Row, wind.Flags, error) {
	db, err := wind.LoadDatabase(dbPath)
	if err != nil {
		return nil, wind.Flags{}, err
	}

	snap, err := loadSnapshot(cmd, snapshotPath)
	if err != nil {
		return nil, wind.Flags{}, err
	}

	pipeline, err := wind.NewPipeline(db, snap)
	if err != nil {
		return nil, wind.Flags{}, err
	}

	plan, flags, err := pipeline.Run()
	if err != nil {
		return nil, flags, err
	}

	if outPath != "" {
		if err := export.WriteReportXLSX(outPath, pipeline.Pressures, plan); err != nil {
			return nil, flags, err
		}
		zap.L().Info("wrote load workbook", zap.String("path", outPath))
	}

	if apply {
		client := midas.NewClient(cfg.Midas.BaseURL, cfg.Midas.APIKey, midas.WithRateLimit(cfg.Midas.RateLimit))
		opts := midas.DefaultApplyOptions()
		opts.MaxItemsPerPut = cfg.Wind.MaxItemsPerPut
		if err := client.ApplyBeamLoads(cmd.Context(), plan, opts); err != nil {
			return nil, flags, err
		}
		zap.L().Info("applied beam loads", zap.Int("rows", len(plan)))
	}

	return plan, flags, nil
}

func init() {
	windCmd.Flags().String("db", "", "path to the wind database YAML (overrides config)")
	windCmd.Flags().String("snapshot", "", "read model tables from a snapshot JSON file instead of the API")
	windCmd.Flags().String("out", "", "write pressures and loads to an XLSX workbook")
	windCmd.Flags().Bool("apply", false, "apply the computed loads to the model as beam loads")

	rootCmd.AddCommand(windCmd)
}
