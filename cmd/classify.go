package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/windload-cli/internal/classify"
	"github.com/sells-group/windload-cli/internal/export"
	"github.com/sells-group/windload-cli/internal/geometry"
	"github.com/sells-group/windload-cli/internal/midas"
	"github.com/sells-group/windload-cli/internal/store"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Group frame elements by geometry",
	Long:  "Splits the model into deck and substructure by section shape, clusters substructure members into piers by plan proximity, and splits each pier into cap, column, and above-deck groups.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("classify"); err != nil {
			return err
		}

		snapshotPath, _ := cmd.Flags().GetString("snapshot")
		outPath, _ := cmd.Flags().GetString("out")
		push, _ := cmd.Flags().GetBool("push")
		modelUnit, _ := cmd.Flags().GetString("model-unit")

		st, err := initStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.CreateRun(ctx, store.RunKindClassify)
		if err != nil {
			return err
		}

		result, err := runClassify(cmd, snapshotPath, modelUnit, outPath, push)
		if err != nil {
			if ferr := st.FailRun(ctx, run.ID, err); ferr != nil {
				zap.L().Warn("record failed run", zap.Error(ferr))
			}
			return err
		}

		summary := map[string]any{
			"groups":      len(result.Groups),
			"deck":        len(result.Deck),
			"substruct":   len(result.Substructure),
			"unclustered": len(result.Unclustered),
		}
		if err := st.CompleteRun(ctx, run.ID, summary); err != nil {
			zap.L().Warn("record completed run", zap.Error(err))
		}

		formatClassifyResult(os.Stdout, result)
		return nil
	},
}

func runClassify(cmd *cobra.Command, snapshotPath, modelUnit, outPath string, push bool) (*classify.Result, error) {
	snap, err := loadSnapshot(cmd, snapshotPath)
	if err != nil {
		return nil, err
	}

	cache := geometry.NewCache(snap.Nodes, snap.Elements)
	classifier := classify.New(cache, classify.Options{
		PierRadius:   cfg.Classify.PierRadius,
		RadiusUnit:   cfg.Classify.RadiusUnit,
		ModelUnit:    modelUnit,
		PierBaseName: cfg.Classify.PierBaseName,
		StartIndex:   cfg.Classify.StartIndex,
	})

	result, err := classifier.Run(snap.Elements, classify.SuperstructureSections(snap.Sections))
	if err != nil {
		return nil, err
	}

	if outPath != "" {
		if err := export.WriteGroupsXLSX(outPath, result.Groups); err != nil {
			return nil, err
		}
		zap.L().Info("wrote classification workbook", zap.String("path", outPath))
	}

	if push {
		if err := pushGroups(cmd, result.Groups); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// pushGroups writes the classified groups back to the model as structure
// groups. Element ids that are not numeric are skipped.
func pushGroups(cmd *cobra.Command, groups map[string][]string) error {
	byName := make(map[string][]int, len(groups))
	for name, ids := range groups {
		members := make([]int, 0, len(ids))
		for _, id := range ids {
			n, err := strconv.Atoi(id)
			if err != nil {
				continue
			}
			members = append(members, n)
		}
		byName[name] = members
	}

	client := midas.NewClient(cfg.Midas.BaseURL, cfg.Midas.APIKey, midas.WithRateLimit(cfg.Midas.RateLimit))
	if err := client.UpsertGroups(cmd.Context(), byName); err != nil {
		return eris.Wrap(err, "classify: push groups")
	}
	zap.L().Info("pushed structure groups", zap.Int("groups", len(byName)))
	return nil
}

// formatClassifyResult writes a tabular summary of the classification to w.
func formatClassifyResult(out io.Writer, r *classify.Result) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Deck elements:\t%d\n", len(r.Deck))
	_, _ = fmt.Fprintf(w, "Substructure elements:\t%d\n", len(r.Substructure))
	if r.HasDeckReference {
		_, _ = fmt.Fprintf(w, "Deck reference height:\t%.3f\n", r.DeckReferenceHeight)
	}

	names := make([]string, 0, len(r.Groups))
	for name := range r.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintf(w, "%s:\t%d elements\n", name, len(r.Groups[name]))
	}

	if len(r.Unclustered) > 0 {
		_, _ = fmt.Fprintf(w, "Unclustered:\t%d elements\n", len(r.Unclustered))
	}
	_ = w.Flush()
}

func init() {
	classifyCmd.Flags().String("snapshot", "", "read model tables from a snapshot JSON file instead of the API")
	classifyCmd.Flags().String("out", "", "write the classified groups to an XLSX workbook")
	classifyCmd.Flags().Bool("push", false, "write the classified groups back to the model")
	classifyCmd.Flags().String("model-unit", "FT", "length unit of the model (FT, M, MM, IN, CM)")

	rootCmd.AddCommand(classifyCmd)
}
