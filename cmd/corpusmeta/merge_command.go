package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"corpusmeta/internal/catalog"
	"corpusmeta/internal/config"
	"corpusmeta/internal/logging"
	"corpusmeta/internal/merge"
)

type mergeReport struct {
	RunID       string      `json:"run_id"`
	Left        string      `json:"left"`
	Right       string      `json:"right"`
	Output      string      `json:"output"`
	Keys        []string    `json:"keys"`
	LeftShape   merge.Shape `json:"left_shape"`
	RightShape  merge.Shape `json:"right_shape"`
	LeftUnique  []string    `json:"left_unique"`
	RightUnique []string    `json:"right_unique"`
	Shape       merge.Shape `json:"shape"`
	Columns     []string    `json:"columns"`
}

func newMergeCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag string
		keysFlag   []string
		inferFlag  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "merge [LEFT] [RIGHT]",
		Short: "Join linguistic and acoustic segment tables",
		Long: "Inner-join LEFT (default merge.left) and RIGHT (default merge.right) on the\n" +
			"segment identity columns and write the combined table.",
		Args: cobra.RangeArgs(0, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			paths := []string{cfg.Merge.Left, cfg.Merge.Right}
			for i, arg := range args {
				if paths[i], err = config.ExpandHome(strings.TrimSpace(arg)); err != nil {
					return err
				}
			}
			output := cfg.Merge.Output
			if strings.TrimSpace(outputFlag) != "" {
				if output, err = config.ExpandHome(strings.TrimSpace(outputFlag)); err != nil {
					return err
				}
			}
			opts := merge.Options{Keys: cfg.MergeKeys(), InferKeys: cfg.Merge.InferKeys || inferFlag}
			if len(keysFlag) > 0 {
				opts.Keys = keysFlag
				opts.InferKeys = false
			}

			runCtx, runID := logging.NewRunID(cmd.Context())
			started := time.Now()

			left, right := merge.FileSource{Path: paths[0]}, merge.FileSource{Path: paths[1]}
			result, err := merge.NewMerger(opts, logger).Merge(runCtx, left, right)
			if err != nil {
				return err
			}
			if err := writeTable(output, result.Table); err != nil {
				return err
			}
			logging.WithContext(runCtx, logger).Info("wrote merged table",
				logging.String("output", output),
				logging.Int("rows", len(result.Table.Rows)),
			)

			if cfg.Catalog.Enabled {
				run := catalog.Run{
					ID:         runID,
					Kind:       catalog.RunMerge,
					Input:      paths[0] + "," + paths[1],
					Output:     output,
					Rows:       len(result.Table.Rows),
					StartedAt:  started,
					FinishedAt: time.Now(),
				}
				if err := catalogMerge(runCtx, cfg, run); err != nil {
					warnCatalogFailure(runCtx, logger, err)
				}
			}

			report := mergeReport{
				RunID:       runID,
				Left:        paths[0],
				Right:       paths[1],
				Output:      output,
				Keys:        result.Keys,
				LeftShape:   result.LeftShape,
				RightShape:  result.RightShape,
				LeftUnique:  nonNil(result.LeftUnique),
				RightUnique: nonNil(result.RightUnique),
				Shape:       result.Shape(),
				Columns:     result.Table.Columns,
			}
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printMergeReport(out, report, shouldColorize(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (.csv or .xlsx; default merge.output)")
	cmd.Flags().StringSliceVar(&keysFlag, "keys", nil, "Comma-separated join columns (default merge.keys)")
	cmd.Flags().BoolVar(&inferFlag, "infer-keys", false, "Join on every column both tables share")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the merge summary as JSON")
	cmd.MarkFlagsMutuallyExclusive("keys", "infer-keys")
	return cmd
}

func catalogMerge(ctx context.Context, cfg *config.Config, run catalog.Run) error {
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()
	return store.RecordRun(ctx, run)
}

func printMergeReport(out io.Writer, r mergeReport, colorize bool) {
	printSection(out, "Merge", colorize)
	rows := [][]string{
		{"left", r.Left, r.LeftShape.String(), joinOrDash(r.LeftUnique)},
		{"right", r.Right, r.RightShape.String(), joinOrDash(r.RightUnique)},
		{"combined", r.Output, r.Shape.String(), ""},
	}
	fmt.Fprintln(out, renderTable([]string{"Table", "Path", "Shape", "Unique columns"}, rows, nil))
	fmt.Fprintln(out)
	kind := statusOK
	if r.Shape.Rows == 0 {
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Keys", statusInfo, strings.Join(r.Keys, ", "), colorize))
	fmt.Fprintln(out, renderStatusLine("Rows", kind, fmt.Sprintf("%d", r.Shape.Rows), colorize))
	fmt.Fprintln(out, renderStatusLine("Columns", statusInfo, strings.Join(r.Columns, ", "), colorize))
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
