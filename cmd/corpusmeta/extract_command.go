package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"corpusmeta/internal/catalog"
	"corpusmeta/internal/config"
	"corpusmeta/internal/corpus"
	"corpusmeta/internal/logging"
)

type extractReport struct {
	RunID  string `json:"run_id"`
	Output string `json:"output"`
	corpus.Summary
}

func newExtractCommand(ctx *commandContext) *cobra.Command {
	var (
		outputFlag string
		strictFlag bool
		probeFlag  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "extract [DIR]",
		Short: "Build metadata.csv from recording file names",
		Long: "Scan DIR (default extract.data_dir) for G_YYYY_[MF]_N_st.WAV recordings,\n" +
			"derive speaker, gender, birth year and age from each name, attach the\n" +
			"same-stem .txt transcript, and write one row per recording.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			dir := cfg.Extract.DataDir
			if len(args) == 1 {
				if dir, err = config.ExpandHome(strings.TrimSpace(args[0])); err != nil {
					return err
				}
			}
			output := cfg.Extract.Output
			if strings.TrimSpace(outputFlag) != "" {
				if output, err = config.ExpandHome(strings.TrimSpace(outputFlag)); err != nil {
					return err
				}
			}
			opts := corpus.Options{
				ReferenceYear:        cfg.Extract.ReferenceYear,
				EmotionPlaceholder:   cfg.Extract.EmotionPlaceholder,
				StrictFilenames:      cfg.Extract.StrictFilenames || strictFlag,
				NormalizeTranscripts: cfg.Extract.NormalizeTranscripts,
				ProbeDuration:        cfg.Extract.ProbeDuration || probeFlag,
			}

			runCtx, runID := logging.NewRunID(cmd.Context())
			started := time.Now()

			result, err := corpus.NewExtractor(opts, logger).Extract(runCtx, dir)
			if err != nil {
				return err
			}
			if err := writeTable(output, result.Table()); err != nil {
				return err
			}
			logging.WithContext(runCtx, logger).Info("wrote metadata",
				logging.String("output", output),
				logging.Int("rows", len(result.Records)),
			)

			if cfg.Catalog.Enabled {
				run := catalog.Run{
					ID:          runID,
					Kind:        catalog.RunExtract,
					Input:       dir,
					Output:      output,
					Rows:        len(result.Records),
					Diagnostics: len(result.Diagnostics),
					StartedAt:   started,
					FinishedAt:  time.Now(),
				}
				if err := catalogExtraction(runCtx, cfg, logger, run, result.Records); err != nil {
					warnCatalogFailure(runCtx, logger, err)
				}
			}

			report := extractReport{RunID: runID, Output: output, Summary: result.Summarize()}
			if jsonOutput {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printExtractReport(out, report, shouldColorize(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output path (.csv or .xlsx; default extract.output)")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Require the whole file name to match the recording grammar")
	cmd.Flags().BoolVar(&probeFlag, "duration", false, "Read WAV headers and add a duration column")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run summary as JSON")
	return cmd
}

func catalogExtraction(ctx context.Context, cfg *config.Config, logger *slog.Logger, run catalog.Run, records []corpus.Record) error {
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()

	if err := store.RecordRun(ctx, run); err != nil {
		return err
	}
	recs := make([]catalog.Recording, 0, len(records))
	for _, r := range records {
		recs = append(recs, catalog.Recording{
			File:          r.File,
			Speaker:       r.Speaker,
			Gender:        r.Gender,
			Age:           r.Age,
			BirthYear:     r.BirthYear,
			Emotion:       r.Emotion,
			Transcription: r.Transcription,
		})
	}
	n, err := store.UpsertRecordings(ctx, run.ID, recs)
	if err != nil {
		return fmt.Errorf("catalog recordings: %w", err)
	}
	logging.WithContext(ctx, logger).Info("catalogued recordings",
		logging.String("catalog", store.Path()),
		logging.Int("recordings", n),
	)
	return nil
}

func printExtractReport(out io.Writer, r extractReport, colorize bool) {
	printSection(out, "Extraction", colorize)
	fmt.Fprintln(out, renderStatusLine("Directory", statusInfo, r.Dir, colorize))
	fmt.Fprintln(out, renderStatusLine("Audio files", statusInfo, strconv.Itoa(r.Found), colorize))
	rowsKind := statusOK
	if r.Rows < r.Found {
		rowsKind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Rows", rowsKind, strconv.Itoa(r.Rows), colorize))
	fmt.Fprintln(out, renderStatusLine("Speakers", statusInfo, strconv.Itoa(r.Speakers), colorize))
	fmt.Fprintln(out, renderStatusLine("Output", statusInfo, r.Output, colorize))
	fmt.Fprintln(out)

	var diagRows [][]string
	for _, kind := range corpus.DiagnosticKinds {
		if n := r.Diagnostics[kind]; n > 0 {
			diagRows = append(diagRows, []string{string(kind), strconv.Itoa(n)})
		}
	}
	if len(diagRows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Diagnostic", "Count"}, diagRows, alignRightFrom(1, 2)))
		fmt.Fprintln(out)
	}

	if len(r.Genders) > 0 {
		rows := make([][]string, 0, len(r.Genders))
		for _, g := range r.Genders {
			rows = append(rows, []string{g.Value, strconv.Itoa(g.Count)})
		}
		fmt.Fprintln(out, renderTable([]string{"Gender", "Count"}, rows, alignRightFrom(1, 2)))
		fmt.Fprintln(out)
	}

	if r.Age.Count > 0 {
		a := r.Age
		fmt.Fprintln(out, renderTable(
			[]string{"Age", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"},
			[][]string{{"", strconv.Itoa(a.Count), fmtFloat(a.Mean), fmtFloat(a.Std), fmtFloat(a.Min),
				fmtFloat(a.Q25), fmtFloat(a.Q50), fmtFloat(a.Q75), fmtFloat(a.Max)}},
			alignRightFrom(1, 9),
		))
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// warnCatalogFailure logs a catalog error without failing the command.
func warnCatalogFailure(ctx context.Context, logger *slog.Logger, err error) {
	logging.WarnWithContext(logging.WithContext(ctx, logger), "catalog update failed", "catalog_failure",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check catalog.path or disable the catalog"),
		logging.String(logging.FieldImpact, "run not recorded in the catalog"),
	)
}
