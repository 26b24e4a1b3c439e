package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"corpusmeta/internal/catalog"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the run catalog",
	}
	catalogCmd.AddCommand(newCatalogRunsCommand(ctx))
	catalogCmd.AddCommand(newCatalogSpeakersCommand(ctx))
	catalogCmd.AddCommand(newCatalogRecordingsCommand(ctx))
	return catalogCmd
}

func (c *commandContext) withCatalog(fn func(*catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := catalog.Open(cfg)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func newCatalogRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded extract and merge runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []catalog.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						string(run.Kind),
						run.Input,
						run.Output,
						strconv.Itoa(run.Rows),
						strconv.Itoa(run.Diagnostics),
						run.Duration().Round(time.Millisecond).String(),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Started", "Kind", "Input", "Output", "Rows", "Diagnostics", "Took"},
					rows,
					alignRightFrom(4, 7),
				))
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func newCatalogSpeakersCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "speakers",
		Short: "Show catalogued recordings per speaker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				counts, err := store.SpeakerCounts(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					if counts == nil {
						counts = []catalog.SpeakerCount{}
					}
					return writeJSON(cmd, counts)
				}
				out := cmd.OutOrStdout()
				if len(counts) == 0 {
					fmt.Fprintln(out, "No recordings catalogued")
					return nil
				}
				rows := make([][]string, 0, len(counts))
				for _, sc := range counts {
					rows = append(rows, []string{sc.Speaker, sc.Gender, strconv.Itoa(sc.Recordings), strconv.Itoa(sc.Transcribed)})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Speaker", "Gender", "Recordings", "Transcribed"},
					rows,
					alignRightFrom(2, 4),
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print counts as JSON")
	return cmd
}

func newCatalogRecordingsCommand(ctx *commandContext) *cobra.Command {
	var speaker string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "recordings",
		Short: "List catalogued recordings by file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withCatalog(func(store *catalog.Store) error {
				all, err := store.Recordings(cmd.Context())
				if err != nil {
					return err
				}
				recs := make([]catalog.Recording, 0, len(all))
				for _, rec := range all {
					if speaker == "" || rec.Speaker == speaker {
						recs = append(recs, rec)
					}
				}
				if jsonOutput {
					return writeJSON(cmd, recs)
				}
				out := cmd.OutOrStdout()
				if len(recs) == 0 {
					fmt.Fprintln(out, "No recordings catalogued")
					return nil
				}
				rows := make([][]string, 0, len(recs))
				for _, rec := range recs {
					rows = append(rows, []string{
						rec.File,
						rec.Speaker,
						rec.Gender,
						strconv.Itoa(rec.Age),
						strconv.Itoa(rec.BirthYear),
						yesNo(rec.Transcription != ""),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"File", "Speaker", "Gender", "Age", "Born", "Transcript"},
					rows,
					alignRightFrom(3, 5),
				))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&speaker, "speaker", "", "Only show recordings of this speaker label")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print recordings as JSON")
	return cmd
}
