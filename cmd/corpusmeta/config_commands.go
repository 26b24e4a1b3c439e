package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"corpusmeta/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Long:        "Write the annotated sample configuration to --path (default ~/.config/corpusmeta/config.toml).",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			if !overwrite {
				_, statErr := os.Stat(target)
				switch {
				case statErr == nil:
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				case !errors.Is(statErr, fs.ErrNotExist):
					return fmt.Errorf("check config path: %w", statErr)
				}
			}
			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit extract.data_dir and the merge table paths to point at your corpus.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func initTarget(flagValue string) (string, error) {
	target := strings.TrimSpace(flagValue)
	if target == "" {
		path, err := config.DefaultConfigPath()
		if err != nil {
			return "", fmt.Errorf("determine default config path: %w", err)
		}
		return path, nil
	}
	path, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return path, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report the resolved settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			printResolvedConfig(cmd.OutOrStdout(), ctx, cfg)
			return nil
		},
	}
}

func printResolvedConfig(out io.Writer, ctx *commandContext, cfg *config.Config) {
	source := ctx.configPath
	if !ctx.configExists {
		source += " (not found; defaults were used)"
	}
	rows := [][]string{
		{"config", source},
		{"extract.data_dir", cfg.Extract.DataDir},
		{"extract.output", cfg.Extract.Output},
		{"extract.reference_year", fmt.Sprintf("%d", cfg.Extract.ReferenceYear)},
		{"extract.strict_filenames", yesNo(cfg.Extract.StrictFilenames)},
		{"merge.left", cfg.Merge.Left},
		{"merge.right", cfg.Merge.Right},
		{"merge.output", cfg.Merge.Output},
		{"merge.keys", strings.Join(cfg.Merge.Keys, ", ")},
		{"catalog.enabled", yesNo(cfg.Catalog.Enabled)},
		{"catalog.path", cfg.Catalog.Path},
		{"logging", cfg.Logging.Format + "/" + cfg.Logging.Level},
		{"logging.file", cfg.Logging.File},
	}
	fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
	fmt.Fprintln(out, "Configuration valid")
}
