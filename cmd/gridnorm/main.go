// Package main provides the gridnorm CLI: load a workbook, enrich every
// sheet, and print the per-column analysis and diagnostics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/javajack/gridnorm"
	"github.com/javajack/gridnorm/merge"
	"github.com/javajack/gridnorm/normalize"
	"github.com/javajack/gridnorm/xlsxreader"
)

var (
	configPath    string
	mergeStrategy string
	coverageWarn  float64
	mixedWarn     float64
	dateOrder     string
	sheetName     string
	noHeader      bool
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridnorm [input.xlsx]",
		Short: "Analyze and normalize spreadsheet data",
		Long: `gridnorm loads a workbook, resolves merged cells, normalizes every
cell to a canonical typed value, and reports per-column types,
statistics, and diagnostics.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.Flags().StringVar(&mergeStrategy, "merge-strategy", "", "Merge strategy: expand, anchor, blank")
	rootCmd.Flags().Float64Var(&coverageWarn, "coverage-warn", -1, "Merge coverage warning threshold (0-1)")
	rootCmd.Flags().Float64Var(&mixedWarn, "mixed-threshold", -1, "Mixed-type minority threshold (0-1)")
	rootCmd.Flags().StringVar(&dateOrder, "date-order", "", "Ambiguous date reading: us or eu")
	rootCmd.Flags().StringVarP(&sheetName, "sheet", "s", "", "Analyze only the named sheet")
	rootCmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first row as data, not headers")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}

	sheets, err := xlsxreader.Load(inputPath, !noHeader)
	if err != nil {
		return fmt.Errorf("load workbook: %w", err)
	}

	if sheetName != "" {
		sheets = filterSheets(sheets, sheetName)
		if len(sheets) == 0 {
			return fmt.Errorf("sheet not found: %s", sheetName)
		}
	}

	enriched, err := gridnorm.EnrichAll(context.Background(), sheets, opts...)
	if err != nil {
		return fmt.Errorf("enrich workbook: %w", err)
	}

	for _, sheet := range enriched {
		fmt.Print(sheet.Describe())
	}
	return nil
}

// buildOptions merges the config file with command-line flags; flags win.
func buildOptions() ([]gridnorm.Option, error) {
	var opts []gridnorm.Option

	if configPath != "" {
		cfg, err := gridnorm.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfgOpts, err := cfg.Options()
		if err != nil {
			return nil, err
		}
		opts = append(opts, cfgOpts...)
	}

	if mergeStrategy != "" {
		strategy, err := merge.ParseStrategy(mergeStrategy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gridnorm.WithMergeStrategy(strategy))
	}
	if coverageWarn >= 0 {
		opts = append(opts, gridnorm.WithCoverageWarnThreshold(coverageWarn))
	}
	if mixedWarn >= 0 {
		opts = append(opts, gridnorm.WithMixedTypeThreshold(mixedWarn))
	}

	switch dateOrder {
	case "":
	case "us":
		opts = append(opts, gridnorm.WithDateOrder(normalize.OrderMDY))
	case "eu":
		opts = append(opts, gridnorm.WithDateOrder(normalize.OrderDMY))
	default:
		return nil, fmt.Errorf("invalid date order: %s (must be us or eu)", dateOrder)
	}

	if verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, gridnorm.WithLogger(logger))
	}

	return opts, nil
}

func filterSheets(sheets []*gridnorm.RawSheet, name string) []*gridnorm.RawSheet {
	var out []*gridnorm.RawSheet
	for _, s := range sheets {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}
