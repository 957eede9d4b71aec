package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/gvfsort/internal/duckdb"
	"github.com/inodb/gvfsort/internal/output"
	"github.com/inodb/gvfsort/internal/sorter"
)

func newSortCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Sort GVF files in place",
		Long: `Sort the data lines of every GVF file by chromosome and position and rewrite
the file in place. Files are truncated and rewritten without a backup; the
first error stops the run and files already rewritten stay rewritten.`,
		Example: `  gvfsort sort                      # case/*/ then control/ under the current directory
  gvfsort sort --root /data/study   # same layout under /data/study
  gvfsort sort --mode dir           # only the *.gvf files in the current directory`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindSortFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, false)
		},
	}
	addSortFlags(cmd)
	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report GVF files that are not sorted",
		Long: `Check every GVF file the sort command would process and list those whose data
lines are out of order. Files are never written. Exits 1 if any file is unsorted.`,
		Example: `  gvfsort check
  gvfsort check --mode dir --root ./control`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindSortFlags(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd, true)
		},
	}
	addSortFlags(cmd)
	return cmd
}

func addSortFlags(cmd *cobra.Command) {
	cmd.Flags().String("root", "", "Directory to process (default: current directory)")
	cmd.Flags().String("mode", "tree", "Layout: tree (case/*/ then control/) or dir (root only)")
	cmd.Flags().String("ext", ".gvf", "Extension of files to sort (exact match)")
	cmd.Flags().String("marker", "#", "First character of header lines")
	cmd.Flags().Bool("no-ledger", false, "Do not record this run in the ledger")
	cmd.Flags().String("ledger", "", "Ledger database path (default: ~/.gvfsort/ledger.duckdb)")
}

// bindSortFlags binds the flags of the running command to config keys.
// Binding happens per invocation because sort and check share keys.
func bindSortFlags(cmd *cobra.Command) error {
	for key, flag := range map[string]string{
		"root":        "root",
		"mode":        "mode",
		"extension":   "ext",
		"marker":      "marker",
		"ledger.path": "ledger",
	} {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// sortSettings resolves the sorter options, root and mode from config.
func sortSettings(checkOnly bool) (sorter.Options, string, sorter.Mode, error) {
	marker := viper.GetString("marker")
	if len(marker) != 1 {
		return sorter.Options{}, "", "", &usageError{fmt.Errorf("marker must be a single character, got %q", marker)}
	}

	mode, err := sorter.ParseMode(viper.GetString("mode"))
	if err != nil {
		return sorter.Options{}, "", "", &usageError{err}
	}

	root := viper.GetString("root")
	if root == "" {
		root, err = os.Getwd()
		if err != nil {
			return sorter.Options{}, "", "", fmt.Errorf("get working directory: %w", err)
		}
	}

	opts := sorter.Options{
		Extension: viper.GetString("extension"),
		Marker:    marker[0],
		CheckOnly: checkOnly,
	}
	return opts, root, mode, nil
}

func runSort(cmd *cobra.Command, checkOnly bool) error {
	opts, root, mode, err := sortSettings(checkOnly)
	if err != nil {
		return err
	}

	s := sorter.New(opts)
	s.SetOutput(cmd.OutOrStdout())
	s.SetLogger(logger)

	noLedger, _ := cmd.Flags().GetBool("no-ledger")
	if !noLedger && viper.GetBool("ledger.enabled") {
		if store := openLedger(); store != nil {
			defer store.Close()
			s.SetRecorder(store)
		}
	}

	logger.Debug("starting run",
		zap.String("run_id", s.RunID()),
		zap.String("root", root),
		zap.String("mode", string(mode)),
		zap.String("extension", opts.Extension),
		zap.Bool("check_only", checkOnly))

	results, err := sorter.Run(cmd.Context(), s, root, mode)
	if err != nil {
		return err
	}

	summary := output.Summarize(results)
	if checkOnly {
		output.WriteCheckSummary(cmd.OutOrStdout(), summary)
		if len(summary.Unsorted) > 0 {
			return errUnsorted
		}
		return nil
	}
	output.WriteSortSummary(cmd.OutOrStdout(), summary)
	return nil
}

// openLedger opens the run ledger. Failure is not fatal: the run proceeds
// without recording.
func openLedger() *duckdb.Store {
	path := viper.GetString("ledger.path")
	if path == "" {
		var err error
		path, err = defaultLedgerPath()
		if err != nil {
			logger.Warn("ledger disabled", zap.Error(err))
			return nil
		}
	}

	store, err := duckdb.Open(path)
	if err != nil {
		logger.Warn("ledger disabled", zap.String("path", path), zap.Error(err))
		return nil
	}
	return store
}
