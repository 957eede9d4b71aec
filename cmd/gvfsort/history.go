package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inodb/gvfsort/internal/duckdb"
	"github.com/inodb/gvfsort/internal/output"
	"github.com/inodb/gvfsort/internal/sorter"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit    int
		runID    string
		ledger   string
		clearAll bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show files processed by previous runs",
		Long:  "Print the run ledger (~/.gvfsort/ledger.duckdb) as tab-delimited rows, newest first.",
		Example: `  gvfsort history                 # last 20 files
  gvfsort history --limit 0       # everything
  gvfsort history --run 0f8fad5b-d9cb-469f-a165-70867728950e`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ledger
			if path == "" {
				path = viper.GetString("ledger.path")
			}
			if path == "" {
				var err error
				path, err = defaultLedgerPath()
				if err != nil {
					return err
				}
			}

			store, err := duckdb.Open(path)
			if err != nil {
				return fmt.Errorf("open ledger %s: %w", path, err)
			}
			defer store.Close()

			if clearAll {
				if err := store.ClearRuns(); err != nil {
					return fmt.Errorf("clear ledger: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared ledger %s\n", path)
				return nil
			}

			var recs []sorter.RunRecord
			if runID != "" {
				recs, err = store.RunFiles(cmd.Context(), runID)
			} else {
				recs, err = store.Runs(cmd.Context(), limit)
			}
			if err != nil {
				return err
			}

			w := output.NewTabWriter(cmd.OutOrStdout())
			if err := w.WriteHeader(); err != nil {
				return fmt.Errorf("write header: %w", err)
			}
			for _, rec := range recs {
				if err := w.Write(rec); err != nil {
					return fmt.Errorf("write record: %w", err)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Only show files of this run ID")
	cmd.Flags().StringVar(&ledger, "ledger", "", "Ledger database path (default: ~/.gvfsort/ledger.duckdb)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Delete all ledger rows")

	return cmd
}
