package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/gvfsort/internal/sorter"
)

// configKeys are the settings gvfsort reads.
var configKeys = []string{
	"root",
	"mode",
	"extension",
	"marker",
	"verbose",
	"ledger.enabled",
	"ledger.path",
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gvfsort configuration",
		Long: `Show, get, or set configuration values. Config is stored in ~/.gvfsort.yaml.

Keys: ` + strings.Join(configKeys, ", ") + `.
Environment variables GVFSORT_<KEY> (dots become underscores) override the file.`,
		Example: `  gvfsort config                        # show all config
  gvfsort config set mode dir           # sort the current directory only
  gvfsort config set ledger.enabled off # stop recording runs
  gvfsort config get extension          # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <key> <value>",
		Short:     "Set a configuration value",
		Args:      cobra.ExactArgs(2),
		ValidArgs: configKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Get a configuration value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: configKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

func runConfigShow(w io.Writer) error {
	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Fprintln(w, "# No configuration set. Config file: ~/.gvfsort.yaml")
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

// validateSetting rejects unknown keys and values sort would refuse later.
func validateSetting(key, value string) error {
	if !slices.Contains(configKeys, key) {
		return &usageError{fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(configKeys, ", "))}
	}
	switch key {
	case "mode":
		if _, err := sorter.ParseMode(value); err != nil {
			return &usageError{err}
		}
	case "marker":
		if len(value) != 1 {
			return &usageError{fmt.Errorf("marker must be a single character, got %q", value)}
		}
	case "extension":
		if !strings.HasPrefix(value, ".") {
			return &usageError{fmt.Errorf("extension must start with '.', got %q", value)}
		}
	}
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	if err := validateSetting(key, value); err != nil {
		return err
	}

	// Parse boolean-like values
	switch value {
	case "true", "yes", "on":
		viper.Set(key, true)
	case "false", "no", "off":
		viper.Set(key, false)
	default:
		viper.Set(key, value)
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, ".gvfsort.yaml")
	}

	if err := viper.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, val)
	return nil
}
