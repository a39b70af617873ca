// Package commands implements the hmsearch CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hmsearch"
)

var (
	logLevel string
	logJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "hmsearch",
	Short: "Approximate matching of binary hashes under Hamming distance",
	Long: `hmsearch - a persistent index for approximate hash matching.

The index stores fixed-width binary hashes and answers queries of the
form "return every stored hash within Hamming distance k of this one".
Hashes are given as lowercase hex on the command line and on stdin.

Examples:
  # Create an index for 64-bit hashes matching up to distance 6
  hmsearch init ./hashes.db --hash-bits 64 --max-error 6

  # Insert hashes from arguments or stdin (one hex hash per line)
  hmsearch insert ./hashes.db 8f3b2a90d1c45e67
  cat hashes.txt | hmsearch insert ./hashes.db --workers 4

  # Query
  hmsearch lookup ./hashes.db 8f3b2a90d1c45e66 --max-distance 2`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "enable logging at the given level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
}

// indexOptions translates the global logging flags into library
// options.
func indexOptions() ([]hmsearch.Option, error) {
	if logLevel == "" {
		return nil, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	logger := hmsearch.NewTextLogger(level)
	if logJSON {
		logger = hmsearch.NewJSONLogger(level)
	}
	return []hmsearch.Option{hmsearch.WithLogger(logger)}, nil
}
