package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hmsearch"
)

func init() {
	var (
		hashBits int
		maxError int
	)

	cmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Create a new index",
		Long: `Create a new index at the given path.

The hash bit-width and the maximum error are fixed at creation time
and cannot be changed afterwards. Fails if a store already exists at
the path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := indexOptions()
			if err != nil {
				return err
			}
			if err := hmsearch.Init(cmd.Context(), args[0], hashBits, maxError, opts...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created index at %s (hash bits %d, max error %d)\n", args[0], hashBits, maxError)
			return nil
		},
	}

	cmd.Flags().IntVar(&hashBits, "hash-bits", 64, "hash width in bits (multiple of 8)")
	cmd.Flags().IntVar(&maxError, "max-error", 6, "maximum Hamming distance to match")

	rootCmd.AddCommand(cmd)
}
