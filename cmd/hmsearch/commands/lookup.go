package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hmsearch"
	"github.com/hupe1980/hmsearch/codec"
)

func init() {
	var maxDistance int

	cmd := &cobra.Command{
		Use:   "lookup <path> <hex>",
		Short: "Find stored hashes near a query",
		Long: `Look up every stored hash within the index's maximum error of the
query, printing one "hex distance" line per match. --max-distance
narrows the cap for this query only.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := indexOptions()
			if err != nil {
				return err
			}

			query := codec.ParseHex(args[1])
			if query == nil {
				return fmt.Errorf("invalid hex hash %q", args[1])
			}

			ix, err := hmsearch.Open(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			defer ix.Close()

			var lookupOpts []hmsearch.LookupOption
			if maxDistance >= 0 {
				lookupOpts = append(lookupOpts, hmsearch.WithMaxDistance(maxDistance))
			}

			results, err := ix.Lookup(cmd.Context(), query, lookupOpts...)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", codec.FormatHex(r.Hash), r.Distance)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxDistance, "max-distance", -1, "cap results at this distance (-1 = index maximum)")

	rootCmd.AddCommand(cmd)
}
