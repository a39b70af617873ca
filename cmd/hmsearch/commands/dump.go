package commands

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/hmsearch"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dump <path>",
		Short: "Print every partition slot of an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := indexOptions()
			if err != nil {
				return err
			}

			ix, err := hmsearch.Open(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			defer ix.Close()

			return ix.Dump(cmd.Context(), cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(cmd)
}
