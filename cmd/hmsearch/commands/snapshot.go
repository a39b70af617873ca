package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/hmsearch"
	"github.com/hupe1980/hmsearch/snapshot"
)

func init() {
	var compression string

	exportCmd := &cobra.Command{
		Use:   "export <path> [file]",
		Short: "Write a snapshot of an index",
		Long: `Stream every record of the index into a compressed, checksummed
snapshot. The snapshot goes to the given file, or to stdout when no
file is named.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := indexOptions()
			if err != nil {
				return err
			}

			comp, err := snapshot.ParseCompression(compression)
			if err != nil {
				return err
			}

			var w io.Writer = os.Stdout
			if len(args) == 2 {
				f, err := os.Create(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			ix, err := hmsearch.Open(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			defer ix.Close()

			return ix.Export(cmd.Context(), w, func(o *snapshot.Options) {
				o.Compression = comp
			})
		},
	}
	exportCmd.Flags().StringVar(&compression, "compression", "zstd", "snapshot compression (none, lz4, zstd)")

	importCmd := &cobra.Command{
		Use:   "import <path> [file]",
		Short: "Create an index from a snapshot",
		Long: `Replay a snapshot into a fresh index at the given path. The snapshot
is read from the given file, or from stdin when no file is named.
Fails if a store already exists at the path.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := indexOptions()
			if err != nil {
				return err
			}

			var r io.Reader = os.Stdin
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			if err := hmsearch.Import(cmd.Context(), args[0], r, opts...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported snapshot into %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(exportCmd, importCmd)
}
