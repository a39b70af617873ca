package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/hmsearch"
	"github.com/hupe1980/hmsearch/codec"
)

func init() {
	var (
		workers   int
		insertsPS float64
		dedupe    bool
	)

	cmd := &cobra.Command{
		Use:   "insert <path> [hex...]",
		Short: "Insert hashes into an index",
		Long: `Insert hashes given as hex arguments, or read from stdin one hex
hash per line when no hash arguments are present. Blank lines and
lines starting with '#' are skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := indexOptions()
			if err != nil {
				return err
			}
			if dedupe {
				opts = append(opts, hmsearch.WithDedupe(true))
			}

			if workers < 1 {
				workers = 1
			}

			ix, err := hmsearch.Open(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			defer ix.Close()

			var limiter *rate.Limiter
			if insertsPS > 0 {
				limiter = rate.NewLimiter(rate.Limit(insertsPS), 1)
			}

			lines := make(chan string, workers)
			var inserted atomic.Int64

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				defer close(lines)
				if len(args) > 1 {
					for _, arg := range args[1:] {
						select {
						case lines <- arg:
						case <-ctx.Done():
							return ctx.Err()
						}
					}
					return nil
				}
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					if line == "" || strings.HasPrefix(line, "#") {
						continue
					}
					select {
					case lines <- line:
					case <-ctx.Done():
						return ctx.Err()
					}
				}
				return scanner.Err()
			})

			for w := 0; w < workers; w++ {
				g.Go(func() error {
					for line := range lines {
						hash := codec.ParseHex(line)
						if hash == nil {
							return fmt.Errorf("invalid hex hash %q", line)
						}
						if limiter != nil {
							if err := limiter.Wait(ctx); err != nil {
								return err
							}
						}
						if err := ix.Insert(ctx, hash); err != nil {
							return err
						}
						inserted.Add(1)
					}
					return nil
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Inserted %d hashes\n", inserted.Load())
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 1, "number of concurrent insert workers")
	cmd.Flags().Float64Var(&insertsPS, "rate", 0, "limit inserts per second (0 = unlimited)")
	cmd.Flags().BoolVar(&dedupe, "dedupe", false, "skip hashes already present in a slot")

	rootCmd.AddCommand(cmd)
}
