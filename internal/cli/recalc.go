package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/pkg/pipeline"
)

// recalcOpts holds the command-line flags for the recalc command.
type recalcOpts struct {
	all         bool
	save        bool
	refresh     bool
	concurrency int
}

// recalcCommand resolves the positions of bearing-defined POIs.
func (c *CLI) recalcCommand() *cobra.Command {
	var opts recalcOpts

	cmd := &cobra.Command{
		Use:   "recalc [map-id]",
		Short: "Resolve bearing-defined positions (default: current map)",
		Long: `Resolve the position of every bearing-defined POI in dependency order.

POIs on a cyclic reference chain, and POIs that depend on one, keep their
previous position and are reported. Results are printed; pass --save to
write the new positions back.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.all && len(args) > 0 {
				return fmt.Errorf("--all cannot be combined with a map id")
			}
			ctx := cmd.Context()
			pOpts := pipeline.Options{
				Save:        opts.save,
				Refresh:     opts.refresh,
				Concurrency: opts.concurrency,
			}

			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				if !opts.all {
					res, err := r.RecalculateMap(ctx, firstArg(args), pOpts)
					if err != nil {
						return err
					}
					printRecalcResult(res, opts.save)
					return nil
				}

				prog := newProgress(loggerFromContext(ctx))
				results, err := r.RecalculateStore(ctx, pOpts)
				if err != nil {
					return err
				}
				for _, res := range results {
					printRecalcResult(res, opts.save)
				}
				prog.done(fmt.Sprintf("Recalculated %d maps", len(results)))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.BoolVar(&opts.all, "all", false, "recalculate every map")
	f.BoolVar(&opts.save, "save", false, "write new positions back to the store")
	f.BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	f.IntVar(&opts.concurrency, "concurrency", pipeline.DefaultConcurrency, "maps processed at once with --all")

	return cmd
}

func printRecalcResult(res *pipeline.Result, save bool) {
	switch {
	case res.Saved:
		printSuccess("Map %s: %d position(s) updated and saved", res.MapID, res.Stats.Updated)
	case res.Stats.Updated > 0 && !save:
		printInfo("Map %s: %d position(s) would change", res.MapID, res.Stats.Updated)
		printDetail("Run with --save to keep them")
	default:
		printSuccess("Map %s: positions up to date", res.MapID)
	}
	printStats(res.Stats.POICount, res.Stats.EdgeCount, res.Stats.Updated, res.CacheHit)

	if res.Stats.Cycles > 0 {
		printWarning("%d cyclic reference chain(s) left unchanged", res.Stats.Cycles)
		printCycles(res.Cycles, poiNames(res.POIs))
	}
	if res.Stats.Diagnostics > 0 {
		printDetail("%d record(s) or POI(s) could not be used; see the log for details", res.Stats.Diagnostics)
	}
}
