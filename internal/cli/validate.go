package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/pkg/core/depgraph"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/pipeline"
)

// validateCommand checks every POI of a map without changing anything.
func (c *CLI) validateCommand() *cobra.Command {
	var poiID string

	cmd := &cobra.Command{
		Use:   "validate [map-id]",
		Short: "Check bearing records and reference cycles",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, firstArg(args))
				if err != nil {
					return err
				}

				targets := m.POIs
				if poiID != "" {
					p, _, ok := poi.Find(m.POIs, poiID)
					if !ok {
						return poiNotFound(poiID)
					}
					targets = []poi.POI{p}
				}

				problems := 0
				for _, p := range targets {
					msgs, err := r.ValidatePOI(ctx, m.ID, p)
					if err != nil {
						return err
					}
					if len(msgs) == 0 {
						continue
					}
					printError("%s (%s)", p.Name, p.ID)
					for _, msg := range msgs {
						printDetail("%s", msg)
					}
					problems += len(msgs)
				}

				cycles := depgraph.DetectCycles(depgraph.Build(m.POIs))
				if len(cycles) > 0 {
					printWarning("%d cyclic reference chain(s)", len(cycles))
					printCycles(cycles, poiNames(m.POIs))
				}

				if problems > 0 {
					return errors.New(errors.ErrCodeInvalidInput, "%d validation problem(s)", problems)
				}
				printSuccess("%d POI(s) valid", len(targets))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&poiID, "poi", "", "validate a single POI")
	return cmd
}
