package cli

import (
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/pkg/core/bearing"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/pipeline"
)

// bearingCommand creates the bearing record management command.
func (c *CLI) bearingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bearing",
		Short: "Add and remove bearing records of a POI",
	}

	cmd.AddCommand(c.bearingAddCommand())
	cmd.AddCommand(c.bearingRemoveCommand())

	return cmd
}

func (c *CLI) bearingAddCommand() *cobra.Command {
	var (
		mapID     string
		ref       string
		deg       float64
		distance  float64
		direction = string(poi.DirectionTo)
	)

	cmd := &cobra.Command{
		Use:   "add <poi-id>",
		Short: "Add a bearing record; the POI becomes bearing-defined",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, mapID)
				if err != nil {
					return err
				}
				p, i, ok := poi.Find(m.POIs, args[0])
				if !ok {
					return poiNotFound(args[0])
				}

				p = p.Clone()
				rec := poi.NewBearingRecord(ref, deg, distance, poi.Direction(direction), time.Now())
				p.BearingRecords = append(p.BearingRecords, rec)
				p.DefinitionMode = poi.ModeBearings
				if problems := bearing.ValidatePOI(p, m.POIs); len(problems) > 0 {
					return reportProblems(problems)
				}
				m.POIs[i] = p

				pois, err := c.resolve(ctx, r, m.ID, m.POIs)
				if err != nil {
					return err
				}
				updated, _, _ := poi.Find(pois, p.ID)
				printSuccess("Added bearing %s to %s", rec.ID, StyleValue.Render(p.Name))
				printDetail("Position: (%.1f, %.1f) from %d record(s)", updated.X, updated.Y, len(updated.BearingRecords))
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&mapID, "map", "", "map id (default: current map)")
	f.StringVar(&ref, "ref", "", "reference POI id")
	f.Float64Var(&deg, "bearing", 0, "compass bearing in degrees")
	f.Float64Var(&distance, "distance", 0, "distance in metres")
	f.StringVar(&direction, "direction", direction, "to or from the reference")
	_ = cmd.MarkFlagRequired("ref")
	_ = cmd.MarkFlagRequired("distance")
	return cmd
}

func (c *CLI) bearingRemoveCommand() *cobra.Command {
	var mapID string
	cmd := &cobra.Command{
		Use:     "remove <poi-id> <record-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a bearing record",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, mapID)
				if err != nil {
					return err
				}
				p, i, ok := poi.Find(m.POIs, args[0])
				if !ok {
					return poiNotFound(args[0])
				}
				n := len(p.BearingRecords)
				p = p.Clone()
				p.BearingRecords = slices.DeleteFunc(p.BearingRecords, func(rec poi.BearingRecord) bool {
					return rec.ID == args[1]
				})
				if len(p.BearingRecords) == n {
					return errors.New(errors.ErrCodeNotFound, "bearing record %s not found on %s", args[1], p.ID)
				}
				m.POIs[i] = p

				if _, err := c.resolve(ctx, r, m.ID, m.POIs); err != nil {
					return err
				}
				printSuccess("Removed bearing %s from %s", args[1], StyleValue.Render(p.Name))
				if len(p.BearingRecords) == 0 {
					printDetail("No records left; the position stays where it was")
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mapID, "map", "", "map id (default: current map)")
	return cmd
}
