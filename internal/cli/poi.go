package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/pkg/core/bearing"
	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
	"github.com/matzehuels/poimap/pkg/pipeline"
)

// poiCommand creates the POI management command.
func (c *CLI) poiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poi",
		Short: "Add, list and remove points of interest",
	}

	cmd.AddCommand(c.poiAddCommand())
	cmd.AddCommand(c.poiListCommand())
	cmd.AddCommand(c.poiShowCommand())
	cmd.AddCommand(c.poiRemoveCommand())

	return cmd
}

// poiAddOpts holds the flags of `poi add`. Exactly one placement is used:
// --ref (a bearing from another POI), --at (a position converted into a
// bearing from Lifeboat 5) or --x/--y.
type poiAddOpts struct {
	mapID     string
	category  string
	notes     string
	x, y      float64
	depth     float64
	at        string
	ref       string
	bearing   float64
	distance  float64
	direction string
}

func (c *CLI) poiAddCommand() *cobra.Command {
	opts := poiAddOpts{category: string(poi.CategoryLandmark), direction: string(poi.DirectionTo)}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a POI by coordinates or by bearing",
		Example: `  poimap poi add "Aurora" --type wreck --ref lifeboat-5 --bearing 90 --distance 400
  poimap poi add "Kelp" --type biome --x 120 --y -40 --depth 30
  poimap poi add "Cave" --type cave --at 300,150`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, opts.mapID)
				if err != nil {
					return err
				}
				p, err := opts.build(args[0], m.POIs, time.Now())
				if err != nil {
					return err
				}
				if problems := bearing.ValidatePOI(p, m.POIs); len(problems) > 0 {
					return reportProblems(problems)
				}

				pois, err := c.resolve(ctx, r, m.ID, append(m.POIs, p))
				if err != nil {
					return err
				}
				added, _, _ := poi.Find(pois, p.ID)
				printSuccess("Added %s %s at (%.1f, %.1f)", added.Category.Info().Emoji, StyleValue.Render(added.Name), added.X, added.Y)
				printDetail("ID: %s", added.ID)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.mapID, "map", "", "map id (default: current map)")
	f.StringVarP(&opts.category, "type", "t", opts.category, "POI type")
	f.StringVar(&opts.notes, "notes", "", "free-form notes")
	f.Float64Var(&opts.x, "x", 0, "x coordinate (east)")
	f.Float64Var(&opts.y, "y", 0, "y coordinate (south)")
	f.Float64Var(&opts.depth, "depth", 0, "depth in metres")
	f.StringVar(&opts.at, "at", "", "position x,y converted into a bearing from Lifeboat 5")
	f.StringVar(&opts.ref, "ref", "", "reference POI id for a bearing")
	f.Float64Var(&opts.bearing, "bearing", 0, "compass bearing in degrees")
	f.Float64Var(&opts.distance, "distance", 0, "distance in metres")
	f.StringVar(&opts.direction, "direction", opts.direction, "to or from the reference")
	cmd.MarkFlagsMutuallyExclusive("at", "ref")
	cmd.MarkFlagsMutuallyExclusive("at", "x")
	cmd.MarkFlagsMutuallyExclusive("at", "y")
	cmd.MarkFlagsMutuallyExclusive("ref", "x")
	cmd.MarkFlagsMutuallyExclusive("ref", "y")
	cmd.MarkFlagsRequiredTogether("ref", "distance")

	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(poi.Categories))
		for i, cat := range poi.Categories {
			names[i] = string(cat)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// build creates the POI described by the flags against the map's POIs.
func (o poiAddOpts) build(name string, pois []poi.POI, now time.Time) (poi.POI, error) {
	if err := errors.ValidateName(name); err != nil {
		return poi.POI{}, err
	}
	cat := poi.Category(o.category)
	if !cat.Valid() {
		return poi.POI{}, errors.New(errors.ErrCodeInvalidCategory, "unknown POI type %q", o.category)
	}

	for _, v := range []struct {
		flag string
		val  float64
	}{{"x", o.x}, {"y", o.y}, {"depth", o.depth}, {"bearing", o.bearing}, {"distance", o.distance}} {
		if !isFinite(v.val) {
			return poi.POI{}, errors.New(errors.ErrCodeInvalidInput, "--%s must be a finite number, got %g", v.flag, v.val)
		}
	}

	p := poi.New(name, cat, o.x, o.y, o.depth, now)
	p.Notes = o.notes

	switch {
	case o.ref != "":
		p.DefinitionMode = poi.ModeBearings
		p.BearingRecords = []poi.BearingRecord{
			poi.NewBearingRecord(o.ref, o.bearing, o.distance, poi.Direction(o.direction), now),
		}
	case o.at != "":
		x, y, err := parsePoint(o.at)
		if err != nil {
			return poi.POI{}, err
		}
		origin, _, ok := poi.Find(pois, poi.LifeboatID)
		if !ok {
			return poi.POI{}, errors.New(errors.ErrCodePOINotFound, "map has no %s to take a bearing from", poi.LifeboatID)
		}
		p.X, p.Y = x, y
		p.DefinitionMode = poi.ModeBearings
		p.BearingRecords = []poi.BearingRecord{initialRecord(p, origin, now)}
	}
	return p, nil
}

// initialRecord derives a "to" record from p's position to ref. Bearing and
// distance are rounded to whole units as a compass would read them.
func initialRecord(p, ref poi.POI, now time.Time) poi.BearingRecord {
	b, horizontal := bearing.Between(bearing.Of(p), bearing.Of(ref))
	dist := math.Hypot(horizontal, ref.Depth-p.Depth)
	return poi.NewBearingRecord(ref.ID, bearing.Normalize(math.Round(b)), math.Max(1, math.Round(dist)), poi.DirectionTo, now)
}

func parsePoint(s string) (x, y float64, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "position must be x,y, got %q", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "position x")
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "position y")
	}
	if !isFinite(x) || !isFinite(y) {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "position must be finite, got %q", s)
	}
	return x, y, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c *CLI) poiListCommand() *cobra.Command {
	var mapID string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the POIs of a map",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, mapID)
				if err != nil {
					return err
				}
				printPOITable(m.POIs)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mapID, "map", "", "map id (default: current map)")
	return cmd
}

func (c *CLI) poiShowCommand() *cobra.Command {
	var mapID string
	cmd := &cobra.Command{
		Use:   "show <poi-id>",
		Short: "Show a POI and its bearing records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, mapID)
				if err != nil {
					return err
				}
				p, _, ok := poi.Find(m.POIs, args[0])
				if !ok {
					return poiNotFound(args[0])
				}
				info := p.Category.Info()
				fmt.Fprintln(stdout, StyleTitle.Render(info.Emoji+" "+p.Name))
				printKeyValue("ID", p.ID)
				printKeyValue("Type", info.Label)
				printKeyValue("Position", fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y))
				printKeyValue("Depth", fmt.Sprintf("%.0fm", p.Depth))
				printKeyValue("Mode", string(p.DefinitionMode))
				if p.Notes != "" {
					printKeyValue("Notes", p.Notes)
				}
				if len(p.BearingRecords) > 0 {
					printRecordTable(p, poiNames(m.POIs))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mapID, "map", "", "map id (default: current map)")
	return cmd
}

func (c *CLI) poiRemoveCommand() *cobra.Command {
	var mapID string
	cmd := &cobra.Command{
		Use:     "remove <poi-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a POI",
		Args:    cobra.ExactArgs(1),
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
				rest := append(poi.CloneAll(m.POIs[:i]), m.POIs[i+1:]...)
				for _, d := range rest {
					for _, ref := range d.References() {
						if ref == p.ID {
							printWarning("%s references %s; its record will be skipped", d.Name, p.Name)
						}
					}
				}
				if _, err := c.resolve(ctx, r, m.ID, rest); err != nil {
					return err
				}
				printSuccess("Removed %s", StyleValue.Render(p.Name))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&mapID, "map", "", "map id (default: current map)")
	return cmd
}

// resolve recalculates pois, saves them to the map and reports what the
// pass could not place.
func (c *CLI) resolve(ctx context.Context, r *pipeline.Runner, mapID string, pois []poi.POI) ([]poi.POI, error) {
	res, err := r.Recalculate(ctx, pois, pipeline.Options{})
	if err != nil {
		return nil, err
	}
	if _, err := r.Store.UpdatePOIs(ctx, mapID, res.POIs); err != nil {
		return nil, err
	}
	if len(res.Cycles) > 0 {
		printWarning("%d cyclic reference chain(s); positions on them were left unchanged", len(res.Cycles))
		printCycles(res.Cycles, poiNames(res.POIs))
	}
	return res.POIs, nil
}

func reportProblems(problems []string) error {
	for _, p := range problems {
		printError("%s", p)
	}
	return errors.New(errors.ErrCodeInvalidInput, "%d validation problem(s)", len(problems))
}

func poiNotFound(id string) error {
	return errors.New(errors.ErrCodePOINotFound, "POI %s not found", id)
}
