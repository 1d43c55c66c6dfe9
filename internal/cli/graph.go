package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/pkg/pipeline"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string  // output file; stdout when empty
	format   string  // dot, svg, png or pdf
	detailed bool    // label nodes with coordinates and edges with bearings
	scale    float64 // png scale factor
}

// graphCommand renders the reference graph of a map.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph [map-id]",
		Short: "Render the reference graph of a map",
		Long: `Render which POIs are placed from which. Edges point from the reference
to the dependent POI; members of cyclic reference chains are drawn in red.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = formatFromOutput(opts.output)
			}
			if err := pipeline.ValidateGraphFormat(opts.format); err != nil {
				return err
			}
			binary := opts.format == pipeline.FormatPNG || opts.format == pipeline.FormatPDF
			if binary && opts.output == "" {
				return fmt.Errorf("%s output needs --output", opts.format)
			}

			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				spin := newSpinnerWithContext(ctx, "Rendering graph...")
				if opts.output != "" {
					spin.Start()
				}
				data, err := r.GraphMap(ctx, firstArg(args), pipeline.GraphOptions{
					Format:   opts.format,
					Detailed: opts.detailed,
					Scale:    opts.scale,
				})
				if opts.output != "" {
					spin.Stop()
				}
				if err != nil {
					return err
				}

				if opts.output == "" {
					_, err := stdout.Write(data)
					return err
				}
				if err := os.WriteFile(opts.output, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", opts.output, err)
				}
				printSuccess("Rendered %s graph", strings.ToUpper(opts.format))
				printFile(opts.output)
				return nil
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	f.StringVarP(&opts.format, "format", "f", "", "dot, svg, png or pdf (default: from --output, else svg)")
	f.BoolVar(&opts.detailed, "detailed", false, "show coordinates and bearings")
	f.Float64Var(&opts.scale, "scale", 2, "png scale factor")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// formatFromOutput picks the graph format from the output extension.
func formatFromOutput(path string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if pipeline.ValidGraphFormats[ext] {
		return ext
	}
	return pipeline.FormatSVG
}
