package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/io"
	"github.com/matzehuels/poimap/pkg/pipeline"
)

// exportCommand writes a map as a JSON or YAML document.
func (c *CLI) exportCommand() *cobra.Command {
	var output, format string

	cmd := &cobra.Command{
		Use:   "export [map-id]",
		Short: "Export a map as JSON or YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, firstArg(args))
				if err != nil {
					return err
				}
				f, err := exportFormat(format, output)
				if err != nil {
					return err
				}
				if output == "" {
					return io.WriteMap(m, stdout, f)
				}

				out, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				if err := io.WriteMap(m, out, f); err != nil {
					out.Close()
					return err
				}
				if err := out.Close(); err != nil {
					return err
				}
				printSuccess("Exported %s (%d POIs)", StyleValue.Render(m.Name), len(m.POIs))
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default: from --output, else json)")
	return cmd
}

func exportFormat(flag, path string) (io.Format, error) {
	if flag != "" {
		return io.ParseFormat(flag)
	}
	if path == "" {
		return io.FormatJSON, nil
	}
	return io.FormatFromPath(path)
}

// importCommand loads a map document into the store.
func (c *CLI) importCommand() *cobra.Command {
	var (
		format string
		use    bool
		fresh  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a map from a JSON or YAML file",
		Long: `Import a map document. A map with the same id is replaced; pass --new to
import under a fresh id instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := readMapFile(args[0], format)
			if err != nil {
				return err
			}
			if fresh {
				m.ID = "map-" + poi.NewID()
			}

			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				if err := r.Store.Save(ctx, m); err != nil {
					return err
				}
				if use {
					if err := r.Store.SetCurrent(ctx, m.ID); err != nil {
						return err
					}
				}
				printSuccess("Imported %s (%d POIs)", StyleValue.Render(m.Name), len(m.POIs))
				printDetail("ID: %s", m.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or yaml (default: from extension)")
	cmd.Flags().BoolVar(&use, "use", false, "make the imported map current")
	cmd.Flags().BoolVar(&fresh, "new", false, "assign a new map id")
	return cmd
}

func readMapFile(path, format string) (*poi.Map, error) {
	if format == "" {
		return io.ImportMap(path, time.Now())
	}
	f, err := io.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return io.ReadMap(file, f, time.Now())
}
