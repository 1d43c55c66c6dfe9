package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/pipeline"
)

// mapCommand creates the map management command.
func (c *CLI) mapCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Create, list and select maps",
	}

	cmd.AddCommand(c.mapNewCommand())
	cmd.AddCommand(c.mapListCommand())
	cmd.AddCommand(c.mapShowCommand())
	cmd.AddCommand(c.mapRenameCommand())
	cmd.AddCommand(c.mapDeleteCommand())
	cmd.AddCommand(c.mapUseCommand())
	cmd.AddCommand(c.mapPickCommand())

	return cmd
}

func (c *CLI) mapNewCommand() *cobra.Command {
	var use bool
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a map seeded with Lifeboat 5",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := r.Store.Create(ctx, args[0])
				if err != nil {
					return err
				}
				if use {
					if err := r.Store.SetCurrent(ctx, m.ID); err != nil {
						return err
					}
				}
				printSuccess("Created map %s", StyleValue.Render(m.Name))
				printDetail("ID: %s", m.ID)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&use, "use", false, "make the new map current")
	return cmd
}

func (c *CLI) mapListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List maps, most recently updated first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				maps, err := r.Store.List(ctx)
				if err != nil {
					return err
				}
				if len(maps) == 0 {
					printInfo("No maps yet")
					printNextStep("Create one", appName+" map new <name>")
					return nil
				}
				cur, err := r.Store.Current(ctx)
				if err != nil {
					return err
				}
				printMapTable(maps, cur.ID)
				return nil
			})
		},
	}
}

func (c *CLI) mapShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [map-id]",
		Short: "Show a map and its POIs (default: current map)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := loadMap(ctx, r, firstArg(args))
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, StyleTitle.Render(m.Name))
				printKeyValue("ID", m.ID)
				printKeyValue("POIs", fmt.Sprint(len(m.POIs)))
				printKeyValue("Created", m.CreatedAt.Format("2006-01-02 15:04"))
				printKeyValue("Updated", formatRelativeTime(m.UpdatedAt))
				printPOITable(m.POIs)
				return nil
			})
		},
	}
}

func (c *CLI) mapRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <map-id> <name>",
		Short: "Rename a map",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				m, err := r.Store.Rename(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printSuccess("Renamed map to %s", StyleValue.Render(m.Name))
				return nil
			})
		},
	}
}

func (c *CLI) mapDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <map-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a map",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				if err := r.Store.Delete(ctx, args[0]); err != nil {
					return err
				}
				printSuccess("Deleted map %s", args[0])
				return nil
			})
		},
	}
}

func (c *CLI) mapUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "use <map-id>",
		Short: "Select the current map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				if err := r.Store.SetCurrent(ctx, args[0]); err != nil {
					return err
				}
				m, err := r.Store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				printSuccess("Now using %s", StyleValue.Render(m.Name))
				return nil
			})
		},
	}
}

func (c *CLI) mapPickCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Select the current map interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				maps, err := r.Store.List(ctx)
				if err != nil {
					return err
				}
				if len(maps) == 0 {
					printInfo("No maps yet")
					return nil
				}
				cur, err := r.Store.Current(ctx)
				if err != nil {
					return err
				}

				final, err := tea.NewProgram(NewMapListModel(maps, cur.ID), tea.WithContext(ctx)).Run()
				if err != nil {
					return fmt.Errorf("map picker: %w", err)
				}
				sel := final.(MapListModel).Selected
				if sel == nil {
					return nil
				}
				if err := r.Store.SetCurrent(ctx, sel.ID); err != nil {
					return err
				}
				printSuccess("Now using %s", StyleValue.Render(sel.Name))
				return nil
			})
		},
	}
}

// loadMap returns the map with the given id, or the current map for "".
func loadMap(ctx context.Context, r *pipeline.Runner, id string) (*poi.Map, error) {
	if id == "" {
		return r.Store.Current(ctx)
	}
	return r.Store.Get(ctx, id)
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
