package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/internal/api"
	"github.com/matzehuels/poimap/pkg/pipeline"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve maps and recalculation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}
			read, write := cfg.Server.Timeouts()

			return c.withRunner(ctx, func(r *pipeline.Runner) error {
				c.Logger.Info("starting server", "store", cfg.Store.Backend, "cache", cfg.Cache.Backend)
				return api.New(r, c.Logger).ListenAndServe(ctx, addr, read, write)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
