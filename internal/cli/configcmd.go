package cli

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/poimap/internal/config"
)

// configCommand inspects and initializes the configuration file.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return toml.NewEncoder(stdout).Encode(c.config())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:         "init",
		Short:       "Write a commented default configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				path = config.DefaultPath()
			}
			wrote, err := config.WriteDefault(path)
			if err != nil {
				return err
			}
			if !wrote {
				printInfo("Config already exists")
			} else {
				printSuccess("Wrote default config")
			}
			printFile(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default configuration path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(stdout, config.DefaultPath())
		},
	})

	return cmd
}
