package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. Map and POI ids are
// not completed; flag values such as --type and --format are.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for poimap and write it to stdout.

  bash:        source <(poimap completion bash)
  zsh:         poimap completion zsh > "${fpath[1]}/_poimap"
  fish:        poimap completion fish > ~/.config/fish/completions/poimap.fish
  powershell:  poimap completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		Annotations:           map[string]string{annotationNoConfig: "true"},
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(stdout, true)
			case "zsh":
				return root.GenZshCompletion(stdout)
			case "fish":
				return root.GenFishCompletion(stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(stdout)
			}
		},
	}
}
