package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mypoly.

To load completions:

Bash:
  $ source <(mypoly completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ mypoly completion bash > /etc/bash_completion.d/mypoly
  # macOS:
  $ mypoly completion bash > $(brew --prefix)/etc/bash_completion.d/mypoly

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ mypoly completion zsh > "${fpath[1]}/_mypoly"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ mypoly completion fish | source

  # To load completions for each session, execute once:
  $ mypoly completion fish > ~/.config/fish/completions/mypoly.fish

PowerShell:
  PS> mypoly completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> mypoly completion powershell > mypoly.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeVariants completes --variant values.
func completeVariants(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"flat\t2D layered vector art", "solid\t3D mannequin"}, cobra.ShellCompDirectiveNoFileComp
}

// completeSelections completes --set values as category=option pairs.
func completeSelections(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cat := catalog.Default()
	var out []string
	for _, v := range []catalog.Variant{catalog.Flat, catalog.Solid} {
		for _, c := range cat.Categories(v) {
			for _, o := range cat.ListOptions(c) {
				out = append(out, fmt.Sprintf("%s=%s\t%s", c, o.ID, o.Name))
			}
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFormats completes --format values.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return pipeline.Formats(catalog.Solid), cobra.ShellCompDirectiveNoFileComp
}
