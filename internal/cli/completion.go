package cli

import (
	"github.com/spf13/cobra"

	specio "github.com/matzehuels/mermaidspec/pkg/io"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for mermaidspec.

To load completions:

Bash:
  $ source <(mermaidspec completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ mermaidspec completion bash > /etc/bash_completion.d/mermaidspec
  # macOS:
  $ mermaidspec completion bash > $(brew --prefix)/etc/bash_completion.d/mermaidspec

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ mermaidspec completion zsh > "${fpath[1]}/_mermaidspec"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ mermaidspec completion fish | source

  # To load completions for each session, execute once:
  $ mermaidspec completion fish > ~/.config/fish/completions/mermaidspec.fish

PowerShell:
  PS> mermaidspec completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> mermaidspec completion powershell > mermaidspec.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}

	return cmd
}

// completeSpecFiles completes positional arguments with spec documents.
func completeSpecFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	exts := append([]string{"yml"}, specio.ReadFormats...)
	return exts, cobra.ShellCompDirectiveFilterFileExt
}
