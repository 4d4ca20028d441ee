package main

import (
	"sort"

	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for ryulog.

To load completions:

Bash:
  $ source <(ryulog completion bash)

  # To load completions for each session, execute once:
  $ ryulog completion bash > /etc/bash_completion.d/ryulog

Zsh:
  # Enable completion once if it is not already enabled:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ ryulog completion zsh > "${fpath[1]}/_ryulog"

Fish:
  $ ryulog completion fish > ~/.config/fish/completions/ryulog.fish

PowerShell:
  PS> ryulog completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := cmd.Root()
		out := cmd.OutOrStdout()

		switch args[0] {
		case "bash":
			return root.GenBashCompletionV2(out, true)
		case "zsh":
			return root.GenZshCompletion(out)
		case "fish":
			return root.GenFishCompletion(out, true)
		case "powershell":
			return root.GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerFlagCompletions wires value completion for flags. It must run
// after every command's init has defined its flags.
func registerFlagCompletions() {
	formats := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	yamlFiles := func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	}

	for _, c := range []*cobra.Command{analyzeCmd, watchCmd} {
		_ = c.RegisterFlagCompletionFunc("format", fixedCompletion(formats...))
		_ = c.RegisterFlagCompletionFunc("channel", fixedCompletion("general", "pr-testing", "other"))
		_ = c.RegisterFlagCompletionFunc("signatures", yamlFiles)
		_ = c.RegisterFlagCompletionFunc("log-dir", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	}
}
