// Package completion provides the shell completion command.
package completion

import (
	"github.com/spf13/cobra"
)

// NewCommand creates the completion command. It replaces cobra's generated
// one so the scripts are grouped with the other utility commands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate completion scripts for schemasync.

To load completions in the current shell session:

  source <(schemasync completion bash)
  schemasync completion fish | source

To load them for every session, write the script to your shell's
completion directory, e.g.:

  schemasync completion zsh > "${fpath[1]}/_schemasync"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newShellCommand("bash", func(root *cobra.Command, cmd *cobra.Command) error {
		return root.GenBashCompletionV2(cmd.OutOrStdout(), true)
	}))
	cmd.AddCommand(newShellCommand("zsh", func(root *cobra.Command, cmd *cobra.Command) error {
		return root.GenZshCompletion(cmd.OutOrStdout())
	}))
	cmd.AddCommand(newShellCommand("fish", func(root *cobra.Command, cmd *cobra.Command) error {
		return root.GenFishCompletion(cmd.OutOrStdout(), true)
	}))
	cmd.AddCommand(newShellCommand("powershell", func(root *cobra.Command, cmd *cobra.Command) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}))

	return cmd
}

func newShellCommand(shell string, gen func(root, cmd *cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:                   shell,
		Short:                 "Generate " + shell + " completion script",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return gen(cmd.Root(), cmd)
		},
	}
}
