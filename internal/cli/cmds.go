package cli

import "github.com/spf13/cobra"

func regCommands(rootCmd *cobra.Command, a *app) {
	rootCmd.AddCommand(newGenerateCmd(a))
	rootCmd.AddCommand(newVerifyCmd(a))
	rootCmd.AddCommand(newPromptCmd(a))
	rootCmd.AddCommand(newKeygenCmd(a))
	rootCmd.AddCommand(newNQuadsCmd(a))
}
