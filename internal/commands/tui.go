// internal/commands/tui.go
package qmlc

import (
	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/tui"
)

// tuiCmd implements 'tui', the interactive compare workflow.
var tuiCmd = &cobra.Command{
	Use:   "tui <csv>",
	Short: "Pick models, tune parameters, and compare interactively",
	Long:  `The 'tui' command opens a full-screen workflow: QuickCheck runs in the background, you choose a classical and a quantum model (or press 'a' to take the recommendation), edit parameters, and read the results.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := openDataset(args)
		if err != nil {
			return err
		}
		target, _ := cmd.Flags().GetString("target")
		return tui.Start(cmd.Context(), GetConfig(), newClient(), file, target)
	},
}

func init() {
	tuiCmd.Flags().String("target", "", "target column (guessed when empty)")
	rootCmd.AddCommand(tuiCmd)
}
