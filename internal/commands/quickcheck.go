// internal/commands/quickcheck.go
package qmlc

import (
	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/dataset"
	"github.com/CodeMeister99/QML-Compare/internal/report"
)

// quickcheckCmd implements 'quickcheck', which asks the API to profile a
// dataset and suggest a classical + quantum pairing.
var quickcheckCmd = &cobra.Command{
	Use:   "quickcheck <csv>",
	Short: "Profile a dataset and get a model recommendation",
	Long:  `The 'quickcheck' command uploads the CSV to /quickcheck and prints the dataset analysis with the recommended classical and quantum models.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := openDataset(args)
		if err != nil {
			return err
		}
		target, _ := cmd.Flags().GetString("target")
		dataType, _ := cmd.Flags().GetString("data-type")
		if target == "" {
			if p, err := dataset.ParsePreview(file.Name, file.Data, 0); err == nil {
				target, _ = dataset.GuessTarget(p, "")
			}
		}

		resp, err := newClient().Quickcheck(cmd.Context(), file, api.QuickcheckOptions{Target: target, DataType: dataType})
		if JSONModeEnabled() && err == nil {
			return writeJSON(cmd.OutOrStdout(), resp)
		}
		printf(cmd, "%s", report.QuickcheckPanel(resp, err))
		return err
	},
}

func init() {
	quickcheckCmd.Flags().String("target", "", "target column (guessed when empty)")
	quickcheckCmd.Flags().String("data-type", "tabular", "dataset type sent to the API")
	rootCmd.AddCommand(quickcheckCmd)
}
