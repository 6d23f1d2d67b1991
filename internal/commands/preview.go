// internal/commands/preview.go
package qmlc

import (
	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/compare"
	"github.com/CodeMeister99/QML-Compare/internal/report"
)

// previewCmd implements 'preview', which shows the head of a CSV, its
// missing-value count, and the target column a run would use.
var previewCmd = &cobra.Command{
	Use:   "preview <csv>",
	Short: "Preview a CSV dataset",
	Long:  `The 'preview' command parses the CSV locally, shows the first rows, counts missing cells, and reports the guessed target column. With --remote the server's own preview is fetched as well.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := openDataset(args)
		if err != nil {
			return err
		}
		rows, _ := cmd.Flags().GetInt("rows")
		if rows <= 0 {
			rows = GetConfig().Rows()
		}
		remote, _ := cmd.Flags().GetBool("remote")
		target, _ := cmd.Flags().GetString("target")

		in, err := compare.Inspect(cmd.Context(), newClient(), file, compare.InspectOptions{
			Target:         target,
			Rows:           rows,
			Remote:         remote,
			SkipQuickcheck: true,
		})
		if err != nil {
			return err
		}

		if JSONModeEnabled() {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"preview":    in.Preview,
				"remote":     in.Remote,
				"target":     in.Target,
				"targetNote": in.TargetNote,
			})
		}
		printf(cmd, "%s", report.PreviewTable(in.Preview))
		printf(cmd, "\n%s\n", in.TargetNote)
		if in.Remote != nil {
			printf(cmd, "\nServer preview:\n%s", report.PreviewTable(in.Remote))
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().Int("rows", 0, "number of rows to show (0 = configured default)")
	previewCmd.Flags().Bool("remote", false, "also fetch the server-side preview")
	previewCmd.Flags().String("target", "", "target column to check")
	rootCmd.AddCommand(previewCmd)
}
