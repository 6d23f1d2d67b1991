// internal/commands/curves.go
package qmlc

import (
	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/compare"
	"github.com/CodeMeister99/QML-Compare/internal/report"
)

// curvesCmd implements 'curves', which rebuilds the ROC and PR curves of a
// saved run, for example at a finer threshold grid.
var curvesCmd = &cobra.Command{
	Use:   "curves <run.json>",
	Short: "Recompute ROC and PR curves from a saved run",
	Long:  `The 'curves' command loads a run exported by 'compare --export', sweeps the decision threshold again over the stored probabilities, and prints the curve areas and plots. With --export the recomputed run is saved.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := compare.LoadRun(args[0])
		if err != nil {
			return err
		}
		steps, _ := cmd.Flags().GetInt("steps")
		if steps <= 0 {
			steps = GetConfig().Steps()
		}
		run.Recompute(steps)

		export, _ := cmd.Flags().GetString("export")
		if export != "" {
			if err := compare.SaveRun(export, run, ""); err != nil {
				return err
			}
		}
		if JSONModeEnabled() {
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"id":       run.ID,
				"steps":    run.Steps,
				"curves":   run.Curves,
				"exported": export,
			})
		}
		printf(cmd, "%s", report.CurveSummary(run))
		printf(cmd, "\n%s\n%s", report.CurvePlot(run, true), report.CurvePlot(run, false))
		if export != "" {
			printf(cmd, "Wrote %s\n", export)
		}
		return nil
	},
}

func init() {
	curvesCmd.Flags().Int("steps", 0, "thresholds swept per curve (0 = configured default)")
	curvesCmd.Flags().String("export", "", "save the recomputed run to this file")
	rootCmd.AddCommand(curvesCmd)
}
