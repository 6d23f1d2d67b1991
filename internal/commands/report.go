// internal/commands/report.go
package qmlc

import (
	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/compare"
)

// reportCmd implements 'report', which renders a saved run again without
// calling the API.
var reportCmd = &cobra.Command{
	Use:   "report <run.json>",
	Short: "Render reports from a saved run",
	Long:  `The 'report' command loads a run exported by 'compare --export' and writes HTML, Markdown, or chart files from it. Without any output flag the terminal report is printed.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		run, err := compare.LoadRun(args[0])
		if err != nil {
			return err
		}
		if run.Verdict == "" {
			run.Recompute(run.Steps)
		}
		targets := readReportFlags(cmd)
		if !targets.any() {
			return presentRun(cmd, run, targets, true)
		}
		written, err := targets.write(run)
		if JSONModeEnabled() {
			if werr := writeJSON(cmd.OutOrStdout(), map[string]any{"id": run.ID, "written": written, "error": errText(err)}); werr != nil {
				return werr
			}
			return err
		}
		for _, p := range written {
			printf(cmd, "Wrote %s\n", p)
		}
		return err
	},
}

func init() {
	addReportFlags(reportCmd, false)
	rootCmd.AddCommand(reportCmd)
}
