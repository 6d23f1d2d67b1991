// internal/commands/outputs.go
package qmlc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CodeMeister99/QML-Compare/internal/compare"
	"github.com/CodeMeister99/QML-Compare/internal/logging"
	"github.com/CodeMeister99/QML-Compare/internal/report"
)

// reportTargets are the files a run can be written to.
type reportTargets struct {
	Export   string
	HTML     string
	Markdown string
	Charts   string
	Format   string
}

func addReportFlags(cmd *cobra.Command, export bool) {
	if export {
		cmd.Flags().String("export", "", "save the run as JSON or YAML (by extension)")
	}
	cmd.Flags().String("html", "", "write an HTML report to this file")
	cmd.Flags().String("markdown", "", "write a Markdown report to this file")
	cmd.Flags().String("charts", "", "write ROC, PR, and metrics charts into this directory")
	cmd.Flags().String("format", "png", "chart image format (png or svg)")
}

func readReportFlags(cmd *cobra.Command) reportTargets {
	var t reportTargets
	if cmd.Flags().Lookup("export") != nil {
		t.Export, _ = cmd.Flags().GetString("export")
	}
	t.HTML, _ = cmd.Flags().GetString("html")
	t.Markdown, _ = cmd.Flags().GetString("markdown")
	t.Charts, _ = cmd.Flags().GetString("charts")
	t.Format, _ = cmd.Flags().GetString("format")
	return t
}

func (t reportTargets) any() bool {
	return t.Export != "" || t.HTML != "" || t.Markdown != "" || t.Charts != ""
}

// write produces every requested file and returns the written paths.
func (t reportTargets) write(run *compare.Run) ([]string, error) {
	format, err := report.ParseFormat(t.Format)
	if err != nil {
		return nil, err
	}
	var written []string

	if t.Export != "" {
		if err := compare.SaveRun(t.Export, run, ""); err != nil {
			return written, err
		}
		written = append(written, t.Export)
	}
	if t.HTML != "" {
		html, err := report.GenerateHTML(run)
		if err != nil {
			return written, fmt.Errorf("generate html report: %w", err)
		}
		if err := writeFile(t.HTML, html); err != nil {
			return written, err
		}
		written = append(written, t.HTML)
	}
	if t.Markdown != "" {
		if err := writeFile(t.Markdown, report.Markdown(run)); err != nil {
			return written, err
		}
		written = append(written, t.Markdown)
	}
	if t.Charts != "" {
		paths, err := report.WriteCharts(t.Charts, run, format)
		written = append(written, paths...)
		if err != nil {
			return written, err
		}
	}
	for _, p := range written {
		logging.LogEvent("wrote %s for run %s", p, run.ID)
	}
	return written, nil
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// presentRun prints the run (or its JSON) and writes the requested files.
func presentRun(cmd *cobra.Command, run *compare.Run, targets reportTargets, plots bool) error {
	written, err := targets.write(run)
	if JSONModeEnabled() {
		if werr := writeJSON(cmd.OutOrStdout(), run); werr != nil {
			return werr
		}
		return err
	}
	if rerr := report.Terminal(cmd.OutOrStdout(), run, report.Options{Plots: plots}); rerr != nil {
		return rerr
	}
	for _, p := range written {
		printf(cmd, "Wrote %s\n", p)
	}
	return err
}
