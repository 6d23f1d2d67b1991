// internal/report/markdown.go
package report

import (
	"fmt"
	"strings"

	"github.com/CodeMeister99/QML-Compare/internal/catalog"
	"github.com/CodeMeister99/QML-Compare/internal/compare"
)

// Markdown renders the run as a Markdown document.
func Markdown(run *compare.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s vs %s\n\n", run.ClassicalName(), run.QuantumName())
	fmt.Fprintf(&b, "Run `%s`, started %s.\n\n", run.ID, run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	for _, fact := range datasetFacts(run) {
		fmt.Fprintf(&b, "- %s\n", fact)
	}
	fmt.Fprintf(&b, "- Classical: `%s` (%s)\n", run.Payload.ClassicalModel, paramsText(run.Payload.ClassicalParams))
	fmt.Fprintf(&b, "- Quantum: `%s` (%s)\n", run.Payload.QuantumModel, paramsText(run.Payload.QuantumParams))
	if notes := runNotes(run); notes != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(notes, "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
	}

	b.WriteString("\n## Overall verdict\n\n")
	b.WriteString(run.Verdict)
	b.WriteString("\n\n## Metrics\n\n")
	fmt.Fprintf(&b, "| Metric | %s | %s | Meaning |\n|---|---:|---:|---|\n", escapeCell(run.ClassicalName()), escapeCell(run.QuantumName()))
	for _, r := range metricRows(run.Result) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Name, r.Classical, r.Quantum, r.Explain)
	}
	fmt.Fprintf(&b, "\n_%s_\n", compare.BarsNote)

	for _, quantum := range []bool{false, true} {
		d := sideDetails(run, quantum)
		if d == nil {
			continue
		}
		side := "Classical"
		if quantum {
			side = "Quantum"
		}
		fmt.Fprintf(&b, "\n## Confusion (%s)\n\n", side)
		b.WriteString(markdownConfusion(d.Confusion, run.Result.Summary.Classes))
		if len(d.PerClass) > 0 {
			b.WriteString("\n| Class | Precision | Recall | F1 | Support |\n|---|---:|---:|---:|---:|\n")
			for _, r := range d.PerClass {
				fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n", escapeCell(r.Class),
					FormatMetric(r.Precision.Float()), FormatMetric(r.Recall.Float()), FormatMetric(r.F1.Float()), r.Support)
			}
		}
		if t := Timings(d.Timings); t != "" {
			fmt.Fprintf(&b, "\n%s\n", t)
		}
	}

	b.WriteString("\n## Curves\n\n")
	c, q := run.Curves.Classical, run.Curves.Quantum
	if c.Empty() && q.Empty() {
		b.WriteString("No diagnostics returned; curves unavailable.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "| Curve | Classical | Quantum |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| ROC area | %s | %s |\n", curveArea(c.Empty(), c.ROCAUC), curveArea(q.Empty(), q.ROCAUC))
	fmt.Fprintf(&b, "| PR area | %s | %s |\n", curveArea(c.Empty(), c.PRAUC), curveArea(q.Empty(), q.PRAUC))
	for _, roc := range []bool{true, false} {
		title, help := "PR (micro)", PRHelp
		if roc {
			title, help = "ROC (micro)", ROCHelp
		}
		series := plotData(run, roc)
		fmt.Fprintf(&b, "\n### %s\n\n```text\n", title)
		for _, line := range asciiPlot(series, plotWidth, plotHeight, roc) {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s\n```\n\n%s\n", plotLegend(series, roc), help)
	}
	return b.String()
}

func markdownConfusion(cm [][]int, classes []string) string {
	if len(cm) == 0 {
		return "No confusion matrix returned.\n"
	}
	var b strings.Builder
	b.WriteString("| actual \\ predicted |")
	for j := range cm[0] {
		fmt.Fprintf(&b, " %s |", escapeCell(classLabel(classes, j)))
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---:|", len(cm[0])))
	b.WriteString("\n")
	for i, row := range cm {
		fmt.Fprintf(&b, "| %s |", escapeCell(classLabel(classes, i)))
		for _, v := range row {
			fmt.Fprintf(&b, " %d |", v)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func curveArea(empty bool, v float64) string {
	if empty {
		return missing
	}
	return FormatMetric(v)
}

func paramsText(params map[string]any) string {
	if len(params) == 0 {
		return "defaults"
	}
	return escapeCell(catalog.FormatParams(params))
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// SideName returns the label of one side for chart legends.
func SideName(run *compare.Run, quantum bool) string {
	if quantum {
		return "Quantum (" + run.QuantumName() + ")"
	}
	return "Classical (" + run.ClassicalName() + ")"
}
