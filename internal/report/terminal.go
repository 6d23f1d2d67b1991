// internal/report/terminal.go
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/compare"
	"github.com/CodeMeister99/QML-Compare/internal/dataset"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	noteStyle      = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
	classicalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	quantumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cardStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
	verdictStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("46")).
			Padding(0, 1)
)

// shadeColors go from empty to the largest cell of a confusion matrix.
var shadeColors = []lipgloss.Color{"236", "23", "24", "31", "38"}

// Options tune the terminal report.
type Options struct {
	// Plots adds ASCII ROC and PR plots.
	Plots bool
	// Width caps the verdict card width; zero means no cap.
	Width int
}

// Terminal writes the full run report to w.
func Terminal(w io.Writer, run *compare.Run, opts Options) error {
	if run == nil || run.Result == nil {
		return fmt.Errorf("no comparison result to report")
	}
	_, err := io.WriteString(w, RenderRun(run, opts))
	return err
}

// RenderRun renders the run report as a string.
func RenderRun(run *compare.Run, opts Options) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s vs %s", run.ClassicalName(), run.QuantumName())))
	b.WriteString("\n")
	b.WriteString(cardStyle.Render(strings.Join(datasetFacts(run), "\n")))
	b.WriteString("\n")
	if notes := runNotes(run); notes != "" {
		b.WriteString(noteStyle.Render(notes))
		b.WriteString("\n")
	}

	verdict := verdictStyle
	if opts.Width > 0 {
		verdict = verdict.Width(opts.Width)
	}
	b.WriteString(verdict.Render(headingStyle.Render("Overall verdict") + "\n" + run.Verdict))
	b.WriteString("\n\n")

	b.WriteString(MetricsTable(run))
	b.WriteString(noteStyle.Render(compare.BarsNote))
	b.WriteString("\n\n")

	for _, quantum := range []bool{false, true} {
		if section := detailsSection(run, quantum); section != "" {
			b.WriteString(section)
			b.WriteString("\n")
		}
	}

	b.WriteString(CurveSummary(run))
	if opts.Plots {
		b.WriteString("\n")
		b.WriteString(CurvePlot(run, true))
		b.WriteString("\n")
		b.WriteString(CurvePlot(run, false))
	}
	return b.String()
}

func runNotes(run *compare.Run) string {
	var notes []string
	if run.TargetNote != "" {
		notes = append(notes, run.TargetNote)
	}
	if run.Result != nil && run.Result.Notes != "" {
		notes = append(notes, run.Result.Notes)
	}
	return strings.Join(notes, "\n")
}

// MetricsTable renders the headline metrics side by side.
func MetricsTable(run *compare.Run) string {
	rows := metricRows(run.Result)
	cname, qname := run.ClassicalName(), run.QuantumName()
	nameWidth := len("Metric")
	for _, r := range rows {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}
	cw := max(len(cname), 8)
	qw := max(len(qname), 8)

	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("%-*s  %*s  %*s", nameWidth, "Metric", cw, cname, qw, qname)))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			labelStyle.Render(fmt.Sprintf("%-*s", nameWidth, r.Name)),
			classicalStyle.Render(fmt.Sprintf("%*s", cw, r.Classical)),
			quantumStyle.Render(fmt.Sprintf("%*s", qw, r.Quantum)),
			noteStyle.Render(r.Explain),
		)
	}
	return b.String()
}

func detailsSection(run *compare.Run, quantum bool) string {
	d := sideDetails(run, quantum)
	if d == nil {
		return ""
	}
	side, name := "Classical", run.ClassicalName()
	if quantum {
		side, name = "Quantum", run.QuantumName()
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Confusion (%s): %s", side, name)))
	b.WriteString("\n")
	b.WriteString(ConfusionTable(d.Confusion, run.Result.Summary.Classes))
	if len(d.PerClass) > 0 {
		b.WriteString(PerClassTable(d.PerClass))
	}
	if t := Timings(d.Timings); t != "" {
		b.WriteString(labelStyle.Render(t))
		b.WriteString("\n")
	}
	return b.String()
}

// ConfusionTable renders a confusion matrix with cells shaded by count/max.
func ConfusionTable(cm [][]int, classes []string) string {
	if len(cm) == 0 {
		return noteStyle.Render("No confusion matrix returned.") + "\n"
	}
	width := 6
	for i := range cm {
		if l := len(classLabel(classes, i)); l+1 > width {
			width = l + 1
		}
	}
	width = min(width, 14)
	cellStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Right)
	corner := "actual\\pred"
	rowStyle := lipgloss.NewStyle().Width(max(width, len(corner)+1)).Align(lipgloss.Left)
	top := matrixMax(cm)

	var b strings.Builder
	b.WriteString(labelStyle.Render(rowStyle.Render(corner)))
	for j := range cm[0] {
		b.WriteString(labelStyle.Render(cellStyle.Render(truncate(classLabel(classes, j), width-1))))
	}
	b.WriteString("\n")
	for i, row := range cm {
		b.WriteString(labelStyle.Render(rowStyle.Render(truncate(classLabel(classes, i), width-1))))
		for _, v := range row {
			level := int(Shade(v, top)*float64(len(shadeColors)-1) + 0.5)
			b.WriteString(cellStyle.Background(shadeColors[level]).Render(fmt.Sprintf("%d", v)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PerClassTable renders precision, recall, F1, and support per class.
func PerClassTable(rows []api.ClassReport) string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-14s %9s %9s %9s %8s", "class", "precision", "recall", "f1", "support")))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-14s %9s %9s %9s %8d\n", truncate(r.Class, 14),
			FormatMetric(r.Precision.Float()), FormatMetric(r.Recall.Float()), FormatMetric(r.F1.Float()), r.Support)
	}
	return b.String()
}

// Timings renders train and inference timings, or "" when absent.
func Timings(t *api.Timings) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("Train: %s · Inference: %s", FormatMS(t.TrainMS.Float()), FormatMS(t.InferMS.Float()))
}

// CurveSummary lists the area under each computed curve.
func CurveSummary(run *compare.Run) string {
	c, q := run.Curves.Classical, run.Curves.Quantum
	if c.Empty() && q.Empty() {
		return noteStyle.Render("No diagnostics returned; curves unavailable.") + "\n"
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("Curves (%d thresholds)", run.Steps)))
	b.WriteString("\n")
	area := func(s bool, v float64) string {
		if !s {
			return missing
		}
		return FormatMetric(v)
	}
	fmt.Fprintf(&b, "%s  %s %s  %s %s\n", labelStyle.Render("ROC area"),
		classicalStyle.Render("classical"), area(!c.Empty(), c.ROCAUC),
		quantumStyle.Render("quantum"), area(!q.Empty(), q.ROCAUC))
	fmt.Fprintf(&b, "%s  %s %s  %s %s\n", labelStyle.Render("PR area "),
		classicalStyle.Render("classical"), area(!c.Empty(), c.PRAUC),
		quantumStyle.Render("quantum"), area(!q.Empty(), q.PRAUC))
	return b.String()
}

// CurvePlot draws the ROC (roc=true, with the chance diagonal) or PR curves.
func CurvePlot(run *compare.Run, roc bool) string {
	series := plotData(run, roc)
	title, help := "PR (micro)", PRHelp
	if roc {
		title, help = "ROC (micro)", ROCHelp
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")
	for _, line := range asciiPlot(series, plotWidth, plotHeight, roc) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(plotLegend(series, roc)))
	b.WriteString("\n")
	b.WriteString(noteStyle.Render(help))
	b.WriteString("\n")
	return b.String()
}

func plotData(run *compare.Run, roc bool) []plotSeries {
	c, q := run.Curves.Classical.PR, run.Curves.Quantum.PR
	if roc {
		c, q = run.Curves.Classical.ROC, run.Curves.Quantum.ROC
	}
	return []plotSeries{
		{Name: SideName(run, false), Mark: classicalMark, Curve: c},
		{Name: SideName(run, true), Mark: quantumMark, Curve: q},
	}
}

// QuickcheckPanel renders a QuickCheck response, or the error that prevented it.
func QuickcheckPanel(resp *api.QuickcheckResponse, err error) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("QuickCheck"))
	b.WriteString("\n")
	switch {
	case err != nil:
		b.WriteString(errorStyle.Render(err.Error()))
	case resp == nil:
		b.WriteString(noteStyle.Render("QuickCheck not run."))
	default:
		a := resp.Analysis
		lines := []string{}
		if a.Tabular() {
			lines = append(lines,
				fmt.Sprintf("Samples: %d", a.NSamples),
				fmt.Sprintf("Features: %d (%d numeric, %d categorical)", a.NFeatures, a.NNumeric, a.NCategorical),
				fmt.Sprintf("PCA explained variance: %s", formatFixed(a.ExplainedVarPCA.Float(), 2)),
				fmt.Sprintf("Avg mutual info: %s", formatFixed(a.AvgMutualInfo.Float(), 3)),
			)
		} else {
			lines = append(lines, fmt.Sprintf("Type: %s", a.Type))
			if a.Note != "" {
				lines = append(lines, a.Note)
			}
		}
		lines = append(lines, fmt.Sprintf("Suggested: %s + %s",
			classicalStyle.Render(resp.Recommendation.Classical),
			quantumStyle.Render(resp.Recommendation.Quantum)))
		b.WriteString(cardStyle.Render(strings.Join(lines, "\n")))
	}
	b.WriteString("\n")
	return b.String()
}

// PreviewTable renders a dataset preview head table.
func PreviewTable(p *dataset.Preview) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(p.Filename))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d rows · %d columns · %d missing", p.NRows, p.NCols, p.MissingCount)))
	b.WriteString("\n")

	widths := make([]int, len(p.Headers))
	cells := make([][]string, len(p.Rows))
	for j, h := range p.Headers {
		widths[j] = len(h)
	}
	for i, row := range p.Rows {
		cells[i] = make([]string, len(p.Headers))
		for j := range p.Headers {
			var v any
			if j < len(row) {
				v = row[j]
			}
			cells[i][j] = formatCell(v)
			widths[j] = max(widths[j], len(cells[i][j]))
		}
	}
	for j := range widths {
		widths[j] = min(widths[j], 16)
	}

	header := make([]string, len(p.Headers))
	for j, h := range p.Headers {
		header[j] = fmt.Sprintf("%-*s", widths[j], truncate(h, widths[j]))
	}
	b.WriteString(headingStyle.Render(strings.Join(header, "  ")))
	b.WriteString("\n")
	for _, row := range cells {
		out := make([]string, len(row))
		for j, v := range row {
			out[j] = fmt.Sprintf("%-*s", widths[j], truncate(v, widths[j]))
		}
		b.WriteString(strings.Join(out, "  "))
		b.WriteString("\n")
	}
	return b.String()
}

func formatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%g", t)
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func formatFixed(v float64, decimals int) string {
	if s := FormatMetric(v); s == missing {
		return s
	}
	return fmt.Sprintf("%.*f", decimals, v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return string(r[:1])
	}
	return string(r[:n-1]) + "…"
}
