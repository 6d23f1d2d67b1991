// internal/report/report_test.go
package report

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/compare"
	"github.com/CodeMeister99/QML-Compare/internal/curves"
	"github.com/CodeMeister99/QML-Compare/internal/dataset"
)

func sampleRun(t *testing.T) *compare.Run {
	t.Helper()
	run := &compare.Run{
		ID:        "0123456789abcdef",
		StartedAt: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		Dataset:   "iris.csv",
		Payload: api.ComparePayload{
			ClassicalModel:  "svm",
			QuantumModel:    "qnn",
			ClassicalParams: map[string]any{"C": 1.0, "gamma": "scale"},
			QuantumParams:   map[string]any{"layers": 2},
			TargetColumn:    "species",
		},
		TargetNote: "Using target 'species'.",
		Result: &api.CompareResult{
			Summary: api.Summary{
				Samples: 3, Target: "species", NFeatures: 4,
				Classes: []string{"setosa", "virginica"}, ClassCounts: map[string]int{"setosa": 2, "virginica": 1},
			},
			Metrics: api.Pair[api.Metrics]{
				Classical: api.Metrics{Accuracy: 1, F1: 1, AUC: 1, Loss: 0.1, LatencyMS: 12.5},
				Quantum:   api.Metrics{Accuracy: 0.5, F1: 0.33, AUC: api.Metric(math.NaN()), Loss: 0.7, LatencyMS: 900},
			},
			Details: &api.Pair[api.Details]{
				Classical: api.Details{
					Confusion: [][]int{{2, 0}, {0, 1}},
					PerClass:  []api.ClassReport{{Class: "setosa", Precision: 1, Recall: 1, F1: 1, Support: 2}},
					Timings:   &api.Timings{TrainMS: 10.26, InferMS: 1.2},
				},
				Quantum: api.Details{Confusion: [][]int{{1, 1}, {1, 0}}},
			},
			Diagnostics: &api.Diagnostics{
				YTrue:     []int{0, 1, 0},
				Classical: api.ModelDiagnostics{Proba: api.Probabilities{{0.9, 0.1}, {0.2, 0.8}, {0.7, 0.3}}},
				Quantum:   api.ModelDiagnostics{Proba: api.Probabilities{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}},
			},
			Notes: "Features were standardised.",
		},
	}
	run.Recompute(5)
	return run
}

func TestFormatting(t *testing.T) {
	cases := []struct {
		got, want string
	}{
		{FormatMetric(0.12345), "0.123"},
		{FormatMetric(math.NaN()), "n/a"},
		{FormatMetric(math.Inf(-1)), "n/a"},
		{FormatMS(10.26), "10.3 ms"},
		{FormatMS(math.NaN()), "n/a"},
		{formatFixed(0.5, 2), "0.50"},
		{truncate("abcdef", 4), "abc…"},
		{truncate("abc", 4), "abc"},
		{classLabel([]string{"x"}, 1), "1"},
	}
	for i, c := range cases {
		if c.got != c.want {
			t.Errorf("case %d: got %q, want %q", i, c.got, c.want)
		}
	}

	if Shade(5, 10) != 0.5 || Shade(3, 0) != 0 || Shade(20, 10) != 1 {
		t.Fatalf("unexpected shade values")
	}
}

func TestASCIIPlot(t *testing.T) {
	series := []plotSeries{
		{Name: "c", Mark: classicalMark, Curve: curves.Curve{{X: 0, Y: 0}, {X: 1, Y: 1}}},
		{Name: "q", Mark: quantumMark, Curve: curves.Curve{{X: 0, Y: 1}}},
	}
	lines := asciiPlot(series, 11, 5, false)
	if len(lines) != 7 {
		t.Fatalf("expected 5 rows plus two axis lines, got %d", len(lines))
	}
	if lines[0] != "1.0 |o         *" {
		t.Fatalf("unexpected top row %q", lines[0])
	}
	if lines[4] != "0.0 |*          " {
		t.Fatalf("unexpected bottom row %q", lines[4])
	}
	if lines[5] != "    +"+strings.Repeat("-", 11) {
		t.Fatalf("unexpected axis %q", lines[5])
	}

	withChance := asciiPlot(series, 11, 5, true)
	if withChance[0] != "1.0 |o        .*" {
		t.Fatalf("unexpected top row with diagonal %q", withChance[0])
	}
	if !strings.Contains(withChance[2], ".") {
		t.Fatalf("expected chance diagonal in %q", withChance[2])
	}

	overlap := asciiPlot([]plotSeries{
		{Mark: classicalMark, Curve: curves.Curve{{X: 0.5, Y: 0.5}}},
		{Mark: quantumMark, Curve: curves.Curve{{X: 0.5, Y: 0.5}}},
	}, 11, 5, false)
	if !strings.Contains(overlap[2], string(overlapMark)) {
		t.Fatalf("expected overlap mark in %q", overlap[2])
	}

	legend := plotLegend(series, true)
	if legend != "* c   o q   # both   . chance" {
		t.Fatalf("unexpected legend %q", legend)
	}
}

func TestRenderRun(t *testing.T) {
	run := sampleRun(t)
	out := RenderRun(run, Options{Plots: true})
	for _, want := range []string{
		"SVM (RBF) vs VQC OvR",
		"Dataset: iris.csv",
		"Classes: setosa (2), virginica (1)",
		"Using target 'species'.",
		"Features were standardised.",
		"Overall winner: SVM (RBF).",
		"Overall correctness",
		"Ranking ability",
		"n/a",
		"Train: 10.3 ms · Inference: 1.2 ms",
		"Confusion (Quantum): VQC OvR",
		"Curves (5 thresholds)",
		"ROC (micro)",
		ROCHelp,
		PRHelp,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report is missing %q", want)
		}
	}

	var buf bytes.Buffer
	if err := Terminal(&buf, &compare.Run{}, Options{}); err == nil {
		t.Fatalf("expected an error for a run without a result")
	}
}

func TestCurveSummaryWithoutDiagnostics(t *testing.T) {
	run := sampleRun(t)
	run.Result.Diagnostics = nil
	run.Recompute(5)
	if got := CurveSummary(run); !strings.Contains(got, "curves unavailable") {
		t.Fatalf("unexpected summary %q", got)
	}
	if md := Markdown(run); !strings.Contains(md, "No diagnostics returned; curves unavailable.") {
		t.Fatalf("markdown should note missing curves")
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleRun(t))
	for _, want := range []string{
		"# SVM (RBF) vs VQC OvR",
		"Run `0123456789abcdef`",
		"- Classical: `svm` (C=1 gamma=scale)",
		"> Using target 'species'.",
		"## Overall verdict",
		"| Overall correctness | 1.000 | 0.500 |",
		"| Ranking ability | 1.000 | n/a |",
		"## Confusion (Classical)",
		"| actual \\ predicted | setosa | virginica |",
		"| setosa | 2 | 0 |",
		"| setosa | 1.000 | 1.000 | 1.000 | 2 |",
		"Train: 10.3 ms · Inference: 1.2 ms",
		"| ROC area |",
		"### PR (micro)",
		"```text",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown is missing %q", want)
		}
	}
}

func TestGenerateHTML(t *testing.T) {
	html, err := GenerateHTML(sampleRun(t))
	if err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}
	for _, want := range []string{
		"<title>QML Compare: SVM (RBF) vs VQC OvR</title>",
		"<svg",
		"const runData = {",
		`"id":"0123456789abcdef"`,
		"Confusion (Classical): SVM (RBF)",
		"rgba(59, 130, 246, 1.00)",
		"ROC area",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("html is missing %q", want)
		}
	}

	if _, err := GenerateHTML(nil); err == nil {
		t.Fatalf("expected an error for a nil run")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": PNG, "png": PNG, " SVG ": SVG} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Fatalf("expected an error for gif")
	}
}

func TestWriteCharts(t *testing.T) {
	run := sampleRun(t)
	for _, f := range []Format{PNG, SVG} {
		dir := t.TempDir()
		paths, err := WriteCharts(dir, run, f)
		if err != nil {
			t.Fatalf("WriteCharts(%s): %v", f, err)
		}
		var names []string
		for _, p := range paths {
			info, err := os.Stat(p)
			if err != nil || info.Size() == 0 {
				t.Fatalf("chart %s was not written", p)
			}
			names = append(names, filepath.Base(p))
		}
		want := []string{"01234567-roc." + string(f), "01234567-pr." + string(f), "01234567-metrics." + string(f)}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Fatalf("chart files mismatch (-want +got):\n%s", diff)
		}
	}

	run.Result.Diagnostics = nil
	run.Recompute(5)
	paths, err := WriteCharts(t.TempDir(), run, SVG)
	if err != nil {
		t.Fatalf("WriteCharts without curves: %v", err)
	}
	if len(paths) != 1 || !strings.HasSuffix(paths[0], "-metrics.svg") {
		t.Fatalf("expected only the metrics chart, got %v", paths)
	}

	var buf bytes.Buffer
	if err := CurveChart(&buf, run, true, SVG); !errors.Is(err, ErrNoChartData) {
		t.Fatalf("expected ErrNoChartData, got %v", err)
	}
}

func TestQuickcheckPanel(t *testing.T) {
	resp := &api.QuickcheckResponse{
		Analysis: api.Analysis{
			Type: "tabular", NSamples: 150, NFeatures: 4, NNumeric: 4,
			ExplainedVarPCA: 0.9234, AvgMutualInfo: 0.51,
		},
		Recommendation: api.Recommendation{Classical: "svm", Quantum: "qnn"},
	}
	out := QuickcheckPanel(resp, nil)
	for _, want := range []string{"Samples: 150", "Features: 4 (4 numeric, 0 categorical)", "PCA explained variance: 0.92", "Avg mutual info: 0.510", "svm", "qnn"} {
		if !strings.Contains(out, want) {
			t.Errorf("panel is missing %q", want)
		}
	}

	if out := QuickcheckPanel(nil, errors.New("quickcheck failed: 500")); !strings.Contains(out, "quickcheck failed: 500") {
		t.Fatalf("panel should show the error, got %q", out)
	}
	if out := QuickcheckPanel(nil, nil); !strings.Contains(out, "QuickCheck not run.") {
		t.Fatalf("unexpected empty panel %q", out)
	}
}

func TestPreviewTable(t *testing.T) {
	p, err := dataset.ParsePreview("toy.csv", []byte("a,b\n1,x\n,y\n"), 5)
	if err != nil {
		t.Fatalf("ParsePreview: %v", err)
	}
	out := PreviewTable(p)
	for _, want := range []string{"toy.csv", "2 rows · 2 columns · 1 missing", "1  x"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview is missing %q", want)
		}
	}
	if PreviewTable(nil) != "" {
		t.Fatalf("nil preview should render nothing")
	}
}
