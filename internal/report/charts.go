// internal/report/charts.go
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/CodeMeister99/QML-Compare/internal/compare"
	"github.com/CodeMeister99/QML-Compare/internal/curves"
)

// ErrNoChartData is returned when a chart would have nothing to draw.
var ErrNoChartData = errors.New("no data to chart")

// Format is an image format for rendered charts.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// ParseFormat accepts "png" or "svg"; empty means PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	}
	return "", fmt.Errorf("unsupported chart format %q (use png or svg)", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

var (
	classicalColor = drawing.ColorFromHex("3B82F6")
	quantumColor   = drawing.ColorFromHex("A855F7")
	chanceColor    = chart.ColorAlternateGray
)

const (
	chartWidth  = 640
	chartHeight = 480
)

func unitTicks() []chart.Tick {
	return []chart.Tick{
		{Value: 0, Label: "0"},
		{Value: 0.25, Label: "0.25"},
		{Value: 0.5, Label: "0.5"},
		{Value: 0.75, Label: "0.75"},
		{Value: 1, Label: "1"},
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

func curveSeries(name string, c curves.Curve, col drawing.Color) (chart.ContinuousSeries, bool) {
	if len(c) < 2 {
		return chart.ContinuousSeries{}, false
	}
	return chart.ContinuousSeries{Name: name, XValues: c.Xs(), YValues: c.Ys(), Style: lineStyle(col)}, true
}

// CurveChart renders the ROC (roc=true) or PR chart of a run.
func CurveChart(w io.Writer, run *compare.Run, roc bool, f Format) error {
	cCurve, qCurve := run.Curves.Classical.PR, run.Curves.Quantum.PR
	title, xName, yName := "PR (micro)", "Recall", "Precision"
	if roc {
		cCurve, qCurve = run.Curves.Classical.ROC, run.Curves.Quantum.ROC
		title, xName, yName = "ROC (micro)", "False positive rate", "True positive rate"
	}

	series := []chart.Series{}
	if s, ok := curveSeries(SideName(run, false), cCurve, classicalColor); ok {
		series = append(series, s)
	}
	if s, ok := curveSeries(SideName(run, true), qCurve, quantumColor); ok {
		series = append(series, s)
	}
	if len(series) == 0 {
		return fmt.Errorf("%s: %w", title, ErrNoChartData)
	}
	if roc {
		st := lineStyle(chanceColor)
		st.StrokeWidth = 1
		st.StrokeDashArray = []float64{5, 5}
		series = append(series, chart.ContinuousSeries{Name: "Chance", XValues: []float64{0, 1}, YValues: []float64{0, 1}, Style: st})
	}

	ch := chart.Chart{
		Title:      title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xName, Range: &chart.ContinuousRange{Min: 0, Max: 1}, Ticks: unitTicks()},
		YAxis:      chart.YAxis{Name: yName, Range: &chart.ContinuousRange{Min: 0, Max: 1}, Ticks: unitTicks()},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(f.provider(), w)
}

// MetricsChart renders the headline metrics as grouped bars. Time is left
// out because its scale dwarfs the other metrics.
func MetricsChart(w io.Writer, run *compare.Run, f Format) error {
	var bars []chart.Value
	top := 1.0
	for _, bar := range compare.MetricBars(run.Result) {
		if bar.Key == "latency_ms" {
			continue
		}
		for _, side := range []struct {
			tag   string
			value float64
			col   drawing.Color
		}{
			{"C", bar.Classical, classicalColor},
			{"Q", bar.Quantum, quantumColor},
		} {
			if math.IsNaN(side.value) || math.IsInf(side.value, 0) {
				continue
			}
			top = math.Max(top, side.value)
			bars = append(bars, chart.Value{
				Label: fmt.Sprintf("%s (%s)", bar.Label, side.tag),
				Value: side.value,
				Style: chart.Style{FillColor: side.col, StrokeColor: side.col},
			})
		}
	}
	if len(bars) == 0 {
		return fmt.Errorf("metrics: %w", ErrNoChartData)
	}
	bc := chart.BarChart{
		Title:      "Headline metrics",
		Width:      960,
		Height:     chartHeight,
		BarWidth:   60,
		BarSpacing: 40,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		YAxis:      chart.YAxis{Range: &chart.ContinuousRange{Min: 0, Max: top * 1.1}},
		Bars:       bars,
	}
	return bc.Render(f.provider(), w)
}

// RenderSVG returns a chart as inline SVG markup.
func RenderSVG(draw func(io.Writer, Format) error) (string, error) {
	var buf bytes.Buffer
	if err := draw(&buf, SVG); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// WriteCharts renders the ROC, PR, and metrics charts into dir and returns the
// written paths. Charts without data are skipped.
func WriteCharts(dir string, run *compare.Run, f Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}
	jobs := []struct {
		name string
		draw func(io.Writer, Format) error
	}{
		{"roc", func(w io.Writer, f Format) error { return CurveChart(w, run, true, f) }},
		{"pr", func(w io.Writer, f Format) error { return CurveChart(w, run, false, f) }},
		{"metrics", func(w io.Writer, f Format) error { return MetricsChart(w, run, f) }},
	}
	var written []string
	for _, job := range jobs {
		var buf bytes.Buffer
		if err := job.draw(&buf, f); err != nil {
			if errors.Is(err, ErrNoChartData) {
				continue
			}
			return written, fmt.Errorf("render %s chart: %w", job.name, err)
		}
		path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", shortID(run.ID), job.name, f))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s chart: %w", job.name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func shortID(id string) string {
	if id == "" {
		return "run"
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
