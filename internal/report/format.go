// internal/report/format.go
// Package report renders comparison runs for the terminal, as Markdown and
// HTML files, and as PNG/SVG charts.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/catalog"
	"github.com/CodeMeister99/QML-Compare/internal/compare"
)

// Help texts shown under each chart.
const (
	ROCHelp = "Above the diagonal is good. Closer to the top-left means fewer false alarms and more correct detections."
	PRHelp  = "Higher is better. Curves near the top-right indicate fewer misses and fewer false positives."
)

const missing = "n/a"

// FormatMetric formats a metric with three decimals.
func FormatMetric(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return fmt.Sprintf("%.3f", v)
}

// FormatMS formats a duration in milliseconds with one decimal.
func FormatMS(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return fmt.Sprintf("%.1f ms", v)
}

// Shade returns v/max in [0, 1], or 0 when max is not positive.
func Shade(v, max int) float64 {
	if max <= 0 {
		return 0
	}
	a := float64(v) / float64(max)
	if a < 0 {
		return 0
	}
	if a > 1 {
		return 1
	}
	return a
}

func matrixMax(cm [][]int) int {
	max := 0
	for _, row := range cm {
		for _, v := range row {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// classLabel returns the name of class i, or its index.
func classLabel(classes []string, i int) string {
	if i < len(classes) && classes[i] != "" {
		return classes[i]
	}
	return fmt.Sprintf("%d", i)
}

// metricRow is one presented headline metric.
type metricRow struct {
	Key       string
	Name      string
	Explain   string
	Classical string
	Quantum   string
}

func metricRows(result *api.CompareResult) []metricRow {
	if result == nil {
		return nil
	}
	rows := make([]metricRow, 0, len(catalog.MetricOrder))
	for _, key := range catalog.MetricOrder {
		friendly := catalog.FriendlyMetric[key]
		rows = append(rows, metricRow{
			Key:       key,
			Name:      friendly.Name,
			Explain:   friendly.Explain,
			Classical: FormatMetric(result.Metrics.Classical.Value(key)),
			Quantum:   FormatMetric(result.Metrics.Quantum.Value(key)),
		})
	}
	return rows
}

func datasetFacts(run *compare.Run) []string {
	facts := []string{fmt.Sprintf("Dataset: %s", run.Dataset)}
	if run.Result == nil {
		return facts
	}
	s := run.Result.Summary
	target := s.Target
	if target == "" {
		target = run.Payload.TargetColumn
	}
	facts = append(facts,
		fmt.Sprintf("Target: %s", target),
		fmt.Sprintf("Samples: %d", s.Samples),
	)
	if s.NFeatures > 0 {
		facts = append(facts, fmt.Sprintf("Features: %d", s.NFeatures))
	}
	if len(s.Classes) > 0 {
		facts = append(facts, fmt.Sprintf("Classes: %s", strings.Join(classCounts(s), ", ")))
	}
	return facts
}

func classCounts(s api.Summary) []string {
	out := make([]string, 0, len(s.Classes))
	for _, c := range s.Classes {
		if n, ok := s.ClassCounts[c]; ok {
			out = append(out, fmt.Sprintf("%s (%d)", c, n))
			continue
		}
		out = append(out, c)
	}
	return out
}

func sideDetails(run *compare.Run, quantum bool) *api.Details {
	if run.Result == nil || run.Result.Details == nil {
		return nil
	}
	d := run.Result.Details.Side(quantum)
	return &d
}
