// internal/compare/verdict.go
package compare

import (
	"fmt"
	"math"

	"github.com/CodeMeister99/QML-Compare/internal/api"
)

// weights of each headline metric in the overall score.
var weights = []struct {
	Key    string
	Weight float64
	Lower  bool
}{
	{"accuracy", 0.4, false},
	{"f1", 0.3, false},
	{"auc", 0.2, false},
	{"loss", 0.08, true},
	{"latency_ms", 0.02, true},
}

const (
	scoreEps = 1e-9
	// closeCall is the score gap below which neither side wins.
	closeCall = 0.02
)

// Score min-max normalises each metric pair and sums the weighted results.
// Loss and latency count lower as better. Pairs with a non-finite side are
// skipped.
func Score(c, q api.Metrics) (float64, float64) {
	var cScore, qScore float64
	for _, w := range weights {
		cv, qv := c.Value(w.Key), q.Value(w.Key)
		if !finite(cv) || !finite(qv) {
			continue
		}
		maxv, minv := math.Max(cv, qv), math.Min(cv, qv)
		span := maxv - minv + scoreEps
		var normC, normQ float64
		if w.Lower {
			normC = (maxv - cv) / span
			normQ = (maxv - qv) / span
		} else {
			normC = (cv - minv) / span
			normQ = (qv - minv) / span
		}
		cScore += w.Weight * normC
		qScore += w.Weight * normQ
	}
	return cScore, qScore
}

// Verdict returns the plain-language overall verdict for a result.
func Verdict(result *api.CompareResult, cname, qname string) string {
	if result == nil {
		return ""
	}
	cScore, qScore := Score(result.Metrics.Classical, result.Metrics.Quantum)
	if math.Abs(cScore-qScore) < closeCall {
		return fmt.Sprintf("Overall: it’s a close call. %s and %s perform similarly on this dataset.", cname, qname)
	}
	winner := qname
	if cScore > qScore {
		winner = cname
	}
	return fmt.Sprintf("Overall winner: %s. This balances correctness (accuracy and F1) and ranking ability (AUC), with time considered as a minor factor.", winner)
}

// Bar is one grouped-bar row of the headline metrics chart.
type Bar struct {
	Label     string
	Key       string
	Classical float64
	Quantum   float64
	Lower     bool
}

// BarsNote explains how to read the bars.
const BarsNote = "Higher is better for Accuracy, F1, AUC. Lower is better for Loss and Time."

// MetricBars returns the headline metrics in chart order.
func MetricBars(result *api.CompareResult) []Bar {
	if result == nil {
		return nil
	}
	labels := map[string]string{
		"accuracy":   "Accuracy",
		"f1":         "F1",
		"auc":        "AUC",
		"loss":       "Loss",
		"latency_ms": "Time (ms)",
	}
	bars := make([]Bar, 0, len(weights))
	for _, w := range weights {
		bars = append(bars, Bar{
			Label:     labels[w.Key],
			Key:       w.Key,
			Classical: result.Metrics.Classical.Value(w.Key),
			Quantum:   result.Metrics.Quantum.Value(w.Key),
			Lower:     w.Lower,
		})
	}
	return bars
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
