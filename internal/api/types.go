// internal/api/types.go
package api

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/CodeMeister99/QML-Compare/internal/dataset"
)

// Health is the /api/health response.
type Health struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
}

// Preview is the /api/preview response; it has the same shape as a local preview.
type Preview = dataset.Preview

// QuickcheckOptions are the optional form fields of a QuickCheck request.
type QuickcheckOptions struct {
	Target   string
	DataType string
}

// Analysis holds the cheap dataset signals QuickCheck computes. Non-tabular
// data types only carry Type and Note.
type Analysis struct {
	Type            string `json:"type"`
	NSamples        int    `json:"n_samples,omitempty"`
	NFeatures       int    `json:"n_features,omitempty"`
	NCategorical    int    `json:"n_categorical,omitempty"`
	NNumeric        int    `json:"n_numeric,omitempty"`
	ExplainedVarPCA Metric `json:"explained_var_pca"`
	AvgMutualInfo   Metric `json:"avg_mutual_info"`
	Note            string `json:"note,omitempty"`
}

// Tabular reports whether the analysis carries tabular statistics.
func (a Analysis) Tabular() bool {
	return a.Type == "" || a.Type == "tabular"
}

// Recommendation is a suggested starting pair of model keys.
type Recommendation struct {
	Classical string `json:"classical"`
	Quantum   string `json:"quantum"`
}

// QuickcheckResponse is the /api/quickcheck response.
type QuickcheckResponse struct {
	Analysis       Analysis       `json:"analysis"`
	Recommendation Recommendation `json:"recommendation"`
}

// ComparePayload selects the two models, their parameters, and the target column.
type ComparePayload struct {
	ClassicalModel  string         `json:"classicalModel" yaml:"classicalModel"`
	QuantumModel    string         `json:"quantumModel" yaml:"quantumModel"`
	ClassicalParams map[string]any `json:"classicalParams" yaml:"classicalParams"`
	QuantumParams   map[string]any `json:"quantumParams" yaml:"quantumParams"`
	TargetColumn    string         `json:"targetColumn" yaml:"targetColumn"`
}

// Summary describes the dataset the comparison ran on.
type Summary struct {
	ClassicalModel string         `json:"classicalModel,omitempty" yaml:"classicalModel,omitempty"`
	QuantumModel   string         `json:"quantumModel,omitempty" yaml:"quantumModel,omitempty"`
	Samples        int            `json:"samples" yaml:"samples"`
	Target         string         `json:"target,omitempty" yaml:"target,omitempty"`
	NFeatures      int            `json:"n_features,omitempty" yaml:"n_features,omitempty"`
	Classes        []string       `json:"classes,omitempty" yaml:"classes,omitempty"`
	ClassCounts    map[string]int `json:"class_counts,omitempty" yaml:"class_counts,omitempty"`
}

// Metric is a headline metric value. The server reports metrics it could not
// compute as NaN, which arrives as null, "NaN", or a bare NaN token. Bare
// Infinity tokens keep their sign.
type Metric float64

// Float returns the metric as a float64.
func (m Metric) Float() float64 { return float64(m) }

// Finite reports whether the value is neither NaN nor infinite.
func (m Metric) Finite() bool {
	f := float64(m)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// UnmarshalJSON accepts numbers, null, and the quoted forms of NaN and Infinity.
func (m *Metric) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	switch text {
	case "null", `"NaN"`, `"nan"`, `""`:
		*m = Metric(math.NaN())
		return nil
	case `"Infinity"`, `"inf"`:
		*m = Metric(math.Inf(1))
		return nil
	case `"-Infinity"`, `"-inf"`:
		*m = Metric(math.Inf(-1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("metric: %w", err)
	}
	*m = Metric(f)
	return nil
}

// MarshalJSON writes non-finite values as null so saved runs stay valid JSON.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

// Metrics are the headline numbers for one model.
type Metrics struct {
	Accuracy  Metric `json:"accuracy" yaml:"accuracy"`
	F1        Metric `json:"f1" yaml:"f1"`
	AUC       Metric `json:"auc" yaml:"auc"`
	Loss      Metric `json:"loss" yaml:"loss"`
	LatencyMS Metric `json:"latency_ms" yaml:"latency_ms"`
}

// Value returns the metric named by key (accuracy, f1, auc, loss, latency_ms),
// or NaN for an unknown key.
func (m Metrics) Value(key string) float64 {
	switch key {
	case "accuracy":
		return m.Accuracy.Float()
	case "f1":
		return m.F1.Float()
	case "auc":
		return m.AUC.Float()
	case "loss":
		return m.Loss.Float()
	case "latency_ms":
		return m.LatencyMS.Float()
	}
	return math.NaN()
}

// Pair holds the same structure for both sides of a comparison.
type Pair[T any] struct {
	Classical T `json:"classical" yaml:"classical"`
	Quantum   T `json:"quantum" yaml:"quantum"`
}

// Side returns the classical or quantum value.
func (p Pair[T]) Side(quantum bool) T {
	if quantum {
		return p.Quantum
	}
	return p.Classical
}

// ClassReport is one row of the per-class precision/recall table.
type ClassReport struct {
	Class     string `json:"class" yaml:"class"`
	Precision Metric `json:"precision" yaml:"precision"`
	Recall    Metric `json:"recall" yaml:"recall"`
	F1        Metric `json:"f1" yaml:"f1"`
	Support   int    `json:"support" yaml:"support"`
}

// Timings are the server-side train and inference durations in milliseconds.
type Timings struct {
	TrainMS Metric `json:"train_ms" yaml:"train_ms"`
	InferMS Metric `json:"infer_ms" yaml:"infer_ms"`
}

// Details carry the per-model confusion matrix and breakdowns.
type Details struct {
	Confusion [][]int        `json:"confusion" yaml:"confusion"`
	PerClass  []ClassReport  `json:"per_class,omitempty" yaml:"per_class,omitempty"`
	Timings   *Timings       `json:"timings,omitempty" yaml:"timings,omitempty"`
	Extras    map[string]any `json:"extras,omitempty" yaml:"extras,omitempty"`
}

// Probabilities is an n x k matrix of predicted class probabilities.
type Probabilities [][]float64

// UnmarshalJSON accepts a 2-D matrix, or a 1-D vector of positive-class
// probabilities which is expanded to [1-p, p] rows. Missing values become NaN.
func (p *Probabilities) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*p = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("probabilities: %w", err)
	}
	out := make(Probabilities, 0, len(raw))
	for _, item := range raw {
		trimmed := strings.TrimSpace(string(item))
		if strings.HasPrefix(trimmed, "[") {
			var row []Metric
			if err := json.Unmarshal(item, &row); err != nil {
				return fmt.Errorf("probabilities row: %w", err)
			}
			values := make([]float64, len(row))
			for i, v := range row {
				values[i] = v.Float()
			}
			out = append(out, values)
			continue
		}
		var v Metric
		if err := json.Unmarshal(item, &v); err != nil {
			return fmt.Errorf("probabilities value: %w", err)
		}
		out = append(out, []float64{1 - v.Float(), v.Float()})
	}
	*p = out
	return nil
}

// MarshalJSON writes non-finite cells as null.
func (p Probabilities) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	rows := make([][]Metric, len(p))
	for i, row := range p {
		rows[i] = make([]Metric, len(row))
		for j, v := range row {
			rows[i][j] = Metric(v)
		}
	}
	return json.Marshal(rows)
}

// ModelDiagnostics wraps one model's raw probabilities.
type ModelDiagnostics struct {
	Proba Probabilities `json:"proba" yaml:"proba"`
}

// Diagnostics are the raw labels and probabilities, capped server-side.
type Diagnostics struct {
	YTrue     []int            `json:"y_true" yaml:"y_true"`
	Classical ModelDiagnostics `json:"classical" yaml:"classical"`
	Quantum   ModelDiagnostics `json:"quantum" yaml:"quantum"`
}

// Cap truncates labels and probabilities to at most limit samples.
func (d *Diagnostics) Cap(limit int) {
	if d == nil || limit <= 0 {
		return
	}
	if len(d.YTrue) > limit {
		d.YTrue = d.YTrue[:limit]
	}
	if len(d.Classical.Proba) > limit {
		d.Classical.Proba = d.Classical.Proba[:limit]
	}
	if len(d.Quantum.Proba) > limit {
		d.Quantum.Proba = d.Quantum.Proba[:limit]
	}
}

// CompareResult is the /api/compare response.
type CompareResult struct {
	Summary     Summary        `json:"summary" yaml:"summary"`
	Metrics     Pair[Metrics]  `json:"metrics" yaml:"metrics"`
	Details     *Pair[Details] `json:"details,omitempty" yaml:"details,omitempty"`
	Diagnostics *Diagnostics   `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Notes       string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}
