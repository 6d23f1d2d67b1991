// internal/curves/curves.go
// Package curves builds micro-averaged ROC and Precision-Recall curves from a
// matrix of per-class predicted probabilities by sweeping a decision threshold.
//
// Every (sample, class) cell of the probability matrix is treated as an
// independent binary decision against the one-hot encoded ground truth, so a
// single sweep yields the micro-average across all classes. The sweep visits
// thresholds 0, 1/(steps-1), ..., 1 and recounts the confusion cells at each
// step, giving O(steps x samples x classes) work with no intermediate state.
package curves

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
)

// DefaultSteps is the number of thresholds visited when the caller does not
// choose one.
const DefaultSteps = 101

// Point is a single curve coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Curve is an ordered list of points, one per threshold, lowest threshold first.
type Curve []Point

// Xs returns the X coordinates of the curve.
func (c Curve) Xs() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.X
	}
	return out
}

// Ys returns the Y coordinates of the curve.
func (c Curve) Ys() []float64 {
	out := make([]float64, len(c))
	for i, p := range c {
		out[i] = p.Y
	}
	return out
}

// counts holds the confusion cells accumulated at one threshold.
type counts struct {
	tp, fp, tn, fn int
}

// MicroROC returns the micro-averaged ROC curve (X = false positive rate,
// Y = true positive rate). Malformed input yields an empty curve.
func MicroROC(yTrue []int, proba [][]float64, steps int) Curve {
	return sweep(yTrue, proba, steps, func(c counts) Point {
		tpr := 0.0
		if c.tp+c.fn > 0 {
			tpr = float64(c.tp) / float64(c.tp+c.fn)
		}
		fpr := 0.0
		if c.fp+c.tn > 0 {
			fpr = float64(c.fp) / float64(c.fp+c.tn)
		}
		return Point{X: fpr, Y: tpr}
	})
}

// MicroPR returns the micro-averaged Precision-Recall curve (X = recall,
// Y = precision). Precision is 1 at thresholds where nothing is predicted
// positive. Malformed input yields an empty curve.
func MicroPR(yTrue []int, proba [][]float64, steps int) Curve {
	return sweep(yTrue, proba, steps, func(c counts) Point {
		precision := 1.0
		if c.tp+c.fp > 0 {
			precision = float64(c.tp) / float64(c.tp+c.fp)
		}
		recall := 0.0
		if c.tp+c.fn > 0 {
			recall = float64(c.tp) / float64(c.tp+c.fn)
		}
		return Point{X: recall, Y: precision}
	})
}

func sweep(yTrue []int, proba [][]float64, steps int, point func(counts) Point) Curve {
	nClasses, ok := validate(yTrue, proba)
	if !ok {
		return Curve{}
	}
	if steps < 2 {
		steps = DefaultSteps
	}

	curve := make(Curve, 0, steps)
	for si := 0; si < steps; si++ {
		thr := float64(si) / float64(steps-1)
		var c counts
		for i, row := range proba {
			for class := 0; class < nClasses; class++ {
				positive := yTrue[i] == class
				predicted := row[class] >= thr
				switch {
				case predicted && positive:
					c.tp++
				case predicted && !positive:
					c.fp++
				case !predicted && !positive:
					c.tn++
				default:
					c.fn++
				}
			}
		}
		curve = append(curve, point(c))
	}
	return curve
}

// validate reports the class count, or false when the inputs cannot describe
// a probability matrix aligned with the labels.
func validate(yTrue []int, proba [][]float64) (int, bool) {
	if len(yTrue) == 0 || len(proba) == 0 || len(yTrue) != len(proba) {
		return 0, false
	}
	nClasses := len(proba[0])
	if nClasses == 0 {
		return 0, false
	}
	for i, row := range proba {
		if len(row) != nClasses {
			return 0, false
		}
		if yTrue[i] < 0 || yTrue[i] >= nClasses {
			return 0, false
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, false
			}
		}
	}
	return nClasses, true
}

// AUC returns the trapezoidal area under the curve after ordering points by X.
// Curves with fewer than two points have zero area.
func AUC(c Curve) float64 {
	if len(c) < 2 {
		return 0
	}
	sorted := make(Curve, len(c))
	copy(sorted, c)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].X == sorted[j].X {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})
	return integrate.Trapezoidal(sorted.Xs(), sorted.Ys())
}
