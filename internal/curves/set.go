// internal/curves/set.go
package curves

// Set bundles both curves for one model with their areas.
type Set struct {
	ROC    Curve   `json:"roc" yaml:"roc"`
	PR     Curve   `json:"pr" yaml:"pr"`
	ROCAUC float64 `json:"roc_auc" yaml:"roc_auc"`
	PRAUC  float64 `json:"pr_auc" yaml:"pr_auc"`
}

// Empty reports whether neither curve has points.
func (s Set) Empty() bool {
	return len(s.ROC) == 0 && len(s.PR) == 0
}

// Compute sweeps both curves for one model's probabilities.
func Compute(yTrue []int, proba [][]float64, steps int) Set {
	roc := MicroROC(yTrue, proba, steps)
	pr := MicroPR(yTrue, proba, steps)
	return Set{
		ROC:    roc,
		PR:     pr,
		ROCAUC: AUC(roc),
		PRAUC:  AUC(pr),
	}
}
