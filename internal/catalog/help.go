// internal/catalog/help.go
package catalog

// ParamHelp explains each tunable parameter in plain words.
var ParamHelp = map[string]string{
	"epochs":       "How many passes over the training data.",
	"lr":           "Learning rate (how big each step is).",
	"batch_size":   "How many rows are used per update.",
	"C":            "Regularization strength. Smaller = stronger regularization.",
	"gamma":        "RBF kernel width. \"scale\" is a good default.",
	"n_estimators": "Number of trees.",
	"max_depth":    "Max tree depth. Leave empty for auto.",
	"dropout":      "Share of hidden units dropped during training.",
	"shots":        "Number of circuit measurements. 0 = analytic simulation (fastest).",
	"noise_prob":   "Amount of depolarizing noise per layer.",
	"layers":       "How many variational blocks.",
	"n_qubits":     "Number of qubits in the circuit.",
	"encoding_dim": "Bottleneck size for the autoencoder.",
	"ae_epochs":    "Training epochs for the autoencoder.",
	"q_epochs":     "Training epochs for the quantum classifier.",
	"q_lr":         "Learning rate for the quantum classifier.",
}

// MetricHelp gives the technical definition of each headline metric.
var MetricHelp = map[string]string{
	"accuracy":   "Share of correct predictions.",
	"f1":         "Macro-averaged F1 across classes.",
	"auc":        "ROC AUC (OvR for multiclass).",
	"loss":       "Log loss (cross-entropy).",
	"latency_ms": "End-to-end runtime for the run in milliseconds.",
}

// Friendly is the plain-language label of a metric.
type Friendly struct {
	Name    string
	Explain string
}

// FriendlyMetric maps metric keys to plain-language labels.
var FriendlyMetric = map[string]Friendly{
	"accuracy":   {Name: "Overall correctness", Explain: "How often predictions are right."},
	"f1":         {Name: "Balance of precision and recall", Explain: "Helps when classes are uneven."},
	"auc":        {Name: "Ranking ability", Explain: "How well positives are ranked above negatives."},
	"loss":       {Name: "Penalty for wrong guesses", Explain: "Lower means fewer overconfident mistakes."},
	"latency_ms": {Name: "Run time", Explain: "How long the run took."},
}

// MetricOrder is the order metrics are presented in.
var MetricOrder = []string{"accuracy", "f1", "auc", "loss", "latency_ms"}
