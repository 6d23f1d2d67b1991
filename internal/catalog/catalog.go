// internal/catalog/catalog.go
// Package catalog lists the classical and quantum models the comparison API
// can run, with their tunable parameters, CPU-friendly defaults, and the JSON
// Schema each parameter set is validated against before a run is submitted.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind separates the two sides of a comparison.
type Kind string

const (
	// Classical models run on conventional ML stacks (sklearn, torch).
	Classical Kind = "classical"
	// Quantum models run simulated variational circuits.
	Quantum Kind = "quantum"
)

// ErrUnknownModel is returned when a model key is not in the catalog.
var ErrUnknownModel = errors.New("unknown model")

// ParamType describes how a parameter value is entered and validated.
type ParamType string

const (
	// Integer parameters accept whole numbers.
	Integer ParamType = "integer"
	// Number parameters accept any finite number.
	Number ParamType = "number"
	// Text parameters accept free text, optionally limited to Options.
	Text ParamType = "text"
)

// ParamSpec describes one tunable parameter.
type ParamSpec struct {
	Key          string
	Label        string
	Type         ParamType
	Min          *float64
	Max          *float64
	ExclusiveMin bool
	// Nullable allows an empty value, meaning "let the server decide".
	Nullable bool
	// Options lists the accepted words of a Text param. NumberAlt lets the
	// same param take a positive number instead.
	Options     []string
	NumberAlt   bool
	Placeholder string
}

// Help returns the help text shown next to the parameter.
func (p ParamSpec) Help() string {
	return ParamHelp[p.Key]
}

// Model is one catalog entry.
type Model struct {
	Key      string
	Kind     Kind
	Name     string
	Short    string
	Explain  string
	Params   []ParamSpec
	Defaults map[string]any
	// AliasOf names the model this key runs, if it is an alias.
	AliasOf string
}

// Param returns the ParamSpec for key, if the model has one.
func (m Model) Param(key string) (ParamSpec, bool) {
	for _, p := range m.Params {
		if p.Key == key {
			return p, true
		}
	}
	return ParamSpec{}, false
}

// DefaultParams returns a fresh copy of the model's defaults.
func (m Model) DefaultParams() map[string]any {
	return Merge(m.Defaults)
}

func ptr(v float64) *float64 { return &v }

var (
	epochs      = ParamSpec{Key: "epochs", Label: "Epochs", Type: Integer, Min: ptr(1)}
	lr          = ParamSpec{Key: "lr", Label: "LR", Type: Number, Min: ptr(0), ExclusiveMin: true}
	batchSize   = ParamSpec{Key: "batch_size", Label: "Batch", Type: Integer, Min: ptr(1)}
	regC        = ParamSpec{Key: "C", Label: "C", Type: Number, Min: ptr(0), ExclusiveMin: true}
	gamma       = ParamSpec{Key: "gamma", Label: "Gamma", Type: Text, Options: []string{"scale", "auto"}, NumberAlt: true, Placeholder: "scale | auto"}
	nEstimators = ParamSpec{Key: "n_estimators", Label: "Trees", Type: Integer, Min: ptr(1)}
	maxDepth    = ParamSpec{Key: "max_depth", Label: "Max depth", Type: Integer, Min: ptr(1), Nullable: true, Placeholder: "empty = None"}
	dropout     = ParamSpec{Key: "dropout", Label: "Dropout", Type: Number, Min: ptr(0), Max: ptr(1)}
	shots       = ParamSpec{Key: "shots", Label: "Shots", Type: Integer, Min: ptr(0)}
	noiseProb   = ParamSpec{Key: "noise_prob", Label: "Noise p", Type: Number, Min: ptr(0), Max: ptr(1)}
	layers      = ParamSpec{Key: "layers", Label: "Layers", Type: Integer, Min: ptr(1)}
	nQubits     = ParamSpec{Key: "n_qubits", Label: "Qubits", Type: Integer, Min: ptr(1)}
	encodingDim = ParamSpec{Key: "encoding_dim", Label: "Encoding dim", Type: Integer, Min: ptr(1)}
	aeEpochs    = ParamSpec{Key: "ae_epochs", Label: "AE epochs", Type: Integer, Min: ptr(1)}
	qEpochs     = ParamSpec{Key: "q_epochs", Label: "QNN epochs", Type: Integer, Min: ptr(1)}
	qLR         = ParamSpec{Key: "q_lr", Label: "QNN LR", Type: Number, Min: ptr(0), ExclusiveMin: true}
)

var classicalModels = []Model{
	{
		Key: "mlp", Kind: Classical, Name: "MLP (sklearn)", Short: "Dense NN",
		Explain:  "Fully-connected network with ReLU, trained by Adam.",
		Params:   []ParamSpec{epochs, lr, batchSize},
		Defaults: map[string]any{"epochs": 10, "lr": 0.003, "batch_size": 32},
	},
	{
		Key: "svm", Kind: Classical, Name: "SVM (RBF)", Short: "Max-margin",
		Explain:  "Non-linear kernel SVM with probability outputs.",
		Params:   []ParamSpec{regC, gamma},
		Defaults: map[string]any{"C": 1.0, "gamma": "scale"},
	},
	{
		Key: "rf", Kind: Classical, Name: "Random Forest", Short: "Trees ensemble",
		Explain:  "Many trees averaged; gives feature importances.",
		Params:   []ParamSpec{nEstimators, maxDepth},
		Defaults: map[string]any{"n_estimators": 150, "max_depth": ""},
	},
	{
		Key: "logreg", Kind: Classical, Name: "Logistic Regression", Short: "Linear baseline",
		Explain:  "Fast linear classifier, interpretable coefficients.",
		Params:   []ParamSpec{regC},
		Defaults: map[string]any{"C": 1.0},
	},
	{
		Key: "mlp_torch", Kind: Classical, Name: "MLP (PyTorch)", Short: "Dense NN (torch)",
		Explain:  "Two-layer MLP trained with Adam (requires torch).",
		Params:   []ParamSpec{epochs, lr, batchSize, dropout},
		Defaults: map[string]any{"epochs": 8, "lr": 0.001, "batch_size": 64},
	},
}

var vqcParams = []ParamSpec{shots, noiseProb, layers, epochs, lr, nQubits}

var quantumModels = []Model{
	{
		Key: "qnn", Kind: Quantum, Name: "VQC OvR", Short: "Quantum variational",
		Explain:  "Data-encoding rotations + entangling blocks; OvR heads.",
		Params:   vqcParams,
		Defaults: map[string]any{"shots": 0, "noise_prob": 0.0, "layers": 2, "epochs": 20, "lr": 0.06, "n_qubits": 2},
	},
	{
		Key: "vqc", Kind: Quantum, Name: "VQC (alias)", Short: "Same as QNN",
		Explain:  "Alias for the VQC OvR model.",
		Params:   vqcParams,
		Defaults: map[string]any{"shots": 0, "noise_prob": 0.0, "layers": 2, "epochs": 20, "lr": 0.06, "n_qubits": 2},
		AliasOf:  "qnn",
	},
	{
		Key: "qnn_simple", Kind: Quantum, Name: "QNN (2-qubit simple)", Short: "Minimal circuit",
		Explain:  "Simple 2-qubit circuit; uses first 2 features; OvR.",
		Params:   []ParamSpec{epochs, lr},
		Defaults: map[string]any{"epochs": 15, "lr": 0.08},
	},
	{
		Key: "hybrid_torch", Kind: Quantum, Name: "Hybrid QCNN (torch)", Short: "Torch + Pennylane",
		Explain:  "AngleEmbedding + StronglyEntanglingLayers feeding a small head (requires torch).",
		Params:   []ParamSpec{nQubits, layers, epochs, lr, batchSize},
		Defaults: map[string]any{"n_qubits": 4, "layers": 1, "epochs": 6, "lr": 0.001, "batch_size": 32},
	},
	{
		Key: "aec_qnn", Kind: Quantum, Name: "AEC → QNN", Short: "Autoencoder + VQC",
		Explain:  "Keras autoencoder compresses features, then VQC trains on encoded space (requires tensorflow).",
		Params:   []ParamSpec{encodingDim, aeEpochs, batchSize, qEpochs, qLR, nQubits, layers, noiseProb, shots},
		Defaults: map[string]any{"encoding_dim": 4, "ae_epochs": 8, "batch_size": 32, "q_epochs": 16, "q_lr": 0.06, "n_qubits": 4, "layers": 2, "noise_prob": 0.0, "shots": 0},
	},
}

// ClassicalModels returns the classical entries in display order.
func ClassicalModels() []Model {
	return append([]Model(nil), classicalModels...)
}

// QuantumModels returns the quantum entries in display order.
func QuantumModels() []Model {
	return append([]Model(nil), quantumModels...)
}

// Models returns the entries of one kind in display order.
func Models(kind Kind) []Model {
	if kind == Quantum {
		return QuantumModels()
	}
	return ClassicalModels()
}

// All returns every entry, classical first.
func All() []Model {
	return append(ClassicalModels(), quantumModels...)
}

// Keys returns the model keys of one kind in display order.
func Keys(kind Kind) []string {
	models := Models(kind)
	keys := make([]string, len(models))
	for i, m := range models {
		keys[i] = m.Key
	}
	return keys
}

// Lookup finds a model by kind and key.
func Lookup(kind Kind, key string) (Model, error) {
	key = strings.TrimSpace(key)
	for _, m := range Models(kind) {
		if m.Key == key {
			return m, nil
		}
	}
	return Model{}, fmt.Errorf("%w: %s model %q (available: %s)", ErrUnknownModel, kind, key, strings.Join(Keys(kind), ", "))
}

// Find looks a key up on both sides, classical first.
func Find(key string) (Model, error) {
	if m, err := Lookup(Classical, key); err == nil {
		return m, nil
	}
	if m, err := Lookup(Quantum, key); err == nil {
		return m, nil
	}
	all := append(Keys(Classical), Keys(Quantum)...)
	sort.Strings(all)
	return Model{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownModel, key, strings.Join(all, ", "))
}

// DisplayName returns the model's human name, or the key when it is unknown.
func DisplayName(kind Kind, key string) string {
	if m, err := Lookup(kind, key); err == nil {
		return m.Name
	}
	return key
}
