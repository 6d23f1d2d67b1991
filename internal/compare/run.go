// internal/compare/run.go
// Package compare turns one comparison request into a Run: it validates the
// chosen models, calls the API, computes ROC/PR curves from the returned
// diagnostics, and decides the overall verdict.
package compare

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/appconfig"
	"github.com/CodeMeister99/QML-Compare/internal/catalog"
	"github.com/CodeMeister99/QML-Compare/internal/curves"
	"github.com/CodeMeister99/QML-Compare/internal/dataset"
	"github.com/CodeMeister99/QML-Compare/internal/logging"
)

// Service is the part of the API client a Runner needs.
type Service interface {
	Compare(ctx context.Context, file api.Upload, payload api.ComparePayload) (*api.CompareResult, error)
	Quickcheck(ctx context.Context, file api.Upload, opts api.QuickcheckOptions) (*api.QuickcheckResponse, error)
	Preview(ctx context.Context, file api.Upload) (*api.Preview, error)
}

// Run is one completed comparison, as exported and reloaded.
type Run struct {
	ID         string               `json:"id" yaml:"id"`
	StartedAt  time.Time            `json:"startedAt" yaml:"startedAt"`
	Duration   time.Duration        `json:"durationNs" yaml:"durationNs"`
	Dataset    string               `json:"dataset" yaml:"dataset"`
	APIBase    string               `json:"apiBase,omitempty" yaml:"apiBase,omitempty"`
	TargetNote string               `json:"targetNote,omitempty" yaml:"targetNote,omitempty"`
	Payload    api.ComparePayload   `json:"payload" yaml:"payload"`
	Result     *api.CompareResult   `json:"result" yaml:"result"`
	Steps      int                  `json:"steps" yaml:"steps"`
	Curves     api.Pair[curves.Set] `json:"curves" yaml:"curves"`
	Verdict    string               `json:"verdict" yaml:"verdict"`
}

// ClassicalName returns the display name of the classical model.
func (r *Run) ClassicalName() string {
	return catalog.DisplayName(catalog.Classical, r.Payload.ClassicalModel)
}

// QuantumName returns the display name of the quantum model.
func (r *Run) QuantumName() string {
	return catalog.DisplayName(catalog.Quantum, r.Payload.QuantumModel)
}

// Recompute rebuilds both curve sets and the verdict from the stored result.
func (r *Run) Recompute(steps int) {
	if steps < 2 {
		steps = curves.DefaultSteps
	}
	r.Steps = steps
	r.Curves = api.Pair[curves.Set]{}
	if r.Result == nil {
		r.Verdict = ""
		return
	}
	if d := r.Result.Diagnostics; d != nil {
		r.Curves.Classical = curves.Compute(d.YTrue, d.Classical.Proba, steps)
		r.Curves.Quantum = curves.Compute(d.YTrue, d.Quantum.Proba, steps)
	}
	r.Verdict = Verdict(r.Result, r.ClassicalName(), r.QuantumName())
}

// Runner executes comparisons against the API.
type Runner struct {
	svc   Service
	cfg   *appconfig.Config
	now   func() time.Time
	newID func() string
}

// NewRunner returns a Runner using svc and the configured defaults.
func NewRunner(svc Service, cfg *appconfig.Config) *Runner {
	if cfg == nil {
		cfg = &appconfig.Config{}
	}
	return &Runner{svc: svc, cfg: cfg, now: time.Now, newID: uuid.NewString}
}

// Resolve validates both model keys and merges catalog defaults, config
// overrides, and payload params into the payload that will be sent. An empty
// target is guessed from the dataset.
func (r *Runner) Resolve(file api.Upload, payload api.ComparePayload) (api.ComparePayload, string, error) {
	classical, err := catalog.Lookup(catalog.Classical, payload.ClassicalModel)
	if err != nil {
		return payload, "", err
	}
	quantum, err := catalog.Lookup(catalog.Quantum, payload.QuantumModel)
	if err != nil {
		return payload, "", err
	}

	cParams, err := classical.Resolve(r.cfg.ParamOverrides(false, classical.Key), payload.ClassicalParams)
	if err != nil {
		return payload, "", err
	}
	qParams, err := quantum.Resolve(r.cfg.ParamOverrides(true, quantum.Key), payload.QuantumParams)
	if err != nil {
		return payload, "", err
	}

	out := api.ComparePayload{
		ClassicalModel:  classical.Key,
		QuantumModel:    quantum.Key,
		ClassicalParams: cParams,
		QuantumParams:   qParams,
		TargetColumn:    strings.TrimSpace(payload.TargetColumn),
	}
	note := ""
	if out.TargetColumn == "" {
		preview, err := dataset.ParsePreview(file.Name, file.Data, 0)
		if err != nil {
			return out, "", fmt.Errorf("choose target column: %w", err)
		}
		out.TargetColumn, note = dataset.GuessTarget(preview, "")
	}
	return out, note, nil
}

// Run resolves the payload, calls the API, and builds the Run.
func (r *Runner) Run(ctx context.Context, file api.Upload, payload api.ComparePayload) (*Run, error) {
	if len(file.Data) == 0 {
		return nil, errors.New("please upload a dataset first")
	}
	resolved, note, err := r.Resolve(file, payload)
	if err != nil {
		return nil, err
	}

	started := r.now()
	logging.LogEvent("compare %s vs %s on %s (target=%s)", resolved.ClassicalModel, resolved.QuantumModel, file.Name, resolved.TargetColumn)
	result, err := r.svc.Compare(ctx, file, resolved)
	if err != nil {
		logging.LogEvent("compare failed: %v", err)
		return nil, err
	}
	result.Diagnostics.Cap(r.cfg.DiagnosticsLimit())

	run := &Run{
		ID:         r.newID(),
		StartedAt:  started,
		Duration:   r.now().Sub(started),
		Dataset:    file.Name,
		APIBase:    r.cfg.APIBaseURL(),
		TargetNote: note,
		Payload:    resolved,
		Result:     result,
	}
	run.Recompute(r.cfg.Steps())
	logging.LogEvent("compare %s finished in %s: %s", run.ID, run.Duration, run.Verdict)
	return run, nil
}
