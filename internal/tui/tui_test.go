// internal/tui/tui_test.go
package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/appconfig"
)

type testService struct {
	compareErr error
	calls      int
	last       api.ComparePayload
}

func (s *testService) Compare(ctx context.Context, file api.Upload, payload api.ComparePayload) (*api.CompareResult, error) {
	s.calls++
	s.last = payload
	if s.compareErr != nil {
		return nil, s.compareErr
	}
	return &api.CompareResult{
		Summary: api.Summary{Samples: 4, Target: payload.TargetColumn, Classes: []string{"a", "b"}},
		Metrics: api.Pair[api.Metrics]{
			Classical: api.Metrics{Accuracy: 0.9, F1: 0.9, AUC: 0.95, Loss: 0.2, LatencyMS: 10},
			Quantum:   api.Metrics{Accuracy: 0.6, F1: 0.5, AUC: 0.7, Loss: 0.6, LatencyMS: 800},
		},
		Diagnostics: &api.Diagnostics{
			YTrue:     []int{0, 1},
			Classical: api.ModelDiagnostics{Proba: api.Probabilities{{0.8, 0.2}, {0.1, 0.9}}},
			Quantum:   api.ModelDiagnostics{Proba: api.Probabilities{{0.6, 0.4}, {0.5, 0.5}}},
		},
	}, nil
}

func (s *testService) Quickcheck(ctx context.Context, file api.Upload, opts api.QuickcheckOptions) (*api.QuickcheckResponse, error) {
	return &api.QuickcheckResponse{
		Analysis:       api.Analysis{Type: "tabular", NSamples: 4, NFeatures: 2, NNumeric: 2},
		Recommendation: api.Recommendation{Classical: "svm", Quantum: "qnn"},
	}, nil
}

func (s *testService) Preview(ctx context.Context, file api.Upload) (*api.Preview, error) {
	return nil, errors.New("not used")
}

var toyCSV = []byte("x1,x2,label\n0.1,1.2,a\n0.3,0.2,b\n1.1,0.5,a\n0.9,0.7,b\n")

func newTestModel(t *testing.T, svc *testService, cfg *appconfig.Config) *model {
	t.Helper()
	m := initialModel(context.Background(), cfg, svc, api.Upload{Name: "toy.csv", Data: toyCSV}, "")
	_, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(t *testing.T, m *model, keys ...tea.KeyMsg) *model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(*model)
	}
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

// finishRun executes the pending comparison and feeds the result back.
func finishRun(t *testing.T, m *model) *model {
	t.Helper()
	if m.state != viewRunning {
		t.Fatalf("expected running state; got %v (err=%v)", m.state, m.err)
	}
	msg := compareCmd(context.Background(), m.runner, m.file, m.payload, m.runSeq)()
	next, _ := m.Update(msg)
	return next.(*model)
}

func TestInspectionAndRecommendation(t *testing.T) {
	svc := &testService{}
	m := newTestModel(t, svc, nil)
	if out := m.View(); !strings.Contains(out, "Checking dataset") {
		t.Fatalf("expected inspection spinner; got: %s", out)
	}

	m = press(t, m, runes("a"))
	if m.state != viewClassical || m.status != "No QuickCheck recommendation yet." {
		t.Fatalf("apply before QuickCheck should only set a status; state=%v status=%q", m.state, m.status)
	}

	next, _ := m.Update(inspectCmd(context.Background(), svc, m.file, "", 5)())
	m = next.(*model)
	if m.inspecting || m.inspection == nil || m.inspection.Target != "label" {
		t.Fatalf("expected finished inspection with target label; got %+v", m.inspection)
	}
	if out := m.View(); !strings.Contains(out, "Suggested:") || !strings.Contains(out, "Target: label") {
		t.Fatalf("expected QuickCheck panel and target in view; got: %s", out)
	}

	m = press(t, m, runes("a"))
	if m.state != viewParams || m.classical.Key != "svm" || m.quantum.Key != "qnn" {
		t.Fatalf("expected params for svm + qnn; state=%v classical=%q quantum=%q", m.state, m.classical.Key, m.quantum.Key)
	}
	if got := m.inputs[0].Value(); got != "C=1 gamma=scale" {
		t.Fatalf("unexpected classical prefill %q", got)
	}
	if !strings.Contains(m.View(), "RBF kernel width") {
		t.Fatalf("params view should show parameter help")
	}
}

func TestCompareFlow(t *testing.T) {
	svc := &testService{}
	m := newTestModel(t, svc, &appconfig.Config{ReportDir: t.TempDir()})
	next, _ := m.Update(inspectCmd(context.Background(), svc, m.file, "", 5)())
	m = next.(*model)

	m = press(t, m, enter)
	if m.state != viewQuantum || m.classical.Key != "mlp" {
		t.Fatalf("expected quantum selection after mlp; state=%v classical=%q", m.state, m.classical.Key)
	}
	m = press(t, m, esc)
	if m.state != viewClassical {
		t.Fatalf("esc should go back to the classical list; got %v", m.state)
	}
	m = press(t, m, enter, enter)
	if m.state != viewParams || m.quantum.Key != "vqc" {
		t.Fatalf("expected params with vqc; state=%v quantum=%q", m.state, m.quantum.Key)
	}
	if got := m.inputs[0].Value(); got != "batch_size=32 epochs=10 lr=0.003" {
		t.Fatalf("unexpected classical prefill %q", got)
	}

	m.inputs[0].SetValue("epochs=0")
	m = press(t, m, enter)
	if m.state != viewParams || m.err == nil || !strings.Contains(m.err.Error(), "invalid parameters for mlp") {
		t.Fatalf("expected validation error in params view; state=%v err=%v", m.state, m.err)
	}
	if svc.calls != 0 {
		t.Fatalf("invalid params must not reach the API")
	}

	m.inputs[0].SetValue("epochs=3")
	m = press(t, m, enter)
	m = finishRun(t, m)
	if m.state != viewResults || m.run == nil {
		t.Fatalf("expected results; state=%v err=%v", m.state, m.err)
	}
	if svc.last.TargetColumn != "label" || svc.last.ClassicalParams["epochs"] != 3.0 {
		t.Fatalf("unexpected payload sent: %+v", svc.last)
	}
	if out := m.View(); !strings.Contains(out, "Overall winner") {
		t.Fatalf("expected verdict in results; got: %s", out)
	}

	m = press(t, m, runes("s"))
	if !strings.HasPrefix(m.status, "Saved ") {
		t.Fatalf("expected saved status; got %q (err=%v)", m.status, m.err)
	}
	if _, err := os.Stat(filepath.Join(m.cfg.ReportDirectory(), m.run.ID[:8]+".json")); err != nil {
		t.Fatalf("saved run not found: %v", err)
	}

	m = press(t, m, esc)
	if m.state != viewParams {
		t.Fatalf("esc from results should return to params; got %v", m.state)
	}
}

func TestRunFailureAndCancel(t *testing.T) {
	svc := &testService{compareErr: &api.APIError{Endpoint: "/compare", StatusCode: 500, Detail: "boom"}}
	m := newTestModel(t, svc, nil)
	m = press(t, m, enter, enter, enter)
	m = finishRun(t, m)
	if m.state != viewParams || m.err == nil || !strings.Contains(m.View(), "boom") {
		t.Fatalf("expected API error shown in params; state=%v err=%v", m.state, m.err)
	}

	m = press(t, m, enter)
	if m.state != viewRunning {
		t.Fatalf("expected a second run to start; got %v", m.state)
	}
	stale := runDoneMsg{seq: m.runSeq - 1, err: errors.New("late")}
	m = press(t, m, esc)
	if m.state != viewParams || m.status != "Comparison cancelled." {
		t.Fatalf("esc should cancel the run; state=%v status=%q", m.state, m.status)
	}
	next, _ := m.Update(stale)
	m = next.(*model)
	if m.err != nil {
		t.Fatalf("stale results must be dropped; got %v", m.err)
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(t, &testService{}, nil)
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Fatalf("q should quit from the model list")
	}

	m = press(t, m, enter, enter)
	if m.state != viewParams {
		t.Fatalf("expected params state; got %v", m.state)
	}
	m = press(t, m, runes("q"))
	if m.state != viewParams || !strings.Contains(m.inputs[0].Value(), "q") {
		t.Fatalf("q should be typed into the params input; got %q", m.inputs[0].Value())
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Fatalf("ctrl+c should quit")
	}
}
