package qmlc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
)

const compareBody = `{
  "summary": {"classicalModel": "svm", "quantumModel": "qnn", "samples": 4, "target": "label",
              "n_features": 2, "classes": ["a", "b"], "class_counts": {"a": 2, "b": 2}},
  "metrics": {
    "classical": {"accuracy": 1.0, "f1": 1.0, "auc": 1.0, "loss": 0.1, "latency_ms": 12.5},
    "quantum": {"accuracy": 0.5, "f1": 0.33, "auc": 0.5, "loss": 0.7, "latency_ms": 900}
  },
  "details": {
    "classical": {"confusion": [[2, 0], [0, 2]], "timings": {"train_ms": 10.25, "infer_ms": 2.25}},
    "quantum": {"confusion": [[1, 1], [1, 1]]}
  },
  "diagnostics": {
    "y_true": [0, 1, 0, 1],
    "classical": {"proba": [[0.9, 0.1], [0.2, 0.8], [0.7, 0.3], [0.4, 0.6]]},
    "quantum": {"proba": [[0.5, 0.5], [0.6, 0.4], [0.4, 0.6], [0.5, 0.5]]}
  }
}`

// fakeAPI records the calls made against a stand-in comparison API.
type fakeAPI struct {
	compares atomic.Int32
	form     map[string]string
}

func (f *fakeAPI) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/health":
			_, _ = io.WriteString(w, `{"ok": true, "service": "qml-compare-api"}`)
		case "/api/quickcheck":
			_, _ = io.WriteString(w, `{"analysis": {"type": "tabular", "n_samples": 4, "n_features": 2,
                "n_categorical": 0, "n_numeric": 2, "explained_var_pca": 0.8, "avg_mutual_info": 0.2},
                "recommendation": {"classical": "svm", "quantum": "qnn"}}`)
		case "/api/compare":
			f.compares.Add(1)
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parse form: %v", err)
			}
			f.form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				f.form[k] = v[0]
			}
			_, _ = io.WriteString(w, compareBody)
		default:
			http.NotFound(w, r)
		}
	}
}

type cliEnv struct {
	api    *fakeAPI
	config string
	log    string
	dir    string
	csv    string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{api: &fakeAPI{}, dir: t.TempDir()}
	server := httptest.NewServer(env.api.handler(t))
	t.Cleanup(server.Close)

	env.config = writeTempConfig(t, fmt.Sprintf(`{"apiBase": %q, "timeout": 5}`, server.URL))
	env.log = filepath.Join(env.dir, "qmlc.log")
	env.csv = filepath.Join(env.dir, "toy.csv")
	if err := os.WriteFile(env.csv, []byte("x1,x2,label\n0.1,1.2,a\n0.3,,b\n1.1,0.5,a\n0.9,0.7,b\n"), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	useConfig(t, env.config)
	return env
}

// run executes qmlc with args and returns the combined output.
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--logFile", e.log}, args...))
	t.Cleanup(func() { rootCmd.SetArgs([]string{}) })
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func (e *cliEnv) path(name string) string { return filepath.Join(e.dir, name) }

func TestHealthCommand(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !strings.Contains(out, "OK http://127.0.0.1:") || !strings.Contains(out, "(qml-compare-api)") {
		t.Fatalf("unexpected health output: %s", out)
	}

	out, err = env.run(t, "--jsonMode", "health")
	if err != nil {
		t.Fatalf("health --jsonMode: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("health JSON: %v\n%s", err, out)
	}
	if got["ok"] != true || got["service"] != "qml-compare-api" {
		t.Fatalf("unexpected health JSON: %v", got)
	}
}

func TestHealthCommandDown(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "--apiBase", "http://127.0.0.1:1", "--timeout", "1", "health")
	if err == nil {
		t.Fatalf("expected an error when the API is unreachable")
	}
	if !strings.Contains(out, "DOWN http://127.0.0.1:1") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestPreviewCommand(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "preview", env.csv, "--rows", "2")
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	for _, want := range []string{"toy.csv", "4 rows · 3 columns · 1 missing", "label"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview output is missing %q:\n%s", want, out)
		}
	}

	if _, err := env.run(t, "preview", env.path("missing.csv")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestQuickcheckCommand(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "quickcheck", env.csv)
	if err != nil {
		t.Fatalf("quickcheck: %v", err)
	}
	for _, want := range []string{"Samples: 4", "svm", "qnn"} {
		if !strings.Contains(out, want) {
			t.Errorf("quickcheck output is missing %q:\n%s", want, out)
		}
	}
}

func TestCompareCommandWritesReports(t *testing.T) {
	env := newCLIEnv(t)
	export := env.path("run.json")
	out, err := env.run(t, "compare", env.csv,
		"--classical", "svm", "--cparam", "C=2", "--quantum", "qnn", "--steps", "11",
		"--export", export, "--markdown", env.path("run.md"), "--html", env.path("run.html"),
		"--charts", env.path("charts"), "--format", "svg")
	if err != nil {
		t.Fatalf("compare: %v\n%s", err, out)
	}
	for _, want := range []string{"Overall winner: SVM (RBF).", "Curves (11 thresholds)", "Wrote " + export, "Wrote " + env.path("run.md")} {
		if !strings.Contains(out, want) {
			t.Errorf("compare output is missing %q:\n%s", want, out)
		}
	}
	if env.api.form["classicalModel"] != "svm" || env.api.form["targetColumn"] != "label" {
		t.Fatalf("unexpected form sent: %v", env.api.form)
	}
	var params map[string]any
	if err := json.Unmarshal([]byte(env.api.form["classicalParams"]), &params); err != nil || params["C"] != 2.0 {
		t.Fatalf("unexpected classicalParams %q: %v", env.api.form["classicalParams"], err)
	}
	for _, name := range []string{"run.html", "run.md"} {
		if info, err := os.Stat(env.path(name)); err != nil || info.Size() == 0 {
			t.Fatalf("%s was not written: %v", name, err)
		}
	}
	charts, _ := filepath.Glob(filepath.Join(env.path("charts"), "*.svg"))
	if len(charts) != 3 {
		t.Fatalf("expected three charts, got %v", charts)
	}

	out, err = env.run(t, "curves", export, "--steps", "21")
	if err != nil {
		t.Fatalf("curves: %v", err)
	}
	if !strings.Contains(out, "Curves (21 thresholds)") || !strings.Contains(out, "ROC (micro)") {
		t.Fatalf("unexpected curves output:\n%s", out)
	}

	finer := env.path("finer.yaml")
	out, err = env.run(t, "--jsonMode", "curves", export, "--steps", "31", "--export", finer)
	if err != nil {
		t.Fatalf("curves --jsonMode --export: %v", err)
	}
	var recomputed struct {
		Steps    int    `json:"steps"`
		Exported string `json:"exported"`
	}
	if err := json.Unmarshal([]byte(out), &recomputed); err != nil {
		t.Fatalf("curves JSON must be the only stdout output: %v\n%s", err, out)
	}
	if recomputed.Steps != 31 || recomputed.Exported != finer {
		t.Fatalf("unexpected curves JSON: %+v", recomputed)
	}
	if _, err := os.Stat(finer); err != nil {
		t.Fatalf("recomputed run not exported: %v", err)
	}

	out, err = env.run(t, "report", export)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !strings.Contains(out, "Overall winner: SVM (RBF).") {
		t.Fatalf("report should render the saved run:\n%s", out)
	}

	yamlPath := env.path("again.md")
	out, err = env.run(t, "--jsonMode", "report", export, "--markdown", yamlPath)
	if err != nil {
		t.Fatalf("report --markdown: %v", err)
	}
	var written struct {
		Written []string `json:"written"`
	}
	if err := json.Unmarshal([]byte(out), &written); err != nil || len(written.Written) != 1 || written.Written[0] != yamlPath {
		t.Fatalf("unexpected report JSON %s: %v", out, err)
	}
	if env.api.compares.Load() != 1 {
		t.Fatalf("curves and report must not call the API; compares=%d", env.api.compares.Load())
	}
}

func TestCompareCommandRejectsInvalidParams(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "compare", env.csv, "--classical", "svm", "--cparam", "C=-1")
	if err == nil || !strings.Contains(err.Error(), "invalid parameters for svm") {
		t.Fatalf("expected a validation error, got %v", err)
	}
	_, err = env.run(t, "compare", env.csv, "--classical", "nope")
	if err == nil {
		t.Fatalf("expected an error for an unknown model")
	}
	if env.api.compares.Load() != 0 {
		t.Fatalf("invalid runs must not reach the API")
	}
}

func TestCompareCommandJSONMode(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "--jsonMode", "compare", env.csv)
	if err != nil {
		t.Fatalf("compare --jsonMode: %v", err)
	}
	var run map[string]any
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("compare JSON: %v\n%s", err, out)
	}
	if id, _ := run["id"].(string); id == "" {
		t.Fatalf("expected a run id in %v", run)
	}
	if env.api.form["classicalModel"] != "mlp" || env.api.form["quantumModel"] != "vqc" {
		t.Fatalf("expected configured default models, got %v", env.api.form)
	}
}

func TestModelsCommands(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "models", "list")
	if err != nil {
		t.Fatalf("models list: %v", err)
	}
	for _, want := range []string{"Classical models", "Quantum models", "mlp_torch", "aec_qnn"} {
		if !strings.Contains(out, want) {
			t.Errorf("models list is missing %q:\n%s", want, out)
		}
	}

	out, err = env.run(t, "models", "show", "svm")
	if err != nil {
		t.Fatalf("models show: %v", err)
	}
	for _, want := range []string{"SVM (RBF) (svm, classical)", "Parameters:", "gamma", "Schema:", `"type": "object"`} {
		if !strings.Contains(out, want) {
			t.Errorf("models show is missing %q:\n%s", want, out)
		}
	}

	out, err = env.run(t, "--jsonMode", "models", "show", "qnn")
	if err != nil {
		t.Fatalf("models show --jsonMode: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil || got["kind"] != "quantum" {
		t.Fatalf("unexpected models JSON %s: %v", out, err)
	}

	if _, err := env.run(t, "models", "show", "nope"); err == nil {
		t.Fatalf("expected an error for an unknown model")
	}
}
