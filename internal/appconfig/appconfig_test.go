// internal/appconfig/appconfig_test.go
package appconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// TestLoad covers a valid file, invalid JSON, an invalid API base, and a
// missing file.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
        "apiBase": "http://compare.local:9000/",
        "curveSteps": 51,
        "classicalParams": {"svm": {"C": 2.5}}
    }`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() with valid config failed: %v", err)
	}
	if cfg.APIBaseURL() != "http://compare.local:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.APIBaseURL())
	}
	if cfg.TimeoutSeconds != 600 {
		t.Fatalf("expected default timeout of 600 seconds, got %d", cfg.TimeoutSeconds)
	}
	if cfg.RequestTimeout() != 600*time.Second {
		t.Fatalf("expected default request timeout of 600s, got %v", cfg.RequestTimeout())
	}
	if cfg.Steps() != 51 {
		t.Fatalf("expected 51 curve steps, got %d", cfg.Steps())
	}
	if got := cfg.ParamOverrides(false, "svm")["C"]; got != 2.5 {
		t.Fatalf("expected svm override C=2.5, got %v", got)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected config path recorded, got %q", cfg.ConfigPath)
	}

	if _, err := Load(writeConfig(t, `{ "apiBase": `)); err == nil {
		t.Fatal("Load() with invalid JSON should have failed")
	}
	if _, err := Load(writeConfig(t, `{ "apiBase": "ftp://nowhere" }`)); err == nil {
		t.Fatal("Load() with a non-http apiBase should have failed")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.json")); err == nil {
		t.Fatal("Load() with nonexistent file should have failed")
	}
}

func TestDefaults(t *testing.T) {
	var cfg Config
	if cfg.APIBaseURL() != DefaultAPIBase {
		t.Fatalf("unexpected api base %q", cfg.APIBaseURL())
	}
	if cfg.Steps() != 101 || cfg.Rows() != 5 || cfg.DiagnosticsLimit() != 5000 {
		t.Fatalf("unexpected numeric defaults: steps=%d rows=%d cap=%d", cfg.Steps(), cfg.Rows(), cfg.DiagnosticsLimit())
	}
	if cfg.LogFilePath() != "qmlc.log" {
		t.Fatalf("unexpected log path %q", cfg.LogFilePath())
	}
	if cfg.DefaultClassical() != "mlp" || cfg.DefaultQuantum() != "vqc" {
		t.Fatalf("unexpected default models %s/%s", cfg.DefaultClassical(), cfg.DefaultQuantum())
	}
	if cfg.ParamOverrides(true, "qnn") != nil {
		t.Fatalf("expected no overrides")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestParamOverridesLowercaseFallback(t *testing.T) {
	cfg := Config{QuantumParams: map[string]map[string]any{"qnn_simple": {"epochs": 3}}}
	if got := cfg.ParamOverrides(true, "QNN_Simple")["epochs"]; got != 3 {
		t.Fatalf("expected lowercase lookup to succeed, got %v", got)
	}
}

func TestShowConfig(t *testing.T) {
	cfg := &Config{
		APIBase:         "http://example.test",
		Debug:           true,
		ClassicalParams: map[string]map[string]any{"rf": {"n_estimators": 10}},
	}
	var buf bytes.Buffer
	ShowConfig(&buf, "config/config.json", cfg)
	out := buf.String()
	for _, want := range []string{
		"Config file: config/config.json",
		"API Base:        http://example.test",
		"Debug:           true",
		"rf: n_estimators=10",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}

	buf.Reset()
	ShowConfig(&buf, "", nil)
	if !strings.Contains(buf.String(), "No config file loaded") {
		t.Fatalf("expected defaults notice, got:\n%s", buf.String())
	}
}
