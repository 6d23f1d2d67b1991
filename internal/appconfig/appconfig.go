// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// DefaultAPIBase is the address of a locally running comparison API.
	DefaultAPIBase = "http://127.0.0.1:8000"
	// defaultRequestTimeout is the default timeout for HTTP requests. Comparison
	// runs train two models server-side, so this is generous.
	defaultRequestTimeout = 600 * time.Second
	// defaultCurveSteps is the number of thresholds swept per curve.
	defaultCurveSteps = 101
	// defaultPreviewRows is the number of rows shown in a dataset preview.
	defaultPreviewRows = 5
	// defaultDiagnosticsCap mirrors the server's cap on returned probability rows.
	defaultDiagnosticsCap = 5000
	// defaultReportDir is where reports land when no explicit path is given.
	defaultReportDir = "qmlcData/reports"
	// defaultClassicalModel and defaultQuantumModel are preselected when a run
	// does not name a model.
	defaultClassicalModel = "mlp"
	defaultQuantumModel   = "vqc"
)

// Config represents the top-level application configuration.
type Config struct {
	APIBase         string                    `json:"apiBase" mapstructure:"apiBase"`
	TimeoutSeconds  int                       `json:"timeout,omitempty" mapstructure:"timeout"`
	Debug           bool                      `json:"debug" mapstructure:"debug"`
	JSONMode        bool                      `json:"jsonMode" mapstructure:"jsonMode"`
	LogFile         string                    `json:"logFile,omitempty" mapstructure:"logFile"`
	CurveSteps      int                       `json:"curveSteps,omitempty" mapstructure:"curveSteps"`
	PreviewRows     int                       `json:"previewRows,omitempty" mapstructure:"previewRows"`
	DiagnosticsCap  int                       `json:"diagnosticsCap,omitempty" mapstructure:"diagnosticsCap"`
	ReportDir       string                    `json:"reportDir,omitempty" mapstructure:"reportDir"`
	ClassicalModel  string                    `json:"classicalModel,omitempty" mapstructure:"classicalModel"`
	QuantumModel    string                    `json:"quantumModel,omitempty" mapstructure:"quantumModel"`
	ClassicalParams map[string]map[string]any `json:"classicalParams,omitempty" mapstructure:"classicalParams"`
	QuantumParams   map[string]map[string]any `json:"quantumParams,omitempty" mapstructure:"quantumParams"`
	ConfigPath      string                    `json:"-" mapstructure:"-"`
}

// RequestTimeout returns the timeout duration for HTTP requests, falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// APIBaseURL returns the API base address without a trailing slash.
func (c Config) APIBaseURL() string {
	base := strings.TrimSpace(c.APIBase)
	if base == "" {
		base = DefaultAPIBase
	}
	return strings.TrimRight(base, "/")
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "qmlc.log"
}

// Steps returns the number of thresholds swept when building curves.
func (c Config) Steps() int {
	if c.CurveSteps < 2 {
		return defaultCurveSteps
	}
	return c.CurveSteps
}

// Rows returns how many dataset rows a preview shows.
func (c Config) Rows() int {
	if c.PreviewRows <= 0 {
		return defaultPreviewRows
	}
	return c.PreviewRows
}

// DiagnosticsLimit returns the maximum number of probability rows kept per model.
func (c Config) DiagnosticsLimit() int {
	if c.DiagnosticsCap <= 0 {
		return defaultDiagnosticsCap
	}
	return c.DiagnosticsCap
}

// ReportDirectory returns the directory reports are written into.
func (c Config) ReportDirectory() string {
	if dir := strings.TrimSpace(c.ReportDir); dir != "" {
		return dir
	}
	return defaultReportDir
}

// DefaultClassical returns the classical model preselected for a run.
func (c Config) DefaultClassical() string {
	if key := strings.TrimSpace(c.ClassicalModel); key != "" {
		return key
	}
	return defaultClassicalModel
}

// DefaultQuantum returns the quantum model preselected for a run.
func (c Config) DefaultQuantum() string {
	if key := strings.TrimSpace(c.QuantumModel); key != "" {
		return key
	}
	return defaultQuantumModel
}

// ParamOverrides returns the configured parameter overrides for a model key.
// quantum selects the quantum table; the classical table is used otherwise.
func (c Config) ParamOverrides(quantum bool, key string) map[string]any {
	table := c.ClassicalParams
	if quantum {
		table = c.QuantumParams
	}
	if table == nil {
		return nil
	}
	if params, ok := table[key]; ok {
		return params
	}
	// viper lowercases map keys read from config files.
	return table[strings.ToLower(key)]
}

// Validate checks settings that would make every request fail.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL())
	if err != nil {
		return fmt.Errorf("invalid apiBase %q: %w", c.APIBase, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid apiBase %q: scheme must be http or https", c.APIBase)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid apiBase %q: missing host", c.APIBase)
	}
	return nil
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
