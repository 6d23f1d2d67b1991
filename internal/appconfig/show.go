// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
	"sort"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  API Base:        %s\n", cfg.APIBaseURL())
	fmt.Fprintf(out, "  Timeout:         %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Debug:           %v\n", cfg.Debug)
	fmt.Fprintf(out, "  JSON Mode:       %v\n", cfg.JSONMode)
	fmt.Fprintf(out, "  Log File:        %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Curve Steps:     %d\n", cfg.Steps())
	fmt.Fprintf(out, "  Preview Rows:    %d\n", cfg.Rows())
	fmt.Fprintf(out, "  Diagnostics Cap: %d\n", cfg.DiagnosticsLimit())
	fmt.Fprintf(out, "  Report Dir:      %s\n", cfg.ReportDirectory())
	fmt.Fprintf(out, "  Classical Model: %s\n", cfg.DefaultClassical())
	fmt.Fprintf(out, "  Quantum Model:   %s\n", cfg.DefaultQuantum())
	showOverrides(out, "Classical Params", cfg.ClassicalParams)
	showOverrides(out, "Quantum Params", cfg.QuantumParams)
}

func showOverrides(out io.Writer, label string, table map[string]map[string]any) {
	if len(table) == 0 {
		return
	}
	fmt.Fprintf(out, "  %s:\n", label)
	models := make([]string, 0, len(table))
	for key := range table {
		models = append(models, key)
	}
	sort.Strings(models)
	for _, model := range models {
		params := table[model]
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(out, "    %s:", model)
		for _, k := range keys {
			fmt.Fprintf(out, " %s=%v", k, params[k])
		}
		fmt.Fprintln(out)
	}
}
