// internal/compare/store.go
package compare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFor picks the export format from an explicit name or the file extension.
func FormatFor(path, format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported export format %q (use json or yaml)", format)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatJSON, nil
}

// SaveRun writes run to path as JSON or YAML, creating parent directories.
func SaveRun(path string, run *Run, format string) error {
	format, err := FormatFor(path, format)
	if err != nil {
		return err
	}
	var data []byte
	if format == FormatYAML {
		data, err = yaml.Marshal(run)
	} else {
		data, err = json.MarshalIndent(run, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode run: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// LoadRun reads a run previously written by SaveRun.
func LoadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run: %w", err)
	}
	format, _ := FormatFor(path, "")
	run := &Run{}
	if format == FormatYAML {
		err = yaml.Unmarshal(data, run)
	} else {
		err = json.Unmarshal(data, run)
	}
	if err != nil {
		return nil, fmt.Errorf("decode run %s: %w", path, err)
	}
	if run.Result == nil {
		return nil, fmt.Errorf("run %s has no result", path)
	}
	return run, nil
}
