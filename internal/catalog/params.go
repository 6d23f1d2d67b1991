// internal/catalog/params.go
package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError lists every schema problem found in a parameter set.
type ValidationError struct {
	Model    string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid parameters for %s: %s", e.Model, strings.Join(e.Problems, "; "))
}

// ParseAssignments turns "key=value" pairs into a parameter map. Numeric text
// becomes a number, empty text stays an empty string, anything else is kept
// as a string.
func ParseAssignments(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("parameter %q must be in key=value form", pair)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("parameter %q has an empty key", pair)
		}
		params[key] = coerce(strings.TrimSpace(value))
	}
	return params, nil
}

func coerce(value string) any {
	if value == "" {
		return ""
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return n
	}
	return value
}

// Merge copies base and applies each override map in order.
func Merge(base map[string]any, overrides ...map[string]any) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, o := range overrides {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// FormatParams renders a parameter map as sorted "k=v" text.
func FormatParams(params map[string]any) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return strings.Join(parts, " ")
}

// Schema returns the JSON Schema (draft-07) for the model's parameters.
// Unknown keys are rejected.
func (m Model) Schema() map[string]any {
	properties := make(map[string]any, len(m.Params))
	for _, p := range m.Params {
		properties[p.Key] = p.schema()
	}
	return map[string]any{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                m.Key,
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func (p ParamSpec) schema() map[string]any {
	var base map[string]any
	switch p.Type {
	case Integer, Number:
		base = map[string]any{"type": string(p.Type)}
		if p.Min != nil {
			if p.ExclusiveMin {
				base["exclusiveMinimum"] = *p.Min
			} else {
				base["minimum"] = *p.Min
			}
		}
		if p.Max != nil {
			base["maximum"] = *p.Max
		}
	default:
		base = map[string]any{"type": "string"}
		if len(p.Options) > 0 {
			base["enum"] = p.Options
		}
	}

	alternatives := []any{base}
	if p.NumberAlt {
		alternatives = append(alternatives, map[string]any{"type": "number", "exclusiveMinimum": 0})
	}
	if p.Nullable {
		alternatives = append(alternatives, map[string]any{"type": "string", "enum": []string{"", "null"}})
	}
	if len(alternatives) == 1 {
		base["description"] = p.Help()
		return base
	}
	return map[string]any{"description": p.Help(), "anyOf": alternatives}
}

// SchemaJSON returns the model's schema as indented JSON.
func (m Model) SchemaJSON() (string, error) {
	data, err := json.MarshalIndent(m.Schema(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Validate checks params against the model's schema.
func (m Model) Validate(params map[string]any) error {
	if params == nil {
		params = map[string]any{}
	}
	schemaLoader := gojsonschema.NewGoLoader(m.Schema())
	argBytes, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal parameters for validation: %w", err)
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(argBytes))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	sort.Strings(problems)
	return &ValidationError{Model: m.Key, Problems: problems}
}

// Resolve merges the model defaults with overrides and validates the result.
func (m Model) Resolve(overrides ...map[string]any) (map[string]any, error) {
	params := Merge(m.Defaults, overrides...)
	if err := m.Validate(params); err != nil {
		return nil, err
	}
	return params, nil
}
