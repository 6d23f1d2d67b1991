// internal/api/errors.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Endpoint   string
	StatusCode int
	Status     string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s failed: %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s failed: %d: %s", e.Endpoint, e.StatusCode, e.Detail)
}

// newAPIError reads the FastAPI {"detail": ...} body, falling back to raw text.
func newAPIError(endpoint string, status int, statusText string, body []byte) *APIError {
	return &APIError{
		Endpoint:   endpoint,
		StatusCode: status,
		Status:     statusText,
		Detail:     parseDetail(body),
	}
}

func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var text string
		if err := json.Unmarshal(envelope.Detail, &text); err == nil {
			return text
		}
		// Validation errors carry a list of objects.
		var compact bytes.Buffer
		if err := json.Compact(&compact, envelope.Detail); err == nil {
			return compact.String()
		}
	}
	return strings.TrimSpace(string(body))
}

var bareTokens = [][2]string{
	{"-Infinity", `"-Infinity"`},
	{"Infinity", `"Infinity"`},
	{"NaN", "null"},
}

// sanitizeJSON rewrites bare NaN, Infinity, and -Infinity tokens outside of
// strings so encoding/json can decode the body. NaN becomes null; the
// infinities become their quoted forms, which Metric decodes with their sign.
func sanitizeJSON(data []byte) []byte {
	if !bytes.Contains(data, []byte("NaN")) && !bytes.Contains(data, []byte("Infinity")) {
		return data
	}
	var out bytes.Buffer
	out.Grow(len(data))
	inString := false
	escaped := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}
		matched := false
		for _, token := range bareTokens {
			if bytes.HasPrefix(data[i:], []byte(token[0])) {
				out.WriteString(token[1])
				i += len(token[0]) - 1
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(c)
		}
	}
	return out.Bytes()
}
