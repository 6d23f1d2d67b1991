// internal/api/client.go
// Package api is the HTTP client for the QML Compare backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CodeMeister99/QML-Compare/internal/appconfig"
	"github.com/CodeMeister99/QML-Compare/internal/logging"
)

const (
	outbound = "QMLC->API"
	inbound  = "API->QMLC"
)

// Upload is a dataset file sent as the multipart "file" field.
type Upload struct {
	Name string
	Data []byte
}

// OpenUpload reads path into an Upload named after its base name.
func OpenUpload(path string) (Upload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Upload{}, fmt.Errorf("read dataset: %w", err)
	}
	return Upload{Name: filepath.Base(path), Data: data}, nil
}

// Client talks to the comparison API.
type Client struct {
	base    string
	client  *http.Client
	timeout time.Duration
}

// New constructs a Client for the configured API base and request timeout.
func New(cfg *appconfig.Config) *Client {
	timeout := cfg.RequestTimeout()
	return &Client{
		base:    cfg.APIBaseURL(),
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Base returns the API base URL.
func (c *Client) Base() string { return c.base }

// Health checks that the API is up.
func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/health", nil)
	if err != nil {
		return out, err
	}
	err = c.do(req, "Health", "/api/health", "", nil, &out)
	return out, err
}

// Preview asks the server for its head-check of the dataset.
func (c *Client) Preview(ctx context.Context, file Upload) (*Preview, error) {
	var out Preview
	if err := c.postForm(ctx, "Preview", "/api/preview", "", file, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Quickcheck runs the fast dataset scan and returns a suggested model pair.
func (c *Client) Quickcheck(ctx context.Context, file Upload, opts QuickcheckOptions) (*QuickcheckResponse, error) {
	dataType := strings.TrimSpace(opts.DataType)
	if dataType == "" {
		dataType = "tabular"
	}
	fields := [][2]string{{"data_type", dataType}}
	if target := strings.TrimSpace(opts.Target); target != "" {
		fields = append(fields, [2]string{"target", target})
	}
	var out QuickcheckResponse
	if err := c.postForm(ctx, "Quickcheck", "/api/quickcheck", "", file, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare trains and evaluates both models on the dataset.
func (c *Client) Compare(ctx context.Context, file Upload, payload ComparePayload) (*CompareResult, error) {
	classicalParams, err := encodeParams(payload.ClassicalParams)
	if err != nil {
		return nil, fmt.Errorf("encode classical params: %w", err)
	}
	quantumParams, err := encodeParams(payload.QuantumParams)
	if err != nil {
		return nil, fmt.Errorf("encode quantum params: %w", err)
	}
	fields := [][2]string{
		{"classicalModel", payload.ClassicalModel},
		{"quantumModel", payload.QuantumModel},
		{"classicalParams", classicalParams},
		{"quantumParams", quantumParams},
		{"targetColumn", payload.TargetColumn},
	}
	models := payload.ClassicalModel + " vs " + payload.QuantumModel
	var out CompareResult
	if err := c.postForm(ctx, "Compare", "/api/compare", models, file, fields, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func encodeParams(params map[string]any) (string, error) {
	if params == nil {
		params = map[string]any{}
	}
	data, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) postForm(ctx context.Context, name, path, models string, file Upload, fields [][2]string, out any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	filename := file.Name
	if filename == "" {
		filename = "dataset.csv"
	}
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := part.Write(file.Data); err != nil {
		return err
	}
	logged := map[string]any{"file": filename, "bytes": len(file.Data)}
	for _, f := range fields {
		if err := writer.WriteField(f[0], f[1]); err != nil {
			return err
		}
		logged[f[0]] = f[1]
	}
	if err := writer.Close(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, name, path, models, logged, out)
}

func (c *Client) do(req *http.Request, name, path, models string, logged any, out any) error {
	req.Header.Set("Accept", "application/json")
	logging.LogRequest(outbound, path, models, logged)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s request: %w", strings.ToLower(name), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", strings.ToLower(name), err)
	}
	logging.LogRequest(inbound, path, models, respBody)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(name, resp.StatusCode, resp.Status, respBody)
	}
	if err := json.Unmarshal(sanitizeJSON(respBody), out); err != nil {
		return fmt.Errorf("decode %s response: %w", strings.ToLower(name), err)
	}
	return nil
}
