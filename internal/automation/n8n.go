package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ncobase/voxtask/config"
)

// ErrWorkflowRequired is returned when no workflow id is given.
var ErrWorkflowRequired = errors.New("workflow id is required")

// APIError is a non-2xx response from n8n.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("n8n: status %d: %s", e.StatusCode, e.Body)
}

// N8n calls an n8n instance over HTTP.
type N8n struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

// NewN8n creates an n8n client.
func NewN8n(cfg *config.N8n) (*N8n, error) {
	if cfg == nil || cfg.BaseURL == "" {
		return nil, errors.New("n8n base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &N8n{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}, nil
}

// Trigger posts data to the workflow's webhook.
func (n *N8n) Trigger(ctx context.Context, workflowID string, data map[string]any) (Result, error) {
	if workflowID == "" {
		return nil, ErrWorkflowRequired
	}
	if data == nil {
		data = map[string]any{}
	}
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	res, err := n.do(ctx, http.MethodPost, "/webhook/"+url.PathEscape(workflowID), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to trigger workflow %s: %w", workflowID, err)
	}
	return res, nil
}

// Status fetches an execution record.
func (n *N8n) Status(ctx context.Context, executionID string) (Result, error) {
	res, err := n.do(ctx, http.MethodGet, "/api/v1/executions/"+url.PathEscape(executionID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow status: %w", err)
	}
	return res, nil
}

func (n *N8n) do(ctx context.Context, method, path string, body io.Reader) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, method, n.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if n.apiKey != "" {
		req.Header.Set("X-N8N-API-KEY", n.apiKey)
	}

	res, err := n.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &APIError{StatusCode: res.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	out := Result{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	// Webhooks may answer with plain text.
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{"message": strings.TrimSpace(string(raw))}, nil
	}
	return out, nil
}
