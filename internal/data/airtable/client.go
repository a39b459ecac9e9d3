// Package airtable stores tasks in an Airtable base through its REST API.
//
// Normalized tasks map to flat record fields (title→Title, dueDate→Due Date,
// and so on). Deletes are hard deletes.
package airtable

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
	"github.com/ncobase/voxtask/internal/task"
	"golang.org/x/oauth2"
)

const pageSize = 100

// Client is an Airtable backed task store.
type Client struct {
	http    *http.Client
	baseURL string
	baseID  string
	tables  config.Airtable
	now     func() time.Time
}

// New creates a client authenticated with the configured personal access token.
func New(cfg *config.Airtable, timeout time.Duration) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" || cfg.BaseID == "" {
		return nil, errors.New("airtable api key and base id are required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	hc := oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: cfg.APIKey,
		TokenType:   "Bearer",
	}))
	hc.Timeout = timeout

	tables := *cfg
	if tables.TasksTable == "" {
		tables.TasksTable = "Tasks"
	}
	if tables.ProjectsTable == "" {
		tables.ProjectsTable = "Projects"
	}
	if tables.ActivityTable == "" {
		tables.ActivityTable = "User Activity"
	}
	if tables.SummariesTable == "" {
		tables.SummariesTable = "Daily Summaries"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.airtable.com"
	}

	return &Client{
		http:    hc,
		baseURL: baseURL,
		baseID:  cfg.BaseID,
		tables:  tables,
		now:     time.Now,
	}, nil
}

// APIError is a non-2xx response from Airtable.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("airtable: %d %s: %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("airtable: status %d", e.StatusCode)
}

// record is the Airtable record envelope.
type record struct {
	ID          string         `json:"id,omitempty"`
	CreatedTime string         `json:"createdTime,omitempty"`
	Fields      map[string]any `json:"fields"`
}

type listResponse struct {
	Records []record `json:"records"`
	Offset  string   `json:"offset"`
}

func (c *Client) tableURL(table string, id ...string) string {
	u := c.baseURL + "/v0/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
	if len(id) > 0 && id[0] != "" {
		u += "/" + url.PathEscape(id[0])
	}
	return u
}

// do sends one request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return task.ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return decodeAPIError(res)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 64<<10))

	// error is either {"error":{"type":..,"message":..}} or {"error":"NOT_FOUND"}
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil && len(envelope.Error) > 0 {
		var detail struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if json.Unmarshal(envelope.Error, &detail) == nil {
			apiErr.Type, apiErr.Message = detail.Type, detail.Message
		} else {
			_ = json.Unmarshal(envelope.Error, &apiErr.Type)
		}
	}
	return apiErr
}

// list reads every page of table, following the offset cursor.
func (c *Client) list(ctx context.Context, table string, params url.Values) ([]record, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("pageSize", fmt.Sprint(pageSize))

	var records []record
	for {
		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(table)+"?"+params.Encode(), nil, &page); err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		params.Set("offset", page.Offset)
	}
}
