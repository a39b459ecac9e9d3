// Package notion stores tasks as pages of a Notion database.
//
// Deleting a task archives its page; the page stays readable by id.
package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jomei/notionapi"
	"github.com/ncobase/voxtask/config"
	"github.com/ncobase/voxtask/internal/task"
)

const pageSize = 100

// pageService is the subset of notionapi.PageService used here.
type pageService interface {
	Get(ctx context.Context, id notionapi.PageID) (*notionapi.Page, error)
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

// databaseService is the subset of notionapi.DatabaseService used here.
type databaseService interface {
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// Client is a Notion backed task store.
type Client struct {
	pages     pageService
	databases databaseService
	dbs       config.Notion
	now       func() time.Time
}

// New creates a client for the configured integration token.
func New(cfg *config.Notion, timeout time.Duration) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" || cfg.TasksDatabaseID == "" {
		return nil, errors.New("notion api key and tasks database id are required")
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	api := notionapi.NewClient(notionapi.Token(cfg.APIKey), notionapi.WithHTTPClient(&http.Client{Timeout: timeout}))
	return newClient(api.Page, api.Database, cfg), nil
}

func newClient(pages pageService, databases databaseService, cfg *config.Notion) *Client {
	return &Client{pages: pages, databases: databases, dbs: *cfg, now: time.Now}
}

// wrap adds the operation to err and maps missing objects to task.ErrNotFound.
func wrap(op string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%s: %w", op, task.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isNotFound(err error) bool {
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Status == http.StatusNotFound || apiErr.Code == "object_not_found"
	}
	return errors.Is(err, task.ErrNotFound)
}

// query reads every page of db matching req, following next_cursor.
func (c *Client) query(ctx context.Context, db string, req *notionapi.DatabaseQueryRequest) ([]notionapi.Page, error) {
	if db == "" {
		return nil, errors.New("database id is not configured")
	}
	if req == nil {
		req = &notionapi.DatabaseQueryRequest{}
	}
	req.PageSize = pageSize

	var pages []notionapi.Page
	for {
		res, err := c.databases.Query(ctx, notionapi.DatabaseID(db), req)
		if err != nil {
			return nil, err
		}
		pages = append(pages, res.Results...)
		if !res.HasMore || res.NextCursor == "" {
			return pages, nil
		}
		req.StartCursor = res.NextCursor
	}
}

func (c *Client) createPage(ctx context.Context, db string, props notionapi.Properties) (*notionapi.Page, error) {
	if db == "" {
		return nil, errors.New("database id is not configured")
	}
	return c.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(db),
		},
		Properties: props,
	})
}
