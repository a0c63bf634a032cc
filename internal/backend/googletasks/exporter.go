// Package googletasks exports the local task list to Google Tasks.
//
// Export is one-way: remote tasks are never read back into the local list.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/task"
)

const (
	// APITimeout is the timeout for each API call.
	APITimeout = 5 * time.Second

	statusOpen      = "needsAction"
	statusCompleted = "completed"
)

// Client implements service.Exporter on the Google Tasks API.
type Client struct {
	svc *tasks.Service
}

// New creates a client from oauth_client.json and token.json in the config
// directory. The token refreshes automatically.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, oc.TokenSource(ctx, token))
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client. Extra
// options (e.g. option.WithEndpoint in tests) are passed to the API.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create tasks service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Export implements service.Exporter. Tasks are inserted in order with
// their completion state; an existing list with the same title (case
// insensitive, trimmed) is reused.
func (c *Client) Export(ctx context.Context, listName string, items []task.Task) (int, error) {
	listID, err := c.ensureList(ctx, listName)
	if err != nil {
		return 0, err
	}

	// The API inserts at the top unless told which task to follow.
	var previous string
	for i, item := range items {
		id, err := c.insert(ctx, listID, previous, item)
		if err != nil {
			return i, err
		}
		previous = id
	}
	return len(items), nil
}

func (c *Client) ensureList(ctx context.Context, name string) (string, error) {
	id, err := c.findList(ctx, name)
	if err != nil || id != "" {
		return id, err
	}

	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()
	list, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: strings.TrimSpace(name)}).Context(callCtx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return list.Id, nil
}

// findList returns the id of the list titled name, or "" if none.
func (c *Client) findList(ctx context.Context, name string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	want := strings.ToLower(strings.TrimSpace(name))
	var found string
	err := c.svc.Tasklists.List().MaxResults(100).Pages(callCtx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if found == "" && strings.ToLower(strings.TrimSpace(list.Title)) == want {
				found = list.Id
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}
	return found, nil
}

func (c *Client) insert(ctx context.Context, listID, previous string, item task.Task) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	status := statusOpen
	if item.Completed {
		status = statusCompleted
	}
	call := c.svc.Tasks.Insert(listID, &tasks.Task{Title: item.Text, Status: status})
	if previous != "" {
		call = call.Previous(previous)
	}
	created, err := call.Context(callCtx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return created.Id, nil
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}
	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: todo login)")
	}
	return err
}
