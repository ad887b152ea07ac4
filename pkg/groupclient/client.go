package groupclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"household-sync-be/pkg/chorewatch"
)

var (
	ErrUnavailable   = errors.New("group service unavailable")
	ErrMalformed     = errors.New("malformed group response")
	ErrGroupNotFound = errors.New("group not found")
)

// Client fetches group documents from the group backend over JSON/HTTP.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type envelope struct {
	Success bool           `json:"success"`
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    *groupDocument `json:"data"`
}

type groupDocument struct {
	Id        string                   `json:"id"`
	Name      string                   `json:"name"`
	Chores    []chorewatch.Chore       `json:"chores"`
	Groceries []chorewatch.GroceryItem `json:"groceries"`
}

// Fetch returns a fresh snapshot of the group.
func (c *Client) Fetch(ctx context.Context, groupId string) (*chorewatch.Snapshot, error) {
	endpoint := fmt.Sprintf("%s/api/group/v1/%s", c.BaseURL, url.PathEscape(groupId))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, groupId)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(bodyBytes))
	}

	var env envelope
	if err := json.Unmarshal(bodyBytes, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrMalformed)
	}

	return &chorewatch.Snapshot{
		GroupName: env.Data.Name,
		Chores:    env.Data.Chores,
		Groceries: env.Data.Groceries,
	}, nil
}
