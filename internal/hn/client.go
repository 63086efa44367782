// Package hn is a typed client for the public Hacker News Firebase API.
package hn

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultBaseURL is the public v0 endpoint of the Hacker News API.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// ErrNotFound is returned when the upstream API has no entity for the given
// id. The API signals this with a literal JSON null body.
var ErrNotFound = errors.New("hn: not found")

// ErrUnknownList is returned by Stories for a listing name the API does not
// serve.
var ErrUnknownList = errors.New("hn: unknown story list")

// List identifies one of the story listings the API exposes.
type List string

const (
	Top  List = "top"
	New  List = "new"
	Best List = "best"
	Ask  List = "ask"
	Show List = "show"
	Job  List = "job"
)

// DefaultLimit is the number of story ids returned when the caller does not
// ask for a specific amount.
const DefaultLimit = 30

// endpoint returns the API path for the listing.
func (l List) endpoint() string {
	return string(l) + "stories.json"
}

// maxLimit is the upstream cap for the listing: the API serves up to 500 ids
// for top/new/best and up to 200 for ask/show/job.
func (l List) maxLimit() int {
	switch l {
	case Ask, Show, Job:
		return 200
	default:
		return 500
	}
}

// valid reports whether l names a known listing.
func (l List) valid() bool {
	switch l {
	case Top, New, Best, Ask, Show, Job:
		return true
	}
	return false
}

// Client calls the Hacker News API. The zero value is not usable; populate
// at least HTTPClient. A single Client is safe for concurrent use.
type Client struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
	// UserAgent is sent with every request when non-empty.
	UserAgent string
	// HTTPClient is the shared transport. Required.
	HTTPClient *http.Client
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// get fetches path and decodes the JSON body into v. A literal null body
// maps to ErrNotFound.
func (c *Client) get(ctx context.Context, path string, v any) error {
	url := c.baseURL() + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("hn: new request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("hn: get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("hn: get %s: unexpected status: %d", path, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("hn: get %s: read body: %w", path, err)
	}
	if isNull(body) {
		return ErrNotFound
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("hn: get %s: decode: %w", path, err)
	}
	return nil
}

func isNull(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null"))
}

// Item fetches a single item by id.
func (c *Client) Item(ctx context.Context, id int) (*Item, error) {
	var it Item
	if err := c.get(ctx, fmt.Sprintf("item/%d.json", id), &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// User fetches a user profile by username.
func (c *Client) User(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.get(ctx, fmt.Sprintf("user/%s.json", id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// MaxItem returns the current largest item id.
func (c *Client) MaxItem(ctx context.Context) (int, error) {
	var id int
	if err := c.get(ctx, "maxitem.json", &id); err != nil {
		return 0, err
	}
	return id, nil
}

// Stories returns up to limit story ids from the given listing. A
// non-positive limit means DefaultLimit; limits above the upstream cap are
// clamped to the cap.
func (c *Client) Stories(ctx context.Context, list List, limit int) ([]int, error) {
	if !list.valid() {
		return nil, fmt.Errorf("%w %q", ErrUnknownList, list)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if max := list.maxLimit(); limit > max {
		limit = max
	}
	var ids []int
	if err := c.get(ctx, list.endpoint(), &ids); err != nil {
		return nil, err
	}
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

// Updates returns the latest changed items and profiles.
func (c *Client) Updates(ctx context.Context) (*Updates, error) {
	var u Updates
	if err := c.get(ctx, "updates.json", &u); err != nil {
		return nil, err
	}
	return &u, nil
}
