package zotero

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"zotsync/internal/services"
)

const (
	defaultBaseURL     = "https://api.zotero.org"
	defaultPageLimit   = 100
	defaultHTTPTimeout = 30 * time.Second
	apiVersion         = "3"
)

// HTTPDoer describes the HTTP client used by the Zotero service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config describes the Zotero client configuration.
type Config struct {
	BaseURL     string
	LibraryType string // "user" or "group"
	LibraryID   string
	APIKey      string
	PageLimit   int
	MaxRetries  int
	Timeout     time.Duration
	HTTPClient  HTTPDoer
	// RetryDelay overrides the backoff schedule (primarily for tests).
	RetryDelay func(attempt int) time.Duration
}

// Client wraps the Zotero Web API for one library.
type Client struct {
	baseURL    *url.URL
	prefix     string
	apiKey     string
	pageLimit  int
	maxRetries int
	http       HTTPDoer
	retryDelay func(attempt int) time.Duration
}

// Item is one reference-library record, reduced to what tagging needs. The
// version token must accompany any update so the remote can reject writes
// that raced another client.
type Item struct {
	Key     string
	Version int
	Title   string
	Tags    []string
}

// New creates a Client from the supplied configuration.
func New(cfg Config) (*Client, error) {
	libraryID := strings.TrimSpace(cfg.LibraryID)
	if libraryID == "" {
		return nil, errors.New("zotero: library id is required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("zotero: api key is required")
	}
	libraryType := strings.TrimSpace(cfg.LibraryType)
	var prefix string
	switch libraryType {
	case "", "user":
		prefix = "users/" + libraryID
	case "group":
		prefix = "groups/" + libraryID
	default:
		return nil, fmt.Errorf("zotero: unsupported library type %q", cfg.LibraryType)
	}

	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = defaultBaseURL
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("zotero: parse base url: %w", err)
	}

	pageLimit := cfg.PageLimit
	if pageLimit <= 0 {
		pageLimit = defaultPageLimit
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	delay := cfg.RetryDelay
	if delay == nil {
		delay = defaultRetryDelay
	}

	return &Client{
		baseURL:    baseURL,
		prefix:     prefix,
		apiKey:     apiKey,
		pageLimit:  pageLimit,
		maxRetries: maxRetries,
		http:       client,
		retryDelay: delay,
	}, nil
}

func defaultRetryDelay(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 500 * time.Millisecond
}

// ItemsByTag returns the set of item keys currently bearing the tag,
// following pagination until a page comes back short. Any page failing after
// retries discards everything already fetched: a partial tagged set would
// make the reconciler re-tag items needlessly.
func (c *Client) ItemsByTag(ctx context.Context, tag string) (map[string]struct{}, error) {
	if c == nil {
		return nil, errors.New("zotero: client is nil")
	}
	tagged := make(map[string]struct{})
	start := 0
	for {
		page, err := c.itemsPage(ctx, tag, start)
		if err != nil {
			return nil, services.Wrap(services.ErrRemoteQuery, "zotero", "items-by-tag", fmt.Sprintf("offset %d", start), err)
		}
		for _, item := range page {
			tagged[item.Key] = struct{}{}
		}
		// A short page is the sole termination signal; an exact multiple
		// of the page size costs one extra empty request.
		if len(page) < c.pageLimit {
			return tagged, nil
		}
		start += len(page)
	}
}

func (c *Client) itemsPage(ctx context.Context, tag string, start int) ([]Item, error) {
	endpoint := c.baseURL.JoinPath(c.prefix, "items")
	params := url.Values{}
	params.Set("tag", tag)
	params.Set("start", strconv.Itoa(start))
	params.Set("limit", strconv.Itoa(c.pageLimit))
	params.Set("format", "json")
	endpoint.RawQuery = params.Encode()

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if err := c.wait(ctx, c.retryDelay(attempt-1)); err != nil {
				return nil, err
			}
		}

		items, retryable, err := c.fetchItemsPage(ctx, endpoint.String())
		if err == nil {
			return items, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}
	return nil, fmt.Errorf("retries exhausted: %w", lastErr)
}

func (c *Client) fetchItemsPage(ctx context.Context, endpoint string) (items []Item, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, retryableStatus(resp.StatusCode), statusError(resp)
	}

	var payload []wireItem
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("decode items page: %w", err)
	}
	items = make([]Item, 0, len(payload))
	for _, entry := range payload {
		items = append(items, entry.toItem())
	}
	return items, false, nil
}

// Item fetches the current record for one key. The returned version and tag
// list reflect the remote state at fetch time and must be passed back to
// UpdateItemTags unchanged.
func (c *Client) Item(ctx context.Context, key string) (Item, error) {
	if c == nil {
		return Item{}, errors.New("zotero: client is nil")
	}
	endpoint := c.baseURL.JoinPath(c.prefix, "items", key)
	params := url.Values{}
	params.Set("format", "json")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return Item{}, services.Wrap(services.ErrRemoteUpdate, "zotero", "get-item", key, err)
	}
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Item{}, services.Wrap(services.ErrRemoteUpdate, "zotero", "get-item", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return Item{}, services.Wrap(services.ErrRemoteUpdate, "zotero", "get-item", key, statusError(resp))
	}

	var payload wireItem
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Item{}, services.Wrap(services.ErrRemoteUpdate, "zotero", "get-item", key, fmt.Errorf("decode item: %w", err))
	}
	return payload.toItem(), nil
}

// UpdateItemTags submits the full replacement tag list for the item. The
// version read at fetch time rides along in If-Unmodified-Since-Version so a
// concurrent edit surfaces as a version conflict instead of being clobbered.
func (c *Client) UpdateItemTags(ctx context.Context, key string, version int, tags []string) error {
	if c == nil {
		return errors.New("zotero: client is nil")
	}
	wireTags := make([]wireTag, 0, len(tags))
	for _, tag := range tags {
		wireTags = append(wireTags, wireTag{Tag: tag})
	}
	body, err := json.Marshal(map[string]any{"tags": wireTags})
	if err != nil {
		return services.Wrap(services.ErrRemoteUpdate, "zotero", "update-item", key, fmt.Errorf("encode tags: %w", err))
	}

	endpoint := c.baseURL.JoinPath(c.prefix, "items", key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return services.Wrap(services.ErrRemoteUpdate, "zotero", "update-item", key, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("If-Unmodified-Since-Version", strconv.Itoa(version))
	c.applyHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return services.Wrap(services.ErrRemoteUpdate, "zotero", "update-item", key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPreconditionFailed:
		return services.Wrap(services.ErrVersionConflict, "zotero", "update-item", key, fmt.Errorf("item modified remotely since version %d", version))
	case resp.StatusCode >= 400:
		return services.Wrap(services.ErrRemoteUpdate, "zotero", "update-item", key, statusError(resp))
	default:
		return nil
	}
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Zotero-API-Version", apiVersion)
	req.Header.Set("Zotero-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return fmt.Errorf("unexpected status %s: %s", resp.Status, detail)
}

type wireItem struct {
	Key     string   `json:"key"`
	Version int      `json:"version"`
	Data    wireData `json:"data"`
}

type wireData struct {
	Title string    `json:"title"`
	Tags  []wireTag `json:"tags"`
}

type wireTag struct {
	Tag string `json:"tag"`
}

func (w wireItem) toItem() Item {
	tags := make([]string, 0, len(w.Data.Tags))
	for _, tag := range w.Data.Tags {
		tags = append(tags, tag.Tag)
	}
	return Item{
		Key:     w.Key,
		Version: w.Version,
		Title:   w.Data.Title,
		Tags:    tags,
	}
}
