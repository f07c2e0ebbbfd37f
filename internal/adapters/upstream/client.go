// internal/adapters/upstream/client.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/storelens/storelens-be/internal/core/domain"
	"github.com/storelens/storelens-be/internal/core/ports"
)

// Client talks to the store backend's REST API. Every collection the
// analytics layer needs comes through here; responses arrive either as
// a bare JSON array or wrapped in a {"result": ...} envelope depending
// on the endpoint, and the client normalizes both shapes.
type Client struct {
	baseURL    string
	tokenType  string
	token      string
	pageSize   int
	maxPages   int
	httpClient *http.Client
	logger     *slog.Logger
}

// Statically assert that *Client implements the DataSource interface.
var _ ports.DataSource = (*Client)(nil)

// Config holds the connection settings for the store backend.
type Config struct {
	BaseURL   string
	TokenType string
	Token     string
	Timeout   time.Duration
	PageSize  int
	// MaxPages bounds the transaction pagination walk so a broken
	// upstream pager cannot spin the fetch forever.
	MaxPages int
}

// NewClient creates a new upstream API client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 200
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 500
	}
	tokenType := cfg.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		tokenType: tokenType,
		token:     cfg.Token,
		pageSize:  pageSize,
		maxPages:  maxPages,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With(slog.String("component", "upstream_client")),
	}
}

// Inventories fetches every inventory record.
func (c *Client) Inventories(ctx context.Context) ([]domain.InventoryRecord, error) {
	return fetchCollection[domain.InventoryRecord](ctx, c, "/inventories")
}

// Products fetches the product catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	return fetchCollection[domain.Product](ctx, c, "/products")
}

// Categories fetches the category list.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	return fetchCollection[domain.Category](ctx, c, "/categories")
}

// Orders fetches every order with its line items.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	return fetchCollection[domain.Order](ctx, c, "/orders")
}

// Transactions walks the paginated transaction endpoint page by page
// and returns the flattened result. The walk stops when the reported
// page count is reached, a short page comes back, or the page cap is
// hit.
func (c *Client) Transactions(ctx context.Context) ([]domain.Transaction, error) {
	var all []domain.Transaction

	for page := 0; page < c.maxPages; page++ {
		path := fmt.Sprintf("/inventory-transactions?page=%s&size=%s",
			strconv.Itoa(page), strconv.Itoa(c.pageSize))

		body, err := c.get(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("fetch transactions page %d: %w", page, err)
		}

		var tp domain.TransactionPage
		if err := json.Unmarshal(body, &tp); err != nil {
			// Some deployments return a bare array instead of a page
			// envelope. Treat that as the only page.
			var flat []domain.Transaction
			if flatErr := json.Unmarshal(body, &flat); flatErr == nil {
				return append(all, flat...), nil
			}
			return nil, fmt.Errorf("decode transactions page %d: %w", page, err)
		}

		all = append(all, tp.Content...)

		if tp.TotalPages > 0 && page+1 >= tp.TotalPages {
			break
		}
		if len(tp.Content) < c.pageSize {
			break
		}
	}

	c.logger.DebugContext(ctx, "transactions fetched",
		slog.Int("count", len(all)))

	return all, nil
}

// Ping verifies the backend is reachable and the token is accepted.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/categories")
	return err
}

// fetchCollection downloads one collection endpoint and decodes it
// into a slice. A payload that is not an array, after unwrapping,
// yields an empty slice rather than an error so one malformed
// collection never takes the whole dashboard down.
func fetchCollection[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	body = unwrapEnvelope(body)

	var items []T
	if err := json.Unmarshal(body, &items); err != nil {
		c.logger.WarnContext(ctx, "collection payload is not an array",
			slog.String("path", path))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

// get performs an authorized GET and returns the response body.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	u := strings.TrimRight(c.baseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", c.tokenType+" "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s: %w", path, err)
	}

	c.logger.DebugContext(ctx, "upstream request",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	return body, nil
}

// unwrapEnvelope peels the {"result": ...} or {"data": ...} wrapper
// some endpoints use. Payloads without a wrapper pass through as-is.
func unwrapEnvelope(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return trimmed
	}
	if len(envelope.Result) > 0 && !bytes.Equal(envelope.Result, []byte("null")) {
		return envelope.Result
	}
	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		return envelope.Data
	}
	return trimmed
}
