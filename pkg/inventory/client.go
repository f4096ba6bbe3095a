package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when the server reports that the referenced product
// no longer exists as an active record. Callers should treat their local copy
// as stale and re-fetch.
var ErrNotFound = errors.New("product not found")

// FieldErrors carries server-side validation failures keyed by field name.
type FieldErrors struct {
	Errors map[string][]string `json:"errors"`
}

func (e *FieldErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Errors))
}

// Product is the wire representation of an inventory record.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"product_name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    *string         `json:"category"`
}

// MarshalJSON keeps the wire form of price at two fractional digits.
func (p Product) MarshalJSON() ([]byte, error) {
	type alias Product
	return json.Marshal(struct {
		alias
		Price string `json:"price"`
	}{alias(p), p.Price.StringFixed(2)})
}

// ProductFields are the fillable fields sent on create and update.
type ProductFields struct {
	Name        string          `json:"product_name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Category    *string         `json:"category"`
}

// MarshalJSON emits price with two fractional digits, matching what the
// server hands back.
func (f ProductFields) MarshalJSON() ([]byte, error) {
	type alias ProductFields
	return json.Marshal(struct {
		alias
		Price string `json:"price"`
	}{alias(f), f.Price.StringFixed(2)})
}

// Config holds client construction parameters.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client is a minimal HTTP client for the inventory API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new inventory API client with sane defaults.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// ListProducts fetches all active products.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.doRequest(ctx, http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct creates a new product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, fields ProductFields) (*Product, error) {
	var product Product
	if err := c.doRequest(ctx, http.MethodPost, "/api/products", fields, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces the fillable fields of an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, fields ProductFields) (*Product, error) {
	var product Product
	path := fmt.Sprintf("/api/products/%d", id)
	if err := c.doRequest(ctx, http.MethodPut, path, fields, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct soft-deletes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/products/%d", id)
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

// doRequest performs an HTTP exchange with JSON payloads, mapping 404 to
// ErrNotFound and 422 to *FieldErrors.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity:
		var fieldErrs FieldErrors
		if err := json.Unmarshal(respBody, &fieldErrs); err != nil || len(fieldErrs.Errors) == 0 {
			return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
		}
		return &fieldErrs
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
