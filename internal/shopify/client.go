// Package shopify is a thin client for the store admin REST API. It issues
// one request per call, never retries, and sends the access token only in
// the X-Shopify-Access-Token header.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"order-tracker/internal/config"
	"order-tracker/internal/metric"
	"order-tracker/internal/models"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	tokenHeader = "X-Shopify-Access-Token"

	candidatePageSize = 50
	exactNamePageSize = 1

	maxBodySize = 8 << 20
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	token      string
}

type Option func(*Client)

// WithBaseURL overrides https://<domain>, used against local fakes.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(cfg config.ShopifyConfig, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			// A redirect would replay the token header to another location.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:    "https://" + cfg.Domain,
		apiVersion: cfg.APIVersion,
		token:      cfg.AccessToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAPIVersion returns a copy of the client bound to another API version.
func (c *Client) WithAPIVersion(version string) *Client {
	cp := *c
	cp.apiVersion = version
	return &cp
}

func (c *Client) APIVersion() string {
	return c.apiVersion
}

// FetchCandidateOrders lists the orders of a customer email, cancelled and
// archived ones included. With exactName the store filters by order name and
// a single record is requested; otherwise up to 50 are returned and the
// caller matches the order number itself. The result is passed through as is.
func (c *Client) FetchCandidateOrders(ctx context.Context, email, exactName string) ([]models.RawOrder, error) {
	limit := candidatePageSize
	params := orderParams(email)
	if exactName != "" {
		params.Set("name", exactName)
		limit = exactNamePageSize
	}
	params.Set("limit", strconv.Itoa(limit))

	return c.listOrders(ctx, "fetch_candidates", params)
}

// ListOrders lists up to limit orders of a customer email.
func (c *Client) ListOrders(ctx context.Context, email string, limit int) ([]models.RawOrder, error) {
	params := orderParams(email)
	params.Set("limit", strconv.Itoa(limit))

	return c.listOrders(ctx, "list_orders", params)
}

// GetShop reads shop.json, a cheap way to check domain, version and token.
func (c *Client) GetShop(ctx context.Context) (models.Shop, error) {
	var body struct {
		Shop models.Shop `json:"shop"`
	}
	if err := c.do(ctx, "get_shop", http.MethodGet, "shop.json", nil, nil, &body); err != nil {
		return models.Shop{}, err
	}
	return body.Shop, nil
}

// CheckVersion reads shop.json through another API version.
func (c *Client) CheckVersion(ctx context.Context, version string) (models.Shop, error) {
	return c.WithAPIVersion(version).GetShop(ctx)
}

// MarkOrderFulfilled sets the fulfillment status of an order to fulfilled.
func (c *Client) MarkOrderFulfilled(ctx context.Context, orderID int64) error {
	payload := map[string]any{
		"order": map[string]any{
			"id":                 orderID,
			"fulfillment_status": "fulfilled",
		},
	}
	path := fmt.Sprintf("orders/%d.json", orderID)
	return c.do(ctx, "mark_fulfilled", http.MethodPut, path, nil, payload, nil)
}

func (c *Client) listOrders(ctx context.Context, op string, params url.Values) ([]models.RawOrder, error) {
	var env models.OrdersEnvelope
	if err := c.do(ctx, op, http.MethodGet, "orders.json", params, nil, &env); err != nil {
		return nil, err
	}
	if env.Orders == nil {
		return []models.RawOrder{}, nil
	}
	return env.Orders, nil
}

func orderParams(email string) url.Values {
	params := url.Values{}
	params.Set("status", "any")
	params.Set("email", strings.ToLower(strings.TrimSpace(email)))
	return params
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	endpoint := fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metric.UpstreamDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metric.UpstreamRequestsTotal.WithLabelValues(op, "unavailable").Inc()
		return unavailable(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		metric.UpstreamRequestsTotal.WithLabelValues(op, "unavailable").Inc()
		return unavailable(fmt.Errorf("read %s response: %w", op, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metric.UpstreamRequestsTotal.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
		return &RejectedError{StatusCode: resp.StatusCode, Body: data}
	}
	metric.UpstreamRequestsTotal.WithLabelValues(op, "ok").Inc()

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUpstreamMalformed, op, err)
	}
	return nil
}
