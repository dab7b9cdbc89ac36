package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// LazadaClient fetches raw order payloads from the Lazada Open Platform API
type LazadaClient struct {
	config     *LazadaConfig
	httpClient *http.Client
}

var _ canonical.OrderClient = (*LazadaClient)(nil)

// NewLazadaClient creates a new Lazada client with the given configuration
func NewLazadaClient(config *LazadaConfig) (*LazadaClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &LazadaClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform returns the platform this client talks to
func (c *LazadaClient) Platform() canonical.Platform {
	return canonical.PlatformLazada
}

// lazadaOrderListResponse is the envelope of the orders endpoint
type lazadaOrderListResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
	Data      struct {
		Count  int               `json:"count"`
		Orders []json.RawMessage `json:"orders"`
	} `json:"data"`
}

// FetchPage returns one page of raw orders created on the given date.
// Lazada pages with offset plus limit.
func (c *LazadaClient) FetchPage(ctx context.Context, date time.Time, page, pageSize int) ([]json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	from, to := dayWindow(date)

	const apiPath = "/orders/get"
	params := map[string]string{
		"app_key":        c.config.AppKey,
		"access_token":   c.config.AccessToken,
		"sign_method":    "sha256",
		"timestamp":      strconv.FormatInt(time.Now().UnixMilli(), 10),
		"created_after":  from.Format(time.RFC3339),
		"created_before": to.Format(time.RFC3339),
		"sort_by":        "created_at",
		"sort_direction": "ASC",
		"offset":         strconv.Itoa((page - 1) * pageSize),
		"limit":          strconv.Itoa(pageSize),
	}
	params["sign"] = c.config.Sign(apiPath, params)

	body, err := c.doRequest(ctx, apiPath, params)
	if err != nil {
		return nil, err
	}

	var resp lazadaOrderListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Code != "0" {
		return nil, fmt.Errorf("%w: lazada %s - %s", ErrRequestFailed, resp.Code, resp.Message)
	}
	return resp.Data.Orders, nil
}

// doRequest performs a GET request to the Lazada API
func (c *LazadaClient) doRequest(ctx context.Context, apiPath string, params map[string]string) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	requestURL := fmt.Sprintf("%s%s?%s", c.config.APIBaseURL, apiPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("lazada: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("lazada: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}
