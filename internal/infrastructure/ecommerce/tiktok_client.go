package ecommerce

import (
	"bytes"
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

// TikTokClient fetches raw order payloads from the TikTok Shop Open API
type TikTokClient struct {
	config     *TikTokConfig
	httpClient *http.Client
}

var _ canonical.OrderClient = (*TikTokClient)(nil)

// NewTikTokClient creates a new TikTok Shop client with the given configuration
func NewTikTokClient(config *TikTokConfig) (*TikTokClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &TikTokClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform returns the platform this client talks to
func (c *TikTokClient) Platform() canonical.Platform {
	return canonical.PlatformTikTok
}

// tiktokOrderListResponse is the envelope of the order search endpoint
type tiktokOrderListResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Orders []json.RawMessage `json:"orders"`
		Total  int               `json:"total"`
	} `json:"data"`
}

// FetchPage returns one page of raw orders created on the given date.
// TikTok Shop pages with a 1-indexed page number in the request body.
func (c *TikTokClient) FetchPage(ctx context.Context, date time.Time, page, pageSize int) ([]json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	from, to := dayWindow(date)

	const apiPath = "/api/orders/search"
	requestBody, err := json.Marshal(map[string]any{
		"create_time_from": from.Unix(),
		"create_time_to":   to.Unix(),
		"page_number":      page,
		"page_size":        pageSize,
		"sort_by":          "CREATE_TIME",
	})
	if err != nil {
		return nil, fmt.Errorf("tiktok: failed to marshal request: %w", err)
	}

	params := map[string]string{
		"app_key":      c.config.AppKey,
		"access_token": c.config.AccessToken,
		"shop_id":      c.config.ShopID,
		"timestamp":    strconv.FormatInt(time.Now().Unix(), 10),
	}
	params["sign"] = c.config.Sign(apiPath, params, string(requestBody))

	body, err := c.doRequest(ctx, apiPath, params, requestBody)
	if err != nil {
		return nil, err
	}

	var resp tiktokOrderListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Code != 0 {
		return nil, fmt.Errorf("%w: tiktok %d - %s", ErrRequestFailed, resp.Code, resp.Message)
	}
	return resp.Data.Orders, nil
}

// doRequest performs a POST request to the TikTok Shop API
func (c *TikTokClient) doRequest(ctx context.Context, apiPath string, params map[string]string, requestBody []byte) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query.Set(k, v)
	}
	requestURL := fmt.Sprintf("%s%s?%s", c.config.APIBaseURL, apiPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(requestBody))
	if err != nil {
		return nil, fmt.Errorf("tiktok: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("tiktok: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}
