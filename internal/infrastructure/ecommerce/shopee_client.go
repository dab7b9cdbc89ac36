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

// ShopeeClient fetches raw order payloads from the Shopee Open Platform API
type ShopeeClient struct {
	config     *ShopeeConfig
	httpClient *http.Client
}

var _ canonical.OrderClient = (*ShopeeClient)(nil)

// NewShopeeClient creates a new Shopee client with the given configuration
func NewShopeeClient(config *ShopeeConfig) (*ShopeeClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &ShopeeClient{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// Platform returns the platform this client talks to
func (c *ShopeeClient) Platform() canonical.Platform {
	return canonical.PlatformShopee
}

// shopeeOrderListResponse is the envelope of the order list endpoint
type shopeeOrderListResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	Response struct {
		OrderList []json.RawMessage `json:"order_list"`
		More      bool              `json:"more"`
	} `json:"response"`
}

// FetchPage returns one page of raw orders created on the given date.
// Shopee pages with a numeric cursor, so the page number maps onto an offset.
func (c *ShopeeClient) FetchPage(ctx context.Context, date time.Time, page, pageSize int) ([]json.RawMessage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	from, to := dayWindow(date)

	const apiPath = "/api/v2/order/get_order_list"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	query := url.Values{}
	query.Set("partner_id", c.config.PartnerID)
	query.Set("shop_id", c.config.ShopID)
	query.Set("access_token", c.config.AccessToken)
	query.Set("timestamp", timestamp)
	query.Set("sign", c.config.Sign(apiPath, timestamp))
	query.Set("time_range_field", "create_time")
	query.Set("time_from", strconv.FormatInt(from.Unix(), 10))
	query.Set("time_to", strconv.FormatInt(to.Unix(), 10))
	query.Set("page_size", strconv.Itoa(pageSize))
	query.Set("cursor", strconv.Itoa((page-1)*pageSize))
	query.Set("response_optional_fields", "order_status,item_list,recipient_address,payment_method")

	body, err := c.doRequest(ctx, apiPath, query)
	if err != nil {
		return nil, err
	}

	var resp shopeeOrderListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("%w: shopee %s - %s", ErrRequestFailed, resp.Error, resp.Message)
	}
	return resp.Response.OrderList, nil
}

// doRequest performs a GET request to the Shopee API
func (c *ShopeeClient) doRequest(ctx context.Context, apiPath string, query url.Values) ([]byte, error) {
	requestURL := fmt.Sprintf("%s%s?%s", c.config.APIBaseURL, apiPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("shopee: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopee: failed to read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}

// dayWindow returns the [start, end) bounds of the calendar day containing t
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}
