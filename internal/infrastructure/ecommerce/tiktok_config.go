package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// TikTokConfig holds configuration for the TikTok Shop Open API
type TikTokConfig struct {
	// AppKey is the application key from the TikTok Shop partner center
	AppKey string
	// AppSecret is the application secret used for request signing
	AppSecret string
	// AccessToken is the shop's access token for API authorization
	AccessToken string
	// ShopID is the shop id on the TikTok Shop platform
	ShopID string
	// APIBaseURL is the base URL for the TikTok Shop API
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// TikTokProductionAPIURL is the production API endpoint
const TikTokProductionAPIURL = "https://open-api.tiktokglobalshop.com"

// Errors for TikTok Shop configuration
var (
	ErrTikTokConfigMissingAppKey      = errors.New("tiktok: app key is required")
	ErrTikTokConfigMissingAppSecret   = errors.New("tiktok: app secret is required")
	ErrTikTokConfigMissingAccessToken = errors.New("tiktok: access token is required")
	ErrTikTokConfigMissingShopID      = errors.New("tiktok: shop id is required")
)

// NewTikTokConfig creates a new TikTok Shop configuration with defaults
func NewTikTokConfig(appKey, appSecret, accessToken, shopID string) *TikTokConfig {
	return &TikTokConfig{
		AppKey:         appKey,
		AppSecret:      appSecret,
		AccessToken:    accessToken,
		ShopID:         shopID,
		APIBaseURL:     TikTokProductionAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the TikTok Shop configuration
func (c *TikTokConfig) Validate() error {
	if c.AppKey == "" {
		return ErrTikTokConfigMissingAppKey
	}
	if c.AppSecret == "" {
		return ErrTikTokConfigMissingAppSecret
	}
	if c.AccessToken == "" {
		return ErrTikTokConfigMissingAccessToken
	}
	if c.ShopID == "" {
		return ErrTikTokConfigMissingShopID
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = TikTokProductionAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign generates the signature for a TikTok Shop API request.
// TikTok Shop signs HMAC-SHA256 over: app_secret + api_path + sorted query
// parameters + request body + app_secret, keyed with the app secret.
func (c *TikTokConfig) Sign(apiPath string, params map[string]string, body string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "sign" || k == "access_token" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(c.AppSecret)
	builder.WriteString(apiPath)
	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString(params[k])
	}
	builder.WriteString(body)
	builder.WriteString(c.AppSecret)

	h := hmac.New(sha256.New, []byte(c.AppSecret))
	h.Write([]byte(builder.String()))
	return hex.EncodeToString(h.Sum(nil))
}
