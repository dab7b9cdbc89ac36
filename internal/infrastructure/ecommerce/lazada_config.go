package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// LazadaConfig holds configuration for the Lazada Open Platform API
type LazadaConfig struct {
	// AppKey is the application key from the Lazada open platform
	AppKey string
	// AppSecret is the application secret used for request signing
	AppSecret string
	// AccessToken is the seller's access token for API authorization
	AccessToken string
	// APIBaseURL is the base URL for the Lazada API, per country
	APIBaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// LazadaVietnamAPIURL is the Vietnam market API endpoint
const LazadaVietnamAPIURL = "https://api.lazada.vn/rest"

// Errors for Lazada configuration
var (
	ErrLazadaConfigMissingAppKey      = errors.New("lazada: app key is required")
	ErrLazadaConfigMissingAppSecret   = errors.New("lazada: app secret is required")
	ErrLazadaConfigMissingAccessToken = errors.New("lazada: access token is required")
)

// NewLazadaConfig creates a new Lazada configuration with defaults
func NewLazadaConfig(appKey, appSecret, accessToken string) *LazadaConfig {
	return &LazadaConfig{
		AppKey:         appKey,
		AppSecret:      appSecret,
		AccessToken:    accessToken,
		APIBaseURL:     LazadaVietnamAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Lazada configuration
func (c *LazadaConfig) Validate() error {
	if c.AppKey == "" {
		return ErrLazadaConfigMissingAppKey
	}
	if c.AppSecret == "" {
		return ErrLazadaConfigMissingAppSecret
	}
	if c.AccessToken == "" {
		return ErrLazadaConfigMissingAccessToken
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = LazadaVietnamAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign generates the signature for a Lazada API request.
// Lazada signs HMAC-SHA256 over the api path followed by every parameter
// key and value in sorted key order, hex encoded uppercase.
func (c *LazadaConfig) Sign(apiPath string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "sign" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(apiPath)
	for _, k := range keys {
		builder.WriteString(k)
		builder.WriteString(params[k])
	}

	h := hmac.New(sha256.New, []byte(c.AppSecret))
	h.Write([]byte(builder.String()))
	return strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
}
