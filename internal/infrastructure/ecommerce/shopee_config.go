package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

// ShopeeConfig holds configuration for the Shopee Open Platform API
type ShopeeConfig struct {
	// PartnerID is the partner id from the Shopee open platform
	PartnerID string
	// PartnerKey is the partner secret used for request signing
	PartnerKey string
	// AccessToken is the shop's access token for API authorization
	AccessToken string
	// ShopID is the shop id on the Shopee platform
	ShopID string
	// APIBaseURL is the base URL for the Shopee API (production or sandbox)
	APIBaseURL string
	// IsSandbox indicates if this is a sandbox environment
	IsSandbox bool
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// ShopeeProductionAPIURL is the production API endpoint
	ShopeeProductionAPIURL = "https://partner.shopeemobile.com"
	// ShopeeSandboxAPIURL is the sandbox API endpoint
	ShopeeSandboxAPIURL = "https://partner.test-stable.shopeemobile.com"
)

// Errors for Shopee configuration
var (
	ErrShopeeConfigMissingPartnerID   = errors.New("shopee: partner id is required")
	ErrShopeeConfigMissingPartnerKey  = errors.New("shopee: partner key is required")
	ErrShopeeConfigMissingAccessToken = errors.New("shopee: access token is required")
	ErrShopeeConfigMissingShopID      = errors.New("shopee: shop id is required")
)

// NewShopeeConfig creates a new Shopee configuration with defaults
func NewShopeeConfig(partnerID, partnerKey, accessToken, shopID string) *ShopeeConfig {
	return &ShopeeConfig{
		PartnerID:      partnerID,
		PartnerKey:     partnerKey,
		AccessToken:    accessToken,
		ShopID:         shopID,
		APIBaseURL:     ShopeeProductionAPIURL,
		IsSandbox:      false,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Shopee configuration
func (c *ShopeeConfig) Validate() error {
	if c.PartnerID == "" {
		return ErrShopeeConfigMissingPartnerID
	}
	if c.PartnerKey == "" {
		return ErrShopeeConfigMissingPartnerKey
	}
	if c.AccessToken == "" {
		return ErrShopeeConfigMissingAccessToken
	}
	if c.ShopID == "" {
		return ErrShopeeConfigMissingShopID
	}
	if c.APIBaseURL == "" {
		if c.IsSandbox {
			c.APIBaseURL = ShopeeSandboxAPIURL
		} else {
			c.APIBaseURL = ShopeeProductionAPIURL
		}
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Sign generates the signature for a Shopee API request.
// Shopee signs HMAC-SHA256 over: partner_id + api_path + timestamp +
// access_token + shop_id, keyed with the partner key.
func (c *ShopeeConfig) Sign(apiPath string, timestamp string) string {
	var builder strings.Builder
	builder.WriteString(c.PartnerID)
	builder.WriteString(apiPath)
	builder.WriteString(timestamp)
	builder.WriteString(c.AccessToken)
	builder.WriteString(c.ShopID)

	h := hmac.New(sha256.New, []byte(c.PartnerKey))
	h.Write([]byte(builder.String()))
	return hex.EncodeToString(h.Sum(nil))
}
