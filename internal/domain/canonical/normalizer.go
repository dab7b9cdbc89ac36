package canonical

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	ErrPlatformNotRegistered = errors.New("canonical: platform not registered")
	ErrInvalidPlatform       = errors.New("canonical: invalid platform code")
	ErrMalformedRawOrder     = errors.New("canonical: malformed raw order payload")
)

// ---------------------------------------------------------------------------
// Platform
// ---------------------------------------------------------------------------

// Platform identifies the marketplace an order came from
type Platform string

const (
	// PlatformShopee represents Shopee marketplace
	PlatformShopee Platform = "SHOPEE"
	// PlatformLazada represents Lazada marketplace
	PlatformLazada Platform = "LAZADA"
	// PlatformTikTok represents TikTok Shop marketplace
	PlatformTikTok Platform = "TIKTOK"
)

// IsValid returns true if the platform code is known
func (p Platform) IsValid() bool {
	switch p {
	case PlatformShopee, PlatformLazada, PlatformTikTok:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// Tag returns the short prefix used when synthesizing identifiers
func (p Platform) Tag() string {
	switch p {
	case PlatformShopee:
		return "SP"
	case PlatformLazada:
		return "LZ"
	case PlatformTikTok:
		return "TT"
	default:
		return "XX"
	}
}

// AllPlatforms returns every supported platform
func AllPlatforms() []Platform {
	return []Platform{PlatformShopee, PlatformLazada, PlatformTikTok}
}

// ---------------------------------------------------------------------------
// EntitySet
// ---------------------------------------------------------------------------

// EntitySet is the full canonical output of normalizing one raw order.
// Pointer fields are nil when the platform payload carried nothing usable
// for that entity; slices are empty, never nil, when constructed.
type EntitySet struct {
	Customer       *Customer
	Order          *Order
	Items          []OrderItem
	Products       []Product
	Geography      *GeographyInfo
	Payment        *PaymentInfo
	Shipping       *ShippingInfo
	ProcessingDate *ProcessingDateInfo
	Statuses       []OrderStatus
	StatusDetails  []OrderStatusDetail
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// OrderNormalizer turns one platform's raw order payload into the canonical
// entity set. A (nil, nil) return means the record was skipped because it
// lacks a resolvable identity; that is not an error. Normalizers never
// perform I/O.
type OrderNormalizer interface {
	// Platform returns the platform this normalizer handles
	Platform() Platform

	// Normalize converts a raw order into canonical entities
	Normalize(raw json.RawMessage) (*EntitySet, error)
}

// OrderClient fetches raw order payloads from a marketplace API. It is an
// external collaborator: implementations own authentication, retries and
// timeouts. A page shorter than pageSize signals end of data.
type OrderClient interface {
	// Platform returns the platform this client talks to
	Platform() Platform

	// FetchPage returns one page of raw orders created on the given date
	FetchPage(ctx context.Context, date time.Time, page, pageSize int) ([]json.RawMessage, error)
}

// StatusKey builds the deterministic key joining a platform status to the
// master vocabulary row.
func StatusKey(platform Platform, platformStatusCode string) string {
	return string(platform) + "_" + platformStatusCode
}
