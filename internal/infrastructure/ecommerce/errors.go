package ecommerce

import "errors"

// Errors shared by all platform API clients
var (
	// ErrPlatformUnavailable indicates the platform API could not be reached
	ErrPlatformUnavailable = errors.New("ecommerce: platform unavailable")
	// ErrRequestFailed indicates the platform API rejected the request
	ErrRequestFailed = errors.New("ecommerce: platform request failed")
	// ErrInvalidResponse indicates the platform API returned an unusable body
	ErrInvalidResponse = errors.New("ecommerce: invalid platform response")
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB max response
