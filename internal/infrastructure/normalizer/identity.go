package normalizer

import (
	"strings"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// Identifier synthesis. Every synthesized id is a pure function of the raw
// input so re-normalizing an unchanged order yields byte-identical keys.

// SynthesizeCustomerID resolves the canonical customer id with fixed
// priority: explicit platform user id, then phone digits prefixed with the
// platform tag, then a guest id derived from the order id.
func SynthesizeCustomerID(platform canonical.Platform, platformUserID, phone, orderID string) string {
	if platformUserID != "" {
		return platform.Tag() + "_" + platformUserID
	}
	if digits := NormalizePhoneDigits(phone); digits != "" {
		return platform.Tag() + "_P" + digits
	}
	return "GUEST_" + orderID
}

// NormalizePhoneDigits strips everything but digits and rewrites the +84
// country prefix to the domestic leading zero. Returns "" when fewer than
// eight digits remain (masked or junk numbers).
func NormalizePhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "84") && len(digits) > 9 {
		digits = "0" + digits[2:]
	}
	if len(digits) < 8 {
		return ""
	}
	return digits
}

// SynthesizeSKU resolves the canonical sku: the seller sku when present,
// otherwise a synthetic one derived from the platform line-item id.
func SynthesizeSKU(sellerSKU, lineItemID string) string {
	if s := strings.TrimSpace(sellerSKU); s != "" {
		return s
	}
	return "SKU_" + lineItemID
}
