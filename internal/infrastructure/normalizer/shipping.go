package normalizer

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// Carrier capability table. Covers the carriers the three platforms hand
// parcels to in this market; unknown carriers get conservative defaults.

// carrierClass describes one known last-mile carrier
type carrierClass struct {
	keywords    []string
	serviceType string
	supportsCOD bool
	hasTracking bool
	isExpress   bool
	avgDays     int
}

var carrierClasses = []carrierClass{
	{keywords: []string{"spx", "shopee xpress", "shopee express"}, serviceType: "STANDARD", supportsCOD: true, hasTracking: true, avgDays: 3},
	{keywords: []string{"ghn", "giao hàng nhanh", "giao hang nhanh"}, serviceType: "EXPRESS", supportsCOD: true, hasTracking: true, isExpress: true, avgDays: 2},
	{keywords: []string{"ghtk", "giao hàng tiết kiệm", "giao hang tiet kiem"}, serviceType: "ECONOMY", supportsCOD: true, hasTracking: true, avgDays: 4},
	{keywords: []string{"j&t", "jt express", "j&t express"}, serviceType: "STANDARD", supportsCOD: true, hasTracking: true, avgDays: 3},
	{keywords: []string{"viettel", "vtp"}, serviceType: "STANDARD", supportsCOD: true, hasTracking: true, avgDays: 3},
	{keywords: []string{"ninja", "ninja van"}, serviceType: "STANDARD", supportsCOD: true, hasTracking: true, avgDays: 3},
	{keywords: []string{"lex", "lazada logistics", "lel"}, serviceType: "STANDARD", supportsCOD: true, hasTracking: true, avgDays: 3},
	{keywords: []string{"best", "best express"}, serviceType: "ECONOMY", supportsCOD: true, hasTracking: true, avgDays: 4},
	{keywords: []string{"grab", "grabexpress"}, serviceType: "SAME_DAY", supportsCOD: false, hasTracking: true, isExpress: true, avgDays: 1},
	{keywords: []string{"vnpost", "vietnam post", "ems"}, serviceType: "ECONOMY", supportsCOD: true, hasTracking: true, avgDays: 5},
}

// ClassifyShipping builds the ShippingInfo row from carrier name, tracking
// number and the fee breakdown reported by the platform.
func ClassifyShipping(orderID, carrier, trackingNumber string, buyerFee, totalFee decimal.Decimal) *canonical.ShippingInfo {
	info := &canonical.ShippingInfo{
		OrderID:         orderID,
		Carrier:         carrier,
		ServiceType:     "STANDARD",
		TrackingNumber:  trackingNumber,
		TotalFee:        totalFee,
		BuyerFee:        buyerFee,
		PlatformSubsidy: decimal.Zero,
		SupportsCOD:     false,
		HasTracking:     trackingNumber != "",
		IsExpress:       false,
		AvgDeliveryDays: 4,
	}

	// Subsidy is whatever the buyer did not pay of the real fee
	if totalFee.GreaterThan(buyerFee) {
		info.PlatformSubsidy = totalFee.Sub(buyerFee)
	}

	lower := strings.ToLower(carrier)
	for _, c := range carrierClasses {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				info.ServiceType = c.serviceType
				info.SupportsCOD = c.supportsCOD
				info.IsExpress = c.isExpress
				info.AvgDeliveryDays = c.avgDays
				if c.hasTracking && trackingNumber != "" {
					info.HasTracking = true
				}
				return info
			}
		}
	}
	return info
}
