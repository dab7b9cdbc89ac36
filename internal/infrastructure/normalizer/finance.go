package normalizer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ordersync/backend/internal/domain/canonical"
)

var oneHundred = decimal.NewFromInt(100)

// applyFinancials fills the derived financial columns on an order. The
// platforms report post-discount totals, so gross is reconstructed as
// net + discount. Division by zero is guarded: a zero net yields a zero
// shipping cost ratio.
func applyFinancials(o *canonical.Order, net, discount, shippingFee decimal.Decimal, isCOD bool, adAttributionID string) {
	o.NetRevenue = net
	o.DiscountAmount = discount
	o.ShippingFee = shippingFee
	o.GrossRevenue = net.Add(discount)
	o.IsCOD = isCOD
	o.AdAttributionID = adAttributionID

	if isCOD {
		o.CODAmount = net
	} else {
		o.CODAmount = decimal.Zero
	}

	if net.IsZero() {
		o.ShippingCostRatio = decimal.Zero
	} else {
		o.ShippingCostRatio = shippingFee.Div(net).Mul(oneHundred).Round(4)
	}

	if adAttributionID != "" {
		o.AdRevenue = net
		o.OrganicRevenue = decimal.Zero
	} else {
		o.AdRevenue = decimal.Zero
		o.OrganicRevenue = net
	}
}

// applyStatus stamps the classified status onto the order flags
func applyStatus(o *canonical.Order, code canonical.StatusCode) {
	o.StatusCode = int(code)
	o.StatusName = code.String()
	o.IsDelivered = code.IsDelivered()
	o.IsCancelled = code.IsCancelled()
	o.IsReturned = code.IsReturned()
	o.HasRefund = code.IsRefundFamily()
	o.HasExchange = code == canonical.StatusReplacement
}

// buildStatusEntities builds the observed status snapshot plus its
// behavioral detail row for one classified order.
func buildStatusEntities(platform canonical.Platform, orderID, platformStatusCode, reason, triggeredBy, actor, subStatusID, partnerStatusID string, code canonical.StatusCode, statusDate time.Time) ([]canonical.OrderStatus, []canonical.OrderStatusDetail) {
	key := canonical.StatusKey(platform, platformStatusCode)

	snapshot := canonical.OrderStatus{
		StatusKey:       key,
		OrderID:         orderID,
		SubStatusID:     subStatusID,
		PartnerStatusID: partnerStatusID,
		Reason:          reason,
		TriggeredBy:     triggeredBy,
		Actor:           actor,
		StatusDate:      statusDate,
	}
	detail := canonical.OrderStatusDetail{
		StatusKey:     key,
		OrderID:       orderID,
		IsActive:      code.IsActive(),
		IsCompleted:   code == canonical.StatusCompleted,
		IsRefundable:  code.IsRefundable(),
		IsCancellable: code.IsCancellable(),
		SLAHours:      code.SLAHours(),
	}
	return []canonical.OrderStatus{snapshot}, []canonical.OrderStatusDetail{detail}
}
