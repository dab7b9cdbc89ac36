package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// TikTokNormalizer converts raw TikTok Shop orders into the canonical entity set
type TikTokNormalizer struct {
	logger *zap.Logger
}

// NewTikTokNormalizer creates a TikTok Shop normalizer
func NewTikTokNormalizer(logger *zap.Logger) *TikTokNormalizer {
	return &TikTokNormalizer{logger: logger}
}

// Platform returns the platform code this normalizer handles
func (n *TikTokNormalizer) Platform() canonical.Platform {
	return canonical.PlatformTikTok
}

// tiktokLifecycle maps the numeric TikTok status to the canonical code.
// The cancelled code is handled by the priority tiers, not this table.
var tiktokLifecycle = map[int]canonical.StatusCode{
	TikTokStatusUnpaid:           canonical.StatusNew,
	TikTokStatusAwaitingShipment: canonical.StatusConfirmed,
	TikTokStatusAwaitingCollect:  canonical.StatusPackaging,
	TikTokStatusInTransit:        canonical.StatusShipped,
	TikTokStatusDelivered:        canonical.StatusDelivered,
	TikTokStatusCompleted:        canonical.StatusCompleted,
}

// Normalize converts one raw TikTok order. Orders without an order_id are
// skipped (nil, nil).
func (n *TikTokNormalizer) Normalize(raw json.RawMessage) (*canonical.EntitySet, error) {
	var order TikTokOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("%w: tiktok: %v", canonical.ErrMalformedRawOrder, err)
	}
	if order.OrderID == "" {
		return nil, nil
	}

	orderID := order.OrderID
	code := n.classifyStatus(&order)
	orderDate := TimeFromEpoch(order.CreateTime)

	var phone, name, province, district string
	if addr := order.RecipientAddress; addr != nil {
		phone = addr.Phone
		name = addr.Name
		province = addr.Province
		district = addr.District
	}

	customerID := SynthesizeCustomerID(canonical.PlatformTikTok, order.BuyerUID, phone, orderID)

	customer := &canonical.Customer{
		CustomerID:   customerID,
		Platform:     string(canonical.PlatformTikTok),
		CustomerName: name,
		Phone:        NormalizePhoneDigits(phone),
		IsCODUser:    order.IsCOD,
		IsGuest:      order.BuyerUID == "" && NormalizePhoneDigits(phone) == "",
		FirstOrderAt: orderDate,
		LastOrderAt:  orderDate,
	}

	o := &canonical.Order{
		OrderID:    orderID,
		CustomerID: customerID,
		Platform:   string(canonical.PlatformTikTok),
		SellerID:   order.SellerID,
		SellerName: order.SellerName,
		OrderDate:  orderDate,
	}

	items, products, itemsTotal := n.normalizeItems(&order)

	// Fresh orders may not carry the settlement block yet; fall back to the
	// line item sum so financials stay derivable.
	var net, shippingFee, sellerDiscount, platformDiscount decimal.Decimal
	if p := order.Payment; p != nil {
		net = decimal.NewFromInt(p.SubTotal)
		shippingFee = decimal.NewFromInt(p.ShippingFee)
		sellerDiscount = decimal.NewFromInt(p.SellerDiscount)
		platformDiscount = decimal.NewFromInt(p.PlatformDiscount)
	} else {
		net = itemsTotal
	}
	discount := sellerDiscount.Add(platformDiscount)

	applyFinancials(o, net, discount, shippingFee, order.IsCOD, order.CampaignID)
	o.SellerDiscount = sellerDiscount
	o.PlatformDiscount = platformDiscount
	if ret := order.ReturnInfo; ret != nil && ret.ReturnStatus == TikTokReturnSuccess {
		o.RefundAmount = decimal.NewFromInt(ret.RefundTotal)
	}
	applyStatus(o, code)

	reason, triggeredBy, actor := tiktokTransitionMeta(&order)
	subStatusID := ""
	if order.ReturnInfo != nil {
		subStatusID = "TT_RET_" + order.ReturnInfo.ReturnStatus
	}
	partnerStatusID := ""
	if order.ShippingProvider != "" {
		partnerStatusID = "TT_3PL_" + order.ShippingProvider
	}
	statuses, details := buildStatusEntities(
		canonical.PlatformTikTok, orderID, strconv.Itoa(order.Status),
		reason, triggeredBy, actor, subStatusID, partnerStatusID,
		code, TimeFromEpoch(order.UpdateTime),
	)

	return &canonical.EntitySet{
		Customer:       customer,
		Order:          o,
		Items:          items,
		Products:       products,
		Geography:      ClassifyGeography(orderID, province, district),
		Payment:        ClassifyPayment(orderID, order.PaymentMethodName, order.IsCOD),
		Shipping:       ClassifyShipping(orderID, order.ShippingProvider, order.TrackingNumber, shippingFee, shippingFee),
		ProcessingDate: DecomposeDate(orderID, orderDate),
		Statuses:       statuses,
		StatusDetails:  details,
	}, nil
}

// classifyStatus applies the three-tier priority for TikTok orders
func (n *TikTokNormalizer) classifyStatus(order *TikTokOrder) canonical.StatusCode {
	if ret := order.ReturnInfo; ret != nil {
		switch ret.ReturnStatus {
		case TikTokReturnSuccess:
			switch ret.ReturnType {
			case TikTokReturnTypeRefund:
				return canonical.StatusRefunded
			case TikTokReturnTypeReplacement:
				return canonical.StatusReplacement
			default:
				return canonical.StatusReturnAndRefunded
			}
		case TikTokReturnPending:
			return canonical.StatusReturning
		}
		// Rejected requests fall through to the regular lifecycle
	}

	if order.Status == TikTokStatusCancelled {
		if order.CollectionTime > 0 {
			return canonical.StatusReturned
		}
		return canonical.StatusCanceled
	}

	if code, ok := tiktokLifecycle[order.Status]; ok {
		return code
	}
	n.logger.Warn("Unmapped TikTok order status, defaulting to NEW",
		zap.String("order_id", order.OrderID),
		zap.Int("status", order.Status),
	)
	return canonical.StatusNew
}

// normalizeItems builds line items and catalog rows, accumulating the
// post-discount item total as the settlement fallback.
func (n *TikTokNormalizer) normalizeItems(order *TikTokOrder) ([]canonical.OrderItem, []canonical.Product, decimal.Decimal) {
	items := make([]canonical.OrderItem, 0, len(order.Items))
	products := make([]canonical.Product, 0, len(order.Items))
	total := decimal.Zero

	for i, it := range order.Items {
		sku := SynthesizeSKU(it.SellerSKU, it.ID)
		platformProductID := firstNonEmpty(it.ProductID, it.SKUID)

		unit := decimal.NewFromInt(it.SalePrice)
		original := decimal.NewFromInt(it.OriginalPrice)
		if original.IsZero() {
			original = unit
		}
		qty := it.Quantity
		lineTotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		total = total.Add(lineTotal)

		itemDiscount := decimal.Zero
		if original.GreaterThan(unit) {
			itemDiscount = original.Sub(unit).Mul(decimal.NewFromInt(int64(qty)))
		}

		items = append(items, canonical.OrderItem{
			OrderID:           order.OrderID,
			SKU:               sku,
			PlatformProductID: platformProductID,
			ItemSeq:           i + 1,
			ProductName:       it.ProductName,
			Quantity:          qty,
			UnitPrice:         unit,
			OriginalPrice:     original,
			ItemDiscount:      itemDiscount,
			LineTotal:         lineTotal,
		})
		products = append(products, canonical.Product{
			SKU:               sku,
			PlatformProductID: platformProductID,
			Platform:          string(canonical.PlatformTikTok),
			ProductName:       it.ProductName,
			PriceMin:          unit,
			PriceMax:          original,
			ImageURL:          it.SKUImage,
		})
	}
	return items, products, total
}

// tiktokTransitionMeta derives reason/trigger/actor for the status snapshot
func tiktokTransitionMeta(order *TikTokOrder) (reason, triggeredBy, actor string) {
	if ret := order.ReturnInfo; ret != nil && ret.ReturnReason != "" {
		return ret.ReturnReason, "BUYER", "buyer"
	}
	if c := order.Cancellation; c != nil && c.CancelReason != "" {
		trigger := "SYSTEM"
		switch c.CancelUser {
		case "BUYER":
			trigger = "BUYER"
		case "SELLER":
			trigger = "SELLER"
		}
		return c.CancelReason, trigger, c.CancelUser
	}
	return "", "PLATFORM", ""
}

// Ensure TikTokNormalizer implements OrderNormalizer
var _ canonical.OrderNormalizer = (*TikTokNormalizer)(nil)
