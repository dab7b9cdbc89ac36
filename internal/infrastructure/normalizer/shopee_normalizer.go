package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// ShopeeNormalizer converts raw Shopee orders into the canonical entity set
type ShopeeNormalizer struct {
	logger *zap.Logger
}

// NewShopeeNormalizer creates a Shopee normalizer
func NewShopeeNormalizer(logger *zap.Logger) *ShopeeNormalizer {
	return &ShopeeNormalizer{logger: logger}
}

// Platform returns the platform code this normalizer handles
func (n *ShopeeNormalizer) Platform() canonical.Platform {
	return canonical.PlatformShopee
}

// shopeeLifecycle maps regular Shopee order statuses to the canonical code.
// Refund and cancellation signals are evaluated first and take precedence.
var shopeeLifecycle = map[string]canonical.StatusCode{
	"UNPAID":             canonical.StatusNew,
	"PENDING":            canonical.StatusNew,
	"READY_TO_SHIP":      canonical.StatusPackaging,
	"PROCESSED":          canonical.StatusPackaging,
	"RETRY_SHIP":         canonical.StatusPackaging,
	"SHIPPED":            canonical.StatusShipped,
	"TO_CONFIRM_RECEIVE": canonical.StatusDelivered,
	"COMPLETED":          canonical.StatusCompleted,
	"TO_RETURN":          canonical.StatusReturning,
}

// Normalize converts one raw Shopee order. Orders without an order_sn are
// skipped (nil, nil); malformed JSON is an error the caller counts as failed.
func (n *ShopeeNormalizer) Normalize(raw json.RawMessage) (*canonical.EntitySet, error) {
	var order ShopeeOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("%w: shopee: %v", canonical.ErrMalformedRawOrder, err)
	}
	if order.OrderSN == "" {
		return nil, nil
	}

	orderID := order.OrderSN
	code := n.classifyStatus(&order)
	orderDate := TimeFromEpoch(order.CreateTime)

	var phone, name, province, district string
	if addr := order.RecipientAddress; addr != nil {
		phone = addr.Phone
		name = addr.Name
		province = addr.State
		district = addr.District
	}

	var platformUserID string
	if order.BuyerUserID > 0 {
		platformUserID = strconv.FormatInt(order.BuyerUserID, 10)
	}
	customerID := SynthesizeCustomerID(canonical.PlatformShopee, platformUserID, phone, orderID)

	customer := &canonical.Customer{
		CustomerID:   customerID,
		Platform:     string(canonical.PlatformShopee),
		CustomerName: firstNonEmpty(name, order.BuyerUsername),
		Phone:        NormalizePhoneDigits(phone),
		IsCODUser:    order.COD,
		IsGuest:      platformUserID == "" && NormalizePhoneDigits(phone) == "",
		FirstOrderAt: orderDate,
		LastOrderAt:  orderDate,
	}

	o := &canonical.Order{
		OrderID:    orderID,
		CustomerID: customerID,
		Platform:   string(canonical.PlatformShopee),
		SellerName: order.ShopName,
		OrderDate:  orderDate,
	}
	if order.ShopID > 0 {
		o.SellerID = strconv.FormatInt(order.ShopID, 10)
	}

	net := decimal.NewFromInt(order.TotalAmount)
	discount := decimal.NewFromInt(order.VoucherFromSeller + order.VoucherFromPlatform)
	buyerFee := decimal.NewFromInt(order.BuyerPaidShippingFee)
	applyFinancials(o, net, discount, buyerFee, order.COD, order.AdsID)
	o.SellerDiscount = decimal.NewFromInt(order.VoucherFromSeller)
	o.PlatformDiscount = decimal.NewFromInt(order.VoucherFromPlatform)
	if order.ReturnRequest != nil && order.ReturnRequest.Status == ShopeeReturnStatusRefundPaid {
		o.RefundAmount = decimal.NewFromInt(order.ReturnRequest.RefundAmount)
	}
	applyStatus(o, code)

	items, products := n.normalizeItems(&order)

	reason, triggeredBy, actor := shopeeTransitionMeta(&order)
	subStatusID := ""
	if order.ReturnRequest != nil {
		subStatusID = "SP_RET_" + order.ReturnRequest.Status
	}
	statuses, details := buildStatusEntities(
		canonical.PlatformShopee, orderID, order.OrderStatus,
		reason, triggeredBy, actor, subStatusID, "",
		code, TimeFromEpoch(order.UpdateTime),
	)

	return &canonical.EntitySet{
		Customer:       customer,
		Order:          o,
		Items:          items,
		Products:       products,
		Geography:      ClassifyGeography(orderID, province, district),
		Payment:        ClassifyPayment(orderID, order.PaymentMethod, order.COD),
		Shipping:       ClassifyShipping(orderID, order.ShippingCarrier, order.TrackingNumber, buyerFee, decimal.NewFromInt(order.ActualShippingFee)),
		ProcessingDate: DecomposeDate(orderID, orderDate),
		Statuses:       statuses,
		StatusDetails:  details,
	}, nil
}

// classifyStatus applies the three-tier priority: completed refund/return
// signals, then cancellation (RETURNED when pickup already happened), then
// the regular lifecycle table.
func (n *ShopeeNormalizer) classifyStatus(order *ShopeeOrder) canonical.StatusCode {
	if ret := order.ReturnRequest; ret != nil {
		switch ret.Status {
		case ShopeeReturnStatusRefundPaid:
			switch ret.ReturnSolution {
			case ShopeeSolutionRefundOnly:
				return canonical.StatusRefunded
			case ShopeeSolutionReplacement:
				return canonical.StatusReplacement
			default:
				return canonical.StatusReturnAndRefunded
			}
		case ShopeeReturnStatusRequested, ShopeeReturnStatusAccepted, ShopeeReturnStatusJudging:
			return canonical.StatusReturning
		}
		// CLOSED / CANCELLED returns fall through to the regular lifecycle
	}

	if order.OrderStatus == "CANCELLED" || order.OrderStatus == "IN_CANCEL" {
		if order.PickupDoneTime > 0 {
			return canonical.StatusReturned
		}
		return canonical.StatusCanceled
	}

	if code, ok := shopeeLifecycle[order.OrderStatus]; ok {
		return code
	}
	n.logger.Warn("Unmapped Shopee order status, defaulting to NEW",
		zap.String("order_sn", order.OrderSN),
		zap.String("order_status", order.OrderStatus),
	)
	return canonical.StatusNew
}

// normalizeItems builds the line items and the catalog rows they reference
func (n *ShopeeNormalizer) normalizeItems(order *ShopeeOrder) ([]canonical.OrderItem, []canonical.Product) {
	items := make([]canonical.OrderItem, 0, len(order.ItemList))
	products := make([]canonical.Product, 0, len(order.ItemList))

	for i, it := range order.ItemList {
		lineID := strconv.FormatInt(it.ItemID, 10)
		if it.ModelID > 0 {
			lineID += "_" + strconv.FormatInt(it.ModelID, 10)
		}
		sku := SynthesizeSKU(firstNonEmpty(it.ModelSKU, it.ItemSKU), lineID)
		platformProductID := strconv.FormatInt(it.ItemID, 10)

		unit := decimal.NewFromInt(it.ModelDiscountedPrice)
		original := decimal.NewFromInt(it.ModelOriginalPrice)
		qty := it.ModelQuantityPurchased
		itemDiscount := decimal.Zero
		if original.GreaterThan(unit) {
			itemDiscount = original.Sub(unit).Mul(decimal.NewFromInt(int64(qty)))
		}

		items = append(items, canonical.OrderItem{
			OrderID:           order.OrderSN,
			SKU:               sku,
			PlatformProductID: platformProductID,
			ItemSeq:           i + 1,
			ProductName:       it.ItemName,
			Quantity:          qty,
			UnitPrice:         unit,
			OriginalPrice:     original,
			ItemDiscount:      itemDiscount,
			LineTotal:         unit.Mul(decimal.NewFromInt(int64(qty))),
		})
		products = append(products, canonical.Product{
			SKU:               sku,
			PlatformProductID: platformProductID,
			Platform:          string(canonical.PlatformShopee),
			ProductName:       it.ItemName,
			Brand:             it.Brand,
			Category:          it.CategoryName,
			PriceMin:          unit,
			PriceMax:          original,
			ImageURL:          it.ImageURL,
		})
	}
	return items, products
}

// shopeeTransitionMeta derives reason/trigger/actor for the status snapshot
func shopeeTransitionMeta(order *ShopeeOrder) (reason, triggeredBy, actor string) {
	if ret := order.ReturnRequest; ret != nil && ret.Reason != "" {
		return ret.Reason, "BUYER", "buyer"
	}
	if order.CancelReason != "" {
		trigger := "SYSTEM"
		switch order.CancelBy {
		case "buyer":
			trigger = "BUYER"
		case "seller":
			trigger = "SELLER"
		}
		return order.CancelReason, trigger, order.CancelBy
	}
	return "", "PLATFORM", ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Ensure ShopeeNormalizer implements OrderNormalizer
var _ canonical.OrderNormalizer = (*ShopeeNormalizer)(nil)
