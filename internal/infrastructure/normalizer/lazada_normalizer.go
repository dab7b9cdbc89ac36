package normalizer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// LazadaNormalizer converts raw Lazada orders into the canonical entity set
type LazadaNormalizer struct {
	logger *zap.Logger
}

// NewLazadaNormalizer creates a Lazada normalizer
func NewLazadaNormalizer(logger *zap.Logger) *LazadaNormalizer {
	return &LazadaNormalizer{logger: logger}
}

// Platform returns the platform code this normalizer handles
func (n *LazadaNormalizer) Platform() canonical.Platform {
	return canonical.PlatformLazada
}

// lazadaLifecycle maps the primary Lazada order status to the canonical code
var lazadaLifecycle = map[string]canonical.StatusCode{
	"unpaid":        canonical.StatusNew,
	"pending":       canonical.StatusConfirmed,
	"packed":        canonical.StatusPackaging,
	"repacked":      canonical.StatusPackaging,
	"ready_to_ship": canonical.StatusPackaging,
	"shipped":       canonical.StatusShipped,
	"delivered":     canonical.StatusDelivered,
	"confirmed":     canonical.StatusCompleted,
	"failed":        canonical.StatusReturned, // delivery failed, goods on the way back
}

// Normalize converts one raw Lazada order. The required-field gate needs both
// an order number and the nested item detail; either missing means skipped.
func (n *LazadaNormalizer) Normalize(raw json.RawMessage) (*canonical.EntitySet, error) {
	var envelope LazadaRawOrder
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: lazada: %v", canonical.ErrMalformedRawOrder, err)
	}
	order := &envelope.Order
	if order.OrderNumber == "" || len(envelope.Items) == 0 {
		return nil, nil
	}

	orderID := order.OrderNumber
	code := n.classifyStatus(order, envelope.Items)

	orderDate, ok := ParseTime(order.CreatedAt)
	if !ok && order.CreatedAt != "" {
		LogUnparsable(n.logger, "created_at", order.CreatedAt)
	}

	var phone, province, district string
	name := strings.TrimSpace(order.CustomerFirstName + " " + order.CustomerLastName)
	if addr := order.AddressShipping; addr != nil {
		phone = addr.Phone
		province = addr.Address3
		district = addr.Address4
		if name == "" {
			name = strings.TrimSpace(addr.FirstName + " " + addr.LastName)
		}
	}

	// Lazada exposes no stable buyer id; identity falls back to the phone
	customerID := SynthesizeCustomerID(canonical.PlatformLazada, "", phone, orderID)
	isCOD := strings.EqualFold(order.PaymentMethod, "COD") ||
		strings.Contains(strings.ToLower(order.PaymentMethod), "cash")

	customer := &canonical.Customer{
		CustomerID:   customerID,
		Platform:     string(canonical.PlatformLazada),
		CustomerName: name,
		Phone:        NormalizePhoneDigits(phone),
		IsCODUser:    isCOD,
		IsGuest:      NormalizePhoneDigits(phone) == "",
		FirstOrderAt: orderDate,
		LastOrderAt:  orderDate,
	}

	o := &canonical.Order{
		OrderID:    orderID,
		CustomerID: customerID,
		Platform:   string(canonical.PlatformLazada),
		OrderDate:  orderDate,
	}

	items, products, itemsTotal, refundTotal := n.normalizeItems(orderID, envelope.Items)

	net := lazadaAmount(order.Price)
	if net.IsZero() {
		net = itemsTotal
	}
	sellerVoucher := lazadaAmount(order.VoucherSeller)
	platformVoucher := lazadaAmount(order.VoucherPlatform)
	discount := sellerVoucher.Add(platformVoucher)
	shippingFee := lazadaAmount(order.ShippingFee)

	// Lazada carries no ad attribution on the order API; revenue is organic
	applyFinancials(o, net, discount, shippingFee, isCOD, "")
	o.SellerDiscount = sellerVoucher
	o.PlatformDiscount = platformVoucher
	o.RefundAmount = refundTotal
	applyStatus(o, code)

	primary := lazadaPrimaryStatus(order.Statuses)
	reason, triggeredBy, actor := lazadaTransitionMeta(envelope.Items)
	subStatusID := ""
	if rs := lazadaReturnStatus(envelope.Items); rs != "" {
		subStatusID = "LZ_RET_" + rs
	}
	carrier, tracking := lazadaShipment(envelope.Items)
	partnerStatusID := ""
	if carrier != "" {
		partnerStatusID = "LZ_3PL_" + strings.ToUpper(strings.ReplaceAll(carrier, " ", "_"))
	}

	updatedAt, ok := ParseTime(order.UpdatedAt)
	if !ok && order.UpdatedAt != "" {
		LogUnparsable(n.logger, "updated_at", order.UpdatedAt)
	}
	statuses, details := buildStatusEntities(
		canonical.PlatformLazada, orderID, primary,
		reason, triggeredBy, actor, subStatusID, partnerStatusID,
		code, updatedAt,
	)

	return &canonical.EntitySet{
		Customer:       customer,
		Order:          o,
		Items:          items,
		Products:       products,
		Geography:      ClassifyGeography(orderID, province, district),
		Payment:        ClassifyPayment(orderID, order.PaymentMethod, isCOD),
		Shipping:       ClassifyShipping(orderID, carrier, tracking, shippingFee, shippingFee),
		ProcessingDate: DecomposeDate(orderID, orderDate),
		Statuses:       statuses,
		StatusDetails:  details,
	}, nil
}

// classifyStatus applies the shared three-tier priority using Lazada's
// item-level return resolution fields.
func (n *LazadaNormalizer) classifyStatus(order *LazadaOrder, items []LazadaOrderItem) canonical.StatusCode {
	for _, it := range items {
		switch it.ReturnStatus {
		case LazadaReturnedRefundIssued:
			return canonical.StatusReturnAndRefunded
		case LazadaRefundIssued:
			return canonical.StatusRefunded
		case LazadaReplacementIssued:
			return canonical.StatusReplacement
		case LazadaReturnRequested, LazadaReturnApproved:
			return canonical.StatusReturning
		}
	}

	primary := lazadaPrimaryStatus(order.Statuses)
	if primary == "canceled" || primary == "cancelled" {
		if lazadaPickupHappened(order.Statuses) {
			return canonical.StatusReturned
		}
		return canonical.StatusCanceled
	}

	if code, ok := lazadaLifecycle[primary]; ok {
		return code
	}
	n.logger.Warn("Unmapped Lazada order status, defaulting to NEW",
		zap.String("order_number", order.OrderNumber),
		zap.String("status", primary),
	)
	return canonical.StatusNew
}

// lazadaPrimaryStatus returns the most recent status, "" when history is empty
func lazadaPrimaryStatus(statuses []string) string {
	if len(statuses) == 0 {
		return ""
	}
	return strings.ToLower(statuses[0])
}

// lazadaPickupHappened reports whether a fulfillment event exists anywhere in
// the status history. Cancellation after pickup means goods come back.
func lazadaPickupHappened(statuses []string) bool {
	for _, s := range statuses {
		switch strings.ToLower(s) {
		case "shipped", "delivered", "failed":
			return true
		}
	}
	return false
}

// normalizeItems builds line items, catalog rows and accumulates totals.
// Lazada emits unit-level rows; rows sharing sku+product are collapsed with
// summed quantity so the composite key stays unique.
func (n *LazadaNormalizer) normalizeItems(orderID string, rawItems []LazadaOrderItem) ([]canonical.OrderItem, []canonical.Product, decimal.Decimal, decimal.Decimal) {
	type lineKey struct{ sku, productID string }
	index := make(map[lineKey]int)
	items := make([]canonical.OrderItem, 0, len(rawItems))
	products := make([]canonical.Product, 0, len(rawItems))

	itemsTotal := decimal.Zero
	refundTotal := decimal.Zero

	for _, it := range rawItems {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		sku := SynthesizeSKU(it.ShopSKU, strconv.FormatInt(it.OrderItemID, 10))
		productID := it.SKU
		if productID == "" && it.ProductID > 0 {
			productID = strconv.FormatInt(it.ProductID, 10)
		}

		unit := lazadaAmount(it.PaidPrice)
		original := lazadaAmount(it.ItemPrice)
		lineTotal := unit.Mul(decimal.NewFromInt(int64(qty)))
		itemsTotal = itemsTotal.Add(lineTotal)
		refundTotal = refundTotal.Add(lazadaAmount(it.RefundAmount))

		key := lineKey{sku: sku, productID: productID}
		if idx, ok := index[key]; ok {
			items[idx].Quantity += qty
			items[idx].LineTotal = items[idx].LineTotal.Add(lineTotal)
			items[idx].ItemDiscount = items[idx].ItemDiscount.Add(lazadaAmount(it.VoucherAmount))
			continue
		}

		index[key] = len(items)
		items = append(items, canonical.OrderItem{
			OrderID:           orderID,
			SKU:               sku,
			PlatformProductID: productID,
			ItemSeq:           len(items) + 1,
			ProductName:       it.Name,
			Quantity:          qty,
			UnitPrice:         unit,
			OriginalPrice:     original,
			ItemDiscount:      lazadaAmount(it.VoucherAmount),
			LineTotal:         lineTotal,
		})
		products = append(products, canonical.Product{
			SKU:               sku,
			PlatformProductID: productID,
			Platform:          string(canonical.PlatformLazada),
			ProductName:       it.Name,
			PriceMin:          unit,
			PriceMax:          original,
			ImageURL:          it.ProductMainImage,
		})
	}
	return items, products, itemsTotal, refundTotal
}

// lazadaTransitionMeta derives reason/trigger/actor from the item detail
func lazadaTransitionMeta(items []LazadaOrderItem) (reason, triggeredBy, actor string) {
	for _, it := range items {
		if it.Reason != "" {
			r := it.Reason
			if it.ReasonDetail != "" {
				r = r + ": " + it.ReasonDetail
			}
			return r, "BUYER", "buyer"
		}
	}
	return "", "PLATFORM", ""
}

// lazadaReturnStatus returns the first non-empty item return status
func lazadaReturnStatus(items []LazadaOrderItem) string {
	for _, it := range items {
		if it.ReturnStatus != "" {
			return it.ReturnStatus
		}
	}
	return ""
}

// lazadaShipment returns the first carrier and tracking code observed
func lazadaShipment(items []LazadaOrderItem) (carrier, tracking string) {
	for _, it := range items {
		if carrier == "" {
			carrier = it.ShipmentProvider
		}
		if tracking == "" {
			tracking = it.TrackingCode
		}
		if carrier != "" && tracking != "" {
			break
		}
	}
	return carrier, tracking
}

// lazadaAmount parses a Lazada decimal string, zero on failure. Lazada is
// known to send "", "0.00" and occasionally junk for absent amounts.
func lazadaAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Ensure LazadaNormalizer implements OrderNormalizer
var _ canonical.OrderNormalizer = (*LazadaNormalizer)(nil)
