package normalizer

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/domain/canonical"
)

func newLazadaNormalizer() *LazadaNormalizer {
	return NewLazadaNormalizer(zap.NewNop())
}

func lazadaRaw(t *testing.T, env LazadaRawOrder) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	return raw
}

func TestLazadaNormalize_DeliveredOrder(t *testing.T) {
	n := newLazadaNormalizer()

	set, err := n.Normalize(lazadaRaw(t, LazadaRawOrder{
		Order: LazadaOrder{
			OrderID:           4001,
			OrderNumber:       "LZ4001",
			CustomerFirstName: "Trần",
			CustomerLastName:  "Thị B",
			Statuses:          []string{"delivered", "shipped", "pending"},
			CreatedAt:         "2025-08-15 09:30:00",
			UpdatedAt:         "2025-08-18 12:00:00",
			Price:             "350000.00",
			VoucherSeller:     "30000.00",
			VoucherPlatform:   "20000.00",
			ShippingFee:       "25000.00",
			PaymentMethod:     "MoMo Wallet",
			AddressShipping: &LazadaAddress{
				Phone:    "0912345678",
				Address3: "Đà Nẵng",
				Address4: "Hải Châu",
			},
		},
		Items: []LazadaOrderItem{
			{OrderItemID: 1, ProductID: 88, Name: "Blender", ShopSKU: "BLD-01", SKU: "LZSKU88", PaidPrice: "350000.00", ItemPrice: "400000.00", ShipmentProvider: "LEX VN", TrackingCode: "LEX123"},
		},
	}))
	require.NoError(t, err)
	require.NotNil(t, set)

	// no stable buyer id on Lazada, so identity comes from the phone
	assert.Equal(t, "LZ_P0912345678", set.Customer.CustomerID)
	assert.Equal(t, "Trần Thị B", set.Customer.CustomerName)
	assert.False(t, set.Customer.IsGuest)

	o := set.Order
	assert.Equal(t, "LZ4001", o.OrderID)
	assert.Equal(t, int(canonical.StatusDelivered), o.StatusCode)
	assert.True(t, o.IsDelivered)
	assert.True(t, o.NetRevenue.Equal(decimal.NewFromInt(350000)))
	assert.True(t, o.GrossRevenue.Equal(decimal.NewFromInt(400000)))
	assert.True(t, o.SellerDiscount.Equal(decimal.NewFromInt(30000)))
	assert.True(t, o.PlatformDiscount.Equal(decimal.NewFromInt(20000)))

	// no ad attribution on the Lazada order API
	assert.Empty(t, o.AdAttributionID)
	assert.True(t, o.AdRevenue.IsZero())
	assert.True(t, o.OrganicRevenue.Equal(decimal.NewFromInt(350000)))

	require.Len(t, set.Items, 1)
	assert.Equal(t, "BLD-01", set.Items[0].SKU)
	assert.Equal(t, "LZSKU88", set.Items[0].PlatformProductID)
	assert.Equal(t, 1, set.Items[0].Quantity, "missing quantity defaults to one unit")

	assert.Equal(t, "CENTRAL", set.Geography.Region)
	assert.True(t, set.Geography.IsMetro)
	assert.Equal(t, "E_WALLET", set.Payment.PaymentCategory)
	assert.Equal(t, "MoMo", set.Payment.PaymentProvider)
	assert.Equal(t, "STANDARD", set.Shipping.ServiceType)
	assert.Equal(t, "LEX123", set.Shipping.TrackingNumber)

	require.Len(t, set.Statuses, 1)
	assert.Equal(t, "LAZADA_delivered", set.Statuses[0].StatusKey)
	assert.Equal(t, "LZ_3PL_LEX_VN", set.Statuses[0].PartnerStatusID)
}

func TestLazadaNormalize_RequiredFieldGate(t *testing.T) {
	n := newLazadaNormalizer()

	noNumber, err := n.Normalize(lazadaRaw(t, LazadaRawOrder{
		Order: LazadaOrder{Statuses: []string{"pending"}},
		Items: []LazadaOrderItem{{OrderItemID: 1}},
	}))
	assert.NoError(t, err)
	assert.Nil(t, noNumber, "order without a number is skipped")

	noDetail, err := n.Normalize(lazadaRaw(t, LazadaRawOrder{
		Order: LazadaOrder{OrderNumber: "LZ1", Statuses: []string{"pending"}},
	}))
	assert.NoError(t, err)
	assert.Nil(t, noDetail, "order whose item detail fetch failed is skipped")
}

func TestLazadaNormalize_MalformedJSON(t *testing.T) {
	n := newLazadaNormalizer()

	_, err := n.Normalize(json.RawMessage(`[1,2,3`))
	assert.ErrorIs(t, err, canonical.ErrMalformedRawOrder)
}

func TestLazadaNormalize_NetFallsBackToItemTotal(t *testing.T) {
	n := newLazadaNormalizer()

	set, err := n.Normalize(lazadaRaw(t, LazadaRawOrder{
		Order: LazadaOrder{OrderNumber: "LZ2", Statuses: []string{"pending"}},
		Items: []LazadaOrderItem{
			{OrderItemID: 1, ShopSKU: "A", PaidPrice: "100000"},
			{OrderItemID: 2, ShopSKU: "B", PaidPrice: "50000"},
		},
	}))
	require.NoError(t, err)
	require.NotNil(t, set)
	assert.True(t, set.Order.NetRevenue.Equal(decimal.NewFromInt(150000)))
}

func TestLazadaNormalize_CollapsesUnitRows(t *testing.T) {
	n := newLazadaNormalizer()

	// Lazada emits one row per unit; same sku+product must collapse
	set, err := n.Normalize(lazadaRaw(t, LazadaRawOrder{
		Order: LazadaOrder{OrderNumber: "LZ3", Statuses: []string{"pending"}},
		Items: []LazadaOrderItem{
			{OrderItemID: 1, ProductID: 88, ShopSKU: "TOY-01", PaidPrice: "90000", VoucherAmount: "5000"},
			{OrderItemID: 2, ProductID: 88, ShopSKU: "TOY-01", PaidPrice: "90000", VoucherAmount: "5000"},
			{OrderItemID: 3, ProductID: 99, ShopSKU: "TOY-02", PaidPrice: "40000"},
		},
	}))
	require.NoError(t, err)
	require.NotNil(t, set)

	require.Len(t, set.Items, 2)
	assert.Equal(t, 2, set.Items[0].Quantity)
	assert.True(t, set.Items[0].LineTotal.Equal(decimal.NewFromInt(180000)))
	assert.True(t, set.Items[0].ItemDiscount.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 1, set.Items[1].Quantity)
	require.Len(t, set.Products, 2)
}

func TestLazadaClassifyStatus(t *testing.T) {
	n := newLazadaNormalizer()

	tests := []struct {
		name     string
		statuses []string
		items    []LazadaOrderItem
		want     canonical.StatusCode
	}{
		{"lifecycle shipped", []string{"shipped", "pending"}, nil, canonical.StatusShipped},
		{"ready to ship", []string{"ready_to_ship"}, nil, canonical.StatusPackaging},
		{"confirmed means completed", []string{"confirmed", "delivered"}, nil, canonical.StatusCompleted},
		{"delivery failed returns goods", []string{"failed", "shipped"}, nil, canonical.StatusReturned},
		{"cancel before pickup", []string{"canceled", "pending"}, nil, canonical.StatusCanceled},
		{"cancel after pickup", []string{"canceled", "shipped", "pending"}, nil, canonical.StatusReturned},
		{"refund issued outranks lifecycle", []string{"delivered"}, []LazadaOrderItem{{ReturnStatus: LazadaRefundIssued}}, canonical.StatusRefunded},
		{"returned and refunded", []string{"delivered"}, []LazadaOrderItem{{ReturnStatus: LazadaReturnedRefundIssued}}, canonical.StatusReturnAndRefunded},
		{"replacement issued", []string{"delivered"}, []LazadaOrderItem{{ReturnStatus: LazadaReplacementIssued}}, canonical.StatusReplacement},
		{"return in flight", []string{"delivered"}, []LazadaOrderItem{{ReturnStatus: LazadaReturnApproved}}, canonical.StatusReturning},
		{"unmapped defaults to new", []string{"weird_status"}, nil, canonical.StatusNew},
		{"empty history defaults to new", nil, nil, canonical.StatusNew},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &LazadaOrder{OrderNumber: "LZ9", Statuses: tt.statuses}
			assert.Equal(t, tt.want, n.classifyStatus(order, tt.items))
		})
	}
}

func TestLazadaNormalize_RefundTotalFromItems(t *testing.T) {
	n := newLazadaNormalizer()

	set, err := n.Normalize(lazadaRaw(t, LazadaRawOrder{
		Order: LazadaOrder{OrderNumber: "LZ5", Statuses: []string{"delivered"}},
		Items: []LazadaOrderItem{
			{OrderItemID: 1, ShopSKU: "A", PaidPrice: "100000", ReturnStatus: LazadaRefundIssued, RefundAmount: "100000", Reason: "defective", ReasonDetail: "screen cracked"},
			{OrderItemID: 2, ShopSKU: "B", PaidPrice: "60000"},
		},
	}))
	require.NoError(t, err)
	require.NotNil(t, set)

	assert.Equal(t, int(canonical.StatusRefunded), set.Order.StatusCode)
	assert.True(t, set.Order.RefundAmount.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "defective: screen cracked", set.Statuses[0].Reason)
	assert.Equal(t, "LZ_RET_REFUND_ISSUED", set.Statuses[0].SubStatusID)
}

func TestLazadaAmount(t *testing.T) {
	assert.True(t, lazadaAmount("123.45").Equal(decimal.NewFromFloat(123.45)))
	assert.True(t, lazadaAmount(" 10 ").Equal(decimal.NewFromInt(10)))
	assert.True(t, lazadaAmount("").IsZero())
	assert.True(t, lazadaAmount("n/a").IsZero())
}
