package normalizer

// ---------------------------------------------------------------------------
// Lazada raw order payload (GetOrders + GetOrderItems shapes)
// ---------------------------------------------------------------------------

// LazadaRawOrder is the envelope the Lazada client returns: the order header
// joined with its separately fetched item detail. An order whose item detail
// fetch failed arrives with an empty Items slice and is skipped by the
// required-field gate.
type LazadaRawOrder struct {
	Order LazadaOrder       `json:"order"`
	Items []LazadaOrderItem `json:"order_items"`
}

// LazadaOrder is a raw order header. Lazada reports money as decimal strings.
type LazadaOrder struct {
	OrderID     int64  `json:"order_id"`
	OrderNumber string `json:"order_number"`

	CustomerFirstName string `json:"customer_first_name,omitempty"`
	CustomerLastName  string `json:"customer_last_name,omitempty"`

	// Statuses is the order status history, most recent first
	Statuses []string `json:"statuses"`

	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`

	Price           string `json:"price,omitempty"`            // post-discount total
	VoucherSeller   string `json:"voucher_seller,omitempty"`   // seller voucher
	VoucherPlatform string `json:"voucher_platform,omitempty"` // platform voucher
	ShippingFee     string `json:"shipping_fee,omitempty"`

	PaymentMethod string `json:"payment_method,omitempty"`

	AddressShipping *LazadaAddress `json:"address_shipping,omitempty"`

	ItemsCount int `json:"items_count,omitempty"`
}

// LazadaAddress is the shipping address block
type LazadaAddress struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address1  string `json:"address1,omitempty"`
	Address3  string `json:"address3,omitempty"` // province
	Address4  string `json:"address4,omitempty"` // district
	PostCode  string `json:"post_code,omitempty"`
	Country   string `json:"country,omitempty"`
}

// Lazada return resolution states carried on the item detail
const (
	LazadaReturnRequested      = "RETURN_REQUESTED"
	LazadaReturnApproved       = "RETURN_APPROVED"
	LazadaRefundIssued         = "REFUND_ISSUED"
	LazadaReturnedRefundIssued = "ITEM_RETURNED_REFUND_ISSUED"
	LazadaReplacementIssued    = "REPLACEMENT_ISSUED"
)

// LazadaOrderItem is one unit-level line of a Lazada order (Lazada emits one
// row per unit; Quantity is usually 1 and defaulted to 1 when missing).
type LazadaOrderItem struct {
	OrderItemID int64  `json:"order_item_id"`
	ProductID   int64  `json:"product_id,omitempty"`
	Name        string `json:"name,omitempty"`
	SKU         string `json:"sku,omitempty"`      // platform sku
	ShopSKU     string `json:"shop_sku,omitempty"` // seller sku
	Quantity    int    `json:"quantity,omitempty"`

	PaidPrice     string `json:"paid_price,omitempty"`
	ItemPrice     string `json:"item_price,omitempty"`
	VoucherAmount string `json:"voucher_amount,omitempty"`

	Status       string `json:"status,omitempty"`
	ReturnStatus string `json:"return_status,omitempty"`
	RefundAmount string `json:"refund_amount,omitempty"`
	Reason       string `json:"reason,omitempty"`
	ReasonDetail string `json:"reason_detail,omitempty"`

	ShipmentProvider string `json:"shipment_provider,omitempty"`
	TrackingCode     string `json:"tracking_code,omitempty"`

	ProductMainImage string `json:"product_main_image,omitempty"`
}
