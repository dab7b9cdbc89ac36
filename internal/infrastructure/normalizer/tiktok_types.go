package normalizer

// ---------------------------------------------------------------------------
// TikTok Shop raw order payload
// ---------------------------------------------------------------------------

// TikTok Shop reports order status as a numeric code
const (
	TikTokStatusCancelled        = -1
	TikTokStatusUnpaid           = 0
	TikTokStatusAwaitingShipment = 1
	TikTokStatusAwaitingCollect  = 2
	TikTokStatusInTransit        = 3
	TikTokStatusDelivered        = 4
	TikTokStatusCompleted        = 5
)

// TikTok return types
const (
	TikTokReturnTypeRefund       = "REFUND"
	TikTokReturnTypeReturnRefund = "RETURN_AND_REFUND"
	TikTokReturnTypeReplacement  = "REPLACEMENT"
)

// TikTok return statuses
const (
	TikTokReturnPending  = "RETURN_OR_REFUND_REQUEST_PENDING"
	TikTokReturnSuccess  = "RETURN_OR_REFUND_REQUEST_SUCCESS"
	TikTokReturnRejected = "RETURN_OR_REFUND_REQUEST_REJECTED"
)

// TikTokOrder is a raw order as returned by the TikTok Shop client.
// Amounts are integral VND.
type TikTokOrder struct {
	OrderID string `json:"order_id"`
	Status  int    `json:"status"`

	BuyerUID string `json:"buyer_uid,omitempty"`

	RecipientAddress *TikTokAddress `json:"recipient_address,omitempty"`

	// Payment is the settlement summary; absent on very fresh orders, in
	// which case totals are derived from the line items.
	Payment *TikTokPayment `json:"payment,omitempty"`

	IsCOD             bool   `json:"is_cod,omitempty"`
	PaymentMethodName string `json:"payment_method_name,omitempty"`

	ShippingProvider string `json:"shipping_provider,omitempty"`
	TrackingNumber   string `json:"tracking_number,omitempty"`

	SellerID   string `json:"seller_id,omitempty"`
	SellerName string `json:"seller_name,omitempty"`

	// CampaignID is set when the order is attributed to a promoted video/ad
	CampaignID string `json:"campaign_id,omitempty"`

	// Timestamps (epoch seconds)
	CreateTime     int64 `json:"create_time"`
	UpdateTime     int64 `json:"update_time,omitempty"`
	CollectionTime int64 `json:"collection_time,omitempty"` // carrier pickup

	Items []TikTokOrderItem `json:"items,omitempty"`

	Cancellation *TikTokCancellation `json:"cancellation,omitempty"`
	ReturnInfo   *TikTokReturnInfo   `json:"return_info,omitempty"`
}

// TikTokAddress is the recipient block
type TikTokAddress struct {
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Province string `json:"province,omitempty"`
	District string `json:"district,omitempty"`
	Detail   string `json:"detail,omitempty"`
	ZipCode  string `json:"zip_code,omitempty"`
}

// TikTokPayment is the order settlement summary
type TikTokPayment struct {
	SubTotal         int64 `json:"sub_total"` // post-discount item total
	ShippingFee      int64 `json:"shipping_fee"`
	SellerDiscount   int64 `json:"seller_discount"`
	PlatformDiscount int64 `json:"platform_discount"`
	TotalAmount      int64 `json:"total_amount"`
}

// TikTokOrderItem is one line of a TikTok order
type TikTokOrderItem struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id,omitempty"`
	ProductName   string `json:"product_name,omitempty"`
	SKUID         string `json:"sku_id,omitempty"`
	SellerSKU     string `json:"seller_sku,omitempty"`
	SKUImage      string `json:"sku_image,omitempty"`
	SalePrice     int64  `json:"sale_price"`
	OriginalPrice int64  `json:"original_price,omitempty"`
	Quantity      int    `json:"quantity"`
}

// TikTokCancellation describes who cancelled and why
type TikTokCancellation struct {
	CancelReason string `json:"cancel_reason,omitempty"`
	CancelUser   string `json:"cancel_user,omitempty"` // BUYER / SELLER / SYSTEM
}

// TikTokReturnInfo is the return/refund resolution attached to an order
type TikTokReturnInfo struct {
	ReturnType   string `json:"return_type"`
	ReturnStatus string `json:"return_status"`
	RefundTotal  int64  `json:"refund_total,omitempty"`
	ReturnReason string `json:"return_reason,omitempty"`
}
