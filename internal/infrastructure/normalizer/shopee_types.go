package normalizer

// ---------------------------------------------------------------------------
// Shopee raw order payload (v2 order.get_order_detail shape)
// ---------------------------------------------------------------------------

// ShopeeOrder is a raw order as returned by the Shopee client.
// Amounts are integral VND.
type ShopeeOrder struct {
	OrderSN     string `json:"order_sn"`
	OrderStatus string `json:"order_status"`
	Region      string `json:"region,omitempty"`

	ShopID   int64  `json:"shop_id,omitempty"`
	ShopName string `json:"shop_name,omitempty"`

	BuyerUserID   int64  `json:"buyer_user_id,omitempty"`
	BuyerUsername string `json:"buyer_username,omitempty"`

	RecipientAddress *ShopeeAddress `json:"recipient_address,omitempty"`

	// Amounts
	TotalAmount          int64 `json:"total_amount"`           // post-discount total
	VoucherFromSeller    int64 `json:"voucher_from_seller"`    // seller voucher
	VoucherFromPlatform  int64 `json:"voucher_from_platform"`  // platform voucher
	ActualShippingFee    int64 `json:"actual_shipping_fee"`    // carrier-billed fee
	BuyerPaidShippingFee int64 `json:"buyer_paid_shipping_fee"`

	COD           bool   `json:"cod"`
	PaymentMethod string `json:"payment_method,omitempty"`

	ShippingCarrier string `json:"shipping_carrier,omitempty"`
	TrackingNumber  string `json:"tracking_number,omitempty"`

	// Timestamps (epoch seconds)
	CreateTime     int64 `json:"create_time"`
	PayTime        int64 `json:"pay_time,omitempty"`
	PickupDoneTime int64 `json:"pickup_done_time,omitempty"`
	UpdateTime     int64 `json:"update_time,omitempty"`

	CancelBy     string `json:"cancel_by,omitempty"`
	CancelReason string `json:"cancel_reason,omitempty"`

	// AdsID is set when the order is attributed to an ad campaign
	AdsID string `json:"ads_id,omitempty"`

	ItemList      []ShopeeOrderItem `json:"item_list,omitempty"`
	ReturnRequest *ShopeeReturn     `json:"return_request,omitempty"`
}

// ShopeeAddress is the recipient block of a Shopee order
type ShopeeAddress struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Town        string `json:"town,omitempty"`
	District    string `json:"district,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"` // province
	Zipcode     string `json:"zipcode,omitempty"`
	FullAddress string `json:"full_address,omitempty"`
}

// ShopeeOrderItem is one line of a Shopee order
type ShopeeOrderItem struct {
	ItemID                 int64  `json:"item_id"`
	ItemName               string `json:"item_name"`
	ItemSKU                string `json:"item_sku,omitempty"`
	ModelID                int64  `json:"model_id,omitempty"`
	ModelName              string `json:"model_name,omitempty"`
	ModelSKU               string `json:"model_sku,omitempty"`
	ModelQuantityPurchased int    `json:"model_quantity_purchased"`
	ModelOriginalPrice     int64  `json:"model_original_price"`
	ModelDiscountedPrice   int64  `json:"model_discounted_price"`
	ImageURL               string `json:"image_url,omitempty"`
	Brand                  string `json:"brand,omitempty"`
	CategoryName           string `json:"category_name,omitempty"`
}

// Shopee return request statuses
const (
	ShopeeReturnStatusRequested  = "REQUESTED"
	ShopeeReturnStatusAccepted   = "ACCEPTED"
	ShopeeReturnStatusJudging    = "JUDGING"
	ShopeeReturnStatusRefundPaid = "REFUND_PAID"
	ShopeeReturnStatusClosed     = "CLOSED"
	ShopeeReturnStatusCancelled  = "CANCELLED"
)

// Shopee return solutions
const (
	ShopeeSolutionReturnRefund = 0 // goods back, money back
	ShopeeSolutionRefundOnly   = 1 // money back only
	ShopeeSolutionReplacement  = 2 // replacement item sent
)

// ShopeeReturn is the return/refund request attached to an order
type ShopeeReturn struct {
	ReturnSN       string `json:"return_sn"`
	Status         string `json:"status"`
	ReturnSolution int    `json:"return_solution"`
	RefundAmount   int64  `json:"refund_amount"`
	Reason         string `json:"reason,omitempty"`
}
