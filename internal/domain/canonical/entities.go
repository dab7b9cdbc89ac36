package canonical

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical entities are the shared relational shape every platform order is
// normalized into. All keys are deterministic functions of the raw input so
// repeated passes upsert rather than duplicate. Optional strings default to
// "", optional numbers to 0, optional booleans to false - never null.

// ---------------------------------------------------------------------------
// Customer
// ---------------------------------------------------------------------------

// Customer is the buyer identity with batch-level lifetime aggregates.
// Key: customer_id.
type Customer struct {
	CustomerID    string          `gorm:"column:customer_id;type:varchar(100);primaryKey"`
	Platform      string          `gorm:"column:platform;type:varchar(20);not null"`
	CustomerName  string          `gorm:"column:customer_name;type:varchar(255)"`
	Phone         string          `gorm:"column:phone;type:varchar(30)"`
	Email         string          `gorm:"column:email;type:varchar(255)"`
	TotalOrders   int             `gorm:"column:total_orders;not null;default:0"`
	TotalSpent    decimal.Decimal `gorm:"column:total_spent;type:numeric(18,2);not null;default:0"`
	AvgOrderValue decimal.Decimal `gorm:"column:avg_order_value;type:numeric(18,2);not null;default:0"`
	IsCODUser     bool            `gorm:"column:is_cod_user;not null;default:false"`
	IsGuest       bool            `gorm:"column:is_guest;not null;default:false"`
	FirstOrderAt  time.Time       `gorm:"column:first_order_at"`
	LastOrderAt   time.Time       `gorm:"column:last_order_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string { return "customers" }

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

// Order is the order-level financial and fulfillment snapshot.
// Key: order_id. order_id is the join point for every order-scoped entity.
type Order struct {
	OrderID    string    `gorm:"column:order_id;type:varchar(100);primaryKey"`
	CustomerID string    `gorm:"column:customer_id;type:varchar(100);not null"`
	Platform   string    `gorm:"column:platform;type:varchar(20);not null"`
	SellerID   string    `gorm:"column:seller_id;type:varchar(100)"`
	SellerName string    `gorm:"column:seller_name;type:varchar(255)"`
	OrderDate  time.Time `gorm:"column:order_date"`

	GrossRevenue      decimal.Decimal `gorm:"column:gross_revenue;type:numeric(18,2);not null;default:0"`
	NetRevenue        decimal.Decimal `gorm:"column:net_revenue;type:numeric(18,2);not null;default:0"`
	PlatformFee       decimal.Decimal `gorm:"column:platform_fee;type:numeric(18,2);not null;default:0"`
	ShippingFee       decimal.Decimal `gorm:"column:shipping_fee;type:numeric(18,2);not null;default:0"`
	DiscountAmount    decimal.Decimal `gorm:"column:discount_amount;type:numeric(18,2);not null;default:0"`
	SellerDiscount    decimal.Decimal `gorm:"column:seller_discount;type:numeric(18,2);not null;default:0"`
	PlatformDiscount  decimal.Decimal `gorm:"column:platform_discount;type:numeric(18,2);not null;default:0"`
	CODAmount         decimal.Decimal `gorm:"column:cod_amount;type:numeric(18,2);not null;default:0"`
	RefundAmount      decimal.Decimal `gorm:"column:refund_amount;type:numeric(18,2);not null;default:0"`
	AdRevenue         decimal.Decimal `gorm:"column:ad_revenue;type:numeric(18,2);not null;default:0"`
	OrganicRevenue    decimal.Decimal `gorm:"column:organic_revenue;type:numeric(18,2);not null;default:0"`
	ShippingCostRatio decimal.Decimal `gorm:"column:shipping_cost_ratio;type:numeric(9,4);not null;default:0"`
	AdAttributionID   string          `gorm:"column:ad_attribution_id;type:varchar(100)"`

	StatusCode  int    `gorm:"column:status_code;not null;default:1"`
	StatusName  string `gorm:"column:status_name;type:varchar(30)"`
	IsDelivered bool   `gorm:"column:is_delivered;not null;default:false"`
	IsCancelled bool   `gorm:"column:is_cancelled;not null;default:false"`
	IsReturned  bool   `gorm:"column:is_returned;not null;default:false"`
	IsCOD       bool   `gorm:"column:is_cod;not null;default:false"`
	HasRefund   bool   `gorm:"column:has_refund;not null;default:false"`
	HasExchange bool   `gorm:"column:has_exchange;not null;default:false"`

	// Denormalized customer-lifetime snapshot at normalization time
	CustomerOrderCount int             `gorm:"column:customer_order_count;not null;default:0"`
	CustomerTotalSpent decimal.Decimal `gorm:"column:customer_total_spent;type:numeric(18,2);not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Order) TableName() string { return "orders" }

// ---------------------------------------------------------------------------
// OrderItem
// ---------------------------------------------------------------------------

// OrderItem is a line item. Composite key: order_id + sku + platform_product_id.
type OrderItem struct {
	OrderID           string          `gorm:"column:order_id;type:varchar(100);primaryKey"`
	SKU               string          `gorm:"column:sku;type:varchar(100);primaryKey"`
	PlatformProductID string          `gorm:"column:platform_product_id;type:varchar(100);primaryKey"`
	ItemSeq           int             `gorm:"column:item_seq;not null;default:0"`
	ProductName       string          `gorm:"column:product_name;type:varchar(500)"`
	Quantity          int             `gorm:"column:quantity;not null;default:0"`
	UnitPrice         decimal.Decimal `gorm:"column:unit_price;type:numeric(18,2);not null;default:0"`
	OriginalPrice     decimal.Decimal `gorm:"column:original_price;type:numeric(18,2);not null;default:0"`
	ItemDiscount      decimal.Decimal `gorm:"column:item_discount;type:numeric(18,2);not null;default:0"`
	LineTotal         decimal.Decimal `gorm:"column:line_total;type:numeric(18,2);not null;default:0"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string { return "order_items" }

// ---------------------------------------------------------------------------
// Product
// ---------------------------------------------------------------------------

// Product is the catalog entry observed on an order.
// Composite key: sku + platform_product_id.
type Product struct {
	SKU               string          `gorm:"column:sku;type:varchar(100);primaryKey"`
	PlatformProductID string          `gorm:"column:platform_product_id;type:varchar(100);primaryKey"`
	Platform          string          `gorm:"column:platform;type:varchar(20);not null"`
	ProductName       string          `gorm:"column:product_name;type:varchar(500)"`
	Brand             string          `gorm:"column:brand;type:varchar(255)"`
	Category          string          `gorm:"column:category;type:varchar(255)"`
	PriceMin          decimal.Decimal `gorm:"column:price_min;type:numeric(18,2);not null;default:0"`
	PriceMax          decimal.Decimal `gorm:"column:price_max;type:numeric(18,2);not null;default:0"`
	ImageURL          string          `gorm:"column:image_url;type:varchar(1000)"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Product) TableName() string { return "products" }

// ---------------------------------------------------------------------------
// GeographyInfo
// ---------------------------------------------------------------------------

// GeographyInfo classifies the shipping destination. Key: order_id.
type GeographyInfo struct {
	OrderID          string    `gorm:"column:order_id;type:varchar(100);primaryKey"`
	Province         string    `gorm:"column:province;type:varchar(100)"`
	District         string    `gorm:"column:district;type:varchar(100)"`
	Region           string    `gorm:"column:region;type:varchar(20)"`
	IsUrban          bool      `gorm:"column:is_urban;not null;default:false"`
	IsMetro          bool      `gorm:"column:is_metro;not null;default:false"`
	EconomicTier     int       `gorm:"column:economic_tier;not null;default:3"`
	ShippingZone     string    `gorm:"column:shipping_zone;type:varchar(20)"`
	StdDeliveryDays  int       `gorm:"column:std_delivery_days;not null;default:5"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (GeographyInfo) TableName() string { return "geography_info" }

// ---------------------------------------------------------------------------
// PaymentInfo
// ---------------------------------------------------------------------------

// PaymentInfo classifies the payment instrument. Key: order_id.
type PaymentInfo struct {
	OrderID         string    `gorm:"column:order_id;type:varchar(100);primaryKey"`
	PaymentMethod   string    `gorm:"column:payment_method;type:varchar(100)"`
	PaymentCategory string    `gorm:"column:payment_category;type:varchar(30)"`
	PaymentProvider string    `gorm:"column:payment_provider;type:varchar(100)"`
	IsCOD           bool      `gorm:"column:is_cod;not null;default:false"`
	SupportsRefund  bool      `gorm:"column:supports_refund;not null;default:false"`
	RiskLevel       string    `gorm:"column:risk_level;type:varchar(10)"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PaymentInfo) TableName() string { return "payment_info" }

// ---------------------------------------------------------------------------
// ShippingInfo
// ---------------------------------------------------------------------------

// ShippingInfo captures carrier attributes and the fee breakdown. Key: order_id.
type ShippingInfo struct {
	OrderID         string          `gorm:"column:order_id;type:varchar(100);primaryKey"`
	Carrier         string          `gorm:"column:carrier;type:varchar(100)"`
	ServiceType     string          `gorm:"column:service_type;type:varchar(30)"`
	TrackingNumber  string          `gorm:"column:tracking_number;type:varchar(100)"`
	TotalFee        decimal.Decimal `gorm:"column:total_fee;type:numeric(18,2);not null;default:0"`
	BuyerFee        decimal.Decimal `gorm:"column:buyer_fee;type:numeric(18,2);not null;default:0"`
	PlatformSubsidy decimal.Decimal `gorm:"column:platform_subsidy;type:numeric(18,2);not null;default:0"`
	SupportsCOD     bool            `gorm:"column:supports_cod;not null;default:false"`
	HasTracking     bool            `gorm:"column:has_tracking;not null;default:false"`
	IsExpress       bool            `gorm:"column:is_express;not null;default:false"`
	AvgDeliveryDays int             `gorm:"column:avg_delivery_days;not null;default:0"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ShippingInfo) TableName() string { return "shipping_info" }

// ---------------------------------------------------------------------------
// ProcessingDateInfo
// ---------------------------------------------------------------------------

// ProcessingDateInfo is the calendar decomposition of the order date for
// downstream analytics. Key: order_id.
type ProcessingDateInfo struct {
	OrderID       string    `gorm:"column:order_id;type:varchar(100);primaryKey"`
	OrderDate     time.Time `gorm:"column:order_date"`
	DayOfWeek     int       `gorm:"column:day_of_week;not null;default:0"`
	DayName       string    `gorm:"column:day_name;type:varchar(10)"`
	WeekOfYear    int       `gorm:"column:week_of_year;not null;default:0"`
	Month         int       `gorm:"column:month;not null;default:0"`
	Quarter       int       `gorm:"column:quarter;not null;default:0"`
	Year          int       `gorm:"column:year;not null;default:0"`
	FiscalQuarter int       `gorm:"column:fiscal_quarter;not null;default:0"`
	FiscalYear    int       `gorm:"column:fiscal_year;not null;default:0"`
	Season        string    `gorm:"column:season;type:varchar(10)"`
	IsWeekend     bool      `gorm:"column:is_weekend;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ProcessingDateInfo) TableName() string { return "processing_date_info" }

// ---------------------------------------------------------------------------
// Status master vocabulary
// ---------------------------------------------------------------------------

// Status maps a platform status string onto the standardized vocabulary.
// Key: status_key (= platform + "_" + platform status code).
type Status struct {
	StatusKey          string    `gorm:"column:status_key;type:varchar(120);primaryKey"`
	Platform           string    `gorm:"column:platform;type:varchar(20);not null"`
	PlatformStatusCode string    `gorm:"column:platform_status_code;type:varchar(60)"`
	PlatformStatusName string    `gorm:"column:platform_status_name;type:varchar(120)"`
	StandardCode       int       `gorm:"column:standard_code;not null;default:1"`
	StandardName       string    `gorm:"column:standard_name;type:varchar(30)"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (Status) TableName() string { return "statuses" }

// ---------------------------------------------------------------------------
// OrderStatus snapshot
// ---------------------------------------------------------------------------

// OrderStatus is an observed status snapshot with transition metadata.
// Composite key: status_key + order_id + sub_status_id + partner_status_id.
type OrderStatus struct {
	StatusKey       string    `gorm:"column:status_key;type:varchar(120);primaryKey"`
	OrderID         string    `gorm:"column:order_id;type:varchar(100);primaryKey"`
	SubStatusID     string    `gorm:"column:sub_status_id;type:varchar(60);primaryKey"`
	PartnerStatusID string    `gorm:"column:partner_status_id;type:varchar(60);primaryKey"`
	Reason          string    `gorm:"column:reason;type:varchar(500)"`
	TriggeredBy     string    `gorm:"column:triggered_by;type:varchar(30)"`
	Actor           string    `gorm:"column:actor;type:varchar(100)"`
	StatusDate      time.Time `gorm:"column:status_date"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OrderStatus) TableName() string { return "order_statuses" }

// ---------------------------------------------------------------------------
// OrderStatusDetail
// ---------------------------------------------------------------------------

// OrderStatusDetail carries behavioral metadata for an observed status.
// Composite key: status_key + order_id.
type OrderStatusDetail struct {
	StatusKey     string    `gorm:"column:status_key;type:varchar(120);primaryKey"`
	OrderID       string    `gorm:"column:order_id;type:varchar(100);primaryKey"`
	IsActive      bool      `gorm:"column:is_active;not null;default:false"`
	IsCompleted   bool      `gorm:"column:is_completed;not null;default:false"`
	IsRefundable  bool      `gorm:"column:is_refundable;not null;default:false"`
	IsCancellable bool      `gorm:"column:is_cancellable;not null;default:false"`
	SLAHours      int       `gorm:"column:sla_hours;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OrderStatusDetail) TableName() string { return "order_status_details" }

// ---------------------------------------------------------------------------
// Carrier sub-state reference tables
// ---------------------------------------------------------------------------

// PartnerStatus is a reference row for a carrier-reported state. Key: partner_status_id.
type PartnerStatus struct {
	PartnerStatusID string    `gorm:"column:partner_status_id;type:varchar(60);primaryKey"`
	Code            string    `gorm:"column:code;type:varchar(60)"`
	Name            string    `gorm:"column:name;type:varchar(120)"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (PartnerStatus) TableName() string { return "partner_statuses" }

// SubStatus is a reference row for a platform sub-state. Key: sub_status_id.
type SubStatus struct {
	SubStatusID string    `gorm:"column:sub_status_id;type:varchar(60);primaryKey"`
	Code        string    `gorm:"column:code;type:varchar(60)"`
	Name        string    `gorm:"column:name;type:varchar(120)"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName returns the table name for GORM
func (SubStatus) TableName() string { return "sub_statuses" }
