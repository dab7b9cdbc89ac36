package persistence

import (
	"database/sql"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// Repositories bundles one bulk engine per canonical table. All engines share
// the connection pool and the engine options.
type Repositories struct {
	Customers          *BulkEngine[canonical.Customer]
	Orders             *BulkEngine[canonical.Order]
	OrderItems         *BulkEngine[canonical.OrderItem]
	Products           *BulkEngine[canonical.Product]
	Geography          *BulkEngine[canonical.GeographyInfo]
	Payments           *BulkEngine[canonical.PaymentInfo]
	Shipping           *BulkEngine[canonical.ShippingInfo]
	ProcessingDates    *BulkEngine[canonical.ProcessingDateInfo]
	Statuses           *BulkEngine[canonical.Status]
	OrderStatuses      *BulkEngine[canonical.OrderStatus]
	OrderStatusDetails *BulkEngine[canonical.OrderStatusDetail]
	PartnerStatuses    *BulkEngine[canonical.PartnerStatus]
	SubStatuses        *BulkEngine[canonical.SubStatus]
}

// AllModels returns every canonical model, in a dependency-friendly order,
// for schema migration.
func AllModels() []any {
	return []any{
		&canonical.Customer{},
		&canonical.Order{},
		&canonical.OrderItem{},
		&canonical.Product{},
		&canonical.GeographyInfo{},
		&canonical.PaymentInfo{},
		&canonical.ShippingInfo{},
		&canonical.ProcessingDateInfo{},
		&canonical.Status{},
		&canonical.OrderStatus{},
		&canonical.OrderStatusDetail{},
		&canonical.PartnerStatus{},
		&canonical.SubStatus{},
	}
}

// Repositories builds the engine set on this database
func (d *Database) Repositories(opts EngineOptions, logger *zap.Logger) *Repositories {
	return NewRepositories(d.DB, d.SQL, opts, logger)
}

// NewRepositories builds the engine set. sqlDB may be nil to disable the
// staging path on every engine.
func NewRepositories(db *gorm.DB, sqlDB *sql.DB, opts EngineOptions, logger *zap.Logger) *Repositories {
	return &Repositories{
		Customers:          NewBulkEngine(db, sqlDB, customerSpec(), opts, logger),
		Orders:             NewBulkEngine(db, sqlDB, orderSpec(), opts, logger),
		OrderItems:         NewBulkEngine(db, sqlDB, orderItemSpec(), opts, logger),
		Products:           NewBulkEngine(db, sqlDB, productSpec(), opts, logger),
		Geography:          NewBulkEngine(db, sqlDB, geographySpec(), opts, logger),
		Payments:           NewBulkEngine(db, sqlDB, paymentSpec(), opts, logger),
		Shipping:           NewBulkEngine(db, sqlDB, shippingSpec(), opts, logger),
		ProcessingDates:    NewBulkEngine(db, sqlDB, processingDateSpec(), opts, logger),
		Statuses:           NewBulkEngine(db, sqlDB, statusSpec(), opts, logger),
		OrderStatuses:      NewBulkEngine(db, sqlDB, orderStatusSpec(), opts, logger),
		OrderStatusDetails: NewBulkEngine(db, sqlDB, orderStatusDetailSpec(), opts, logger),
		PartnerStatuses:    NewBulkEngine(db, sqlDB, partnerStatusSpec(), opts, logger),
		SubStatuses:        NewBulkEngine(db, sqlDB, subStatusSpec(), opts, logger),
	}
}

func customerSpec() TableSpec[canonical.Customer] {
	return TableSpec[canonical.Customer]{
		Table: "customers",
		Columns: []string{
			"customer_id", "platform", "customer_name", "phone", "email",
			"total_orders", "total_spent", "avg_order_value",
			"is_cod_user", "is_guest", "first_order_at", "last_order_at",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"customer_id"},
		Refreshable: []string{
			"platform", "customer_name", "phone", "email",
			"total_orders", "total_spent", "avg_order_value",
			"is_cod_user", "is_guest", "first_order_at", "last_order_at",
			"updated_at",
		},
		Values: func(c canonical.Customer, now time.Time) []any {
			return []any{
				c.CustomerID, c.Platform, c.CustomerName, c.Phone, c.Email,
				c.TotalOrders, c.TotalSpent, c.AvgOrderValue,
				c.IsCODUser, c.IsGuest, c.FirstOrderAt, c.LastOrderAt,
				now, now,
			}
		},
		Key: func(c canonical.Customer) []any { return []any{c.CustomerID} },
	}
}

func orderSpec() TableSpec[canonical.Order] {
	return TableSpec[canonical.Order]{
		Table: "orders",
		Columns: []string{
			"order_id", "customer_id", "platform", "seller_id", "seller_name", "order_date",
			"gross_revenue", "net_revenue", "platform_fee", "shipping_fee",
			"discount_amount", "seller_discount", "platform_discount",
			"cod_amount", "refund_amount", "ad_revenue", "organic_revenue",
			"shipping_cost_ratio", "ad_attribution_id",
			"status_code", "status_name",
			"is_delivered", "is_cancelled", "is_returned", "is_cod", "has_refund", "has_exchange",
			"customer_order_count", "customer_total_spent",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"order_id"},
		Refreshable: []string{
			"customer_id", "platform", "seller_id", "seller_name", "order_date",
			"gross_revenue", "net_revenue", "platform_fee", "shipping_fee",
			"discount_amount", "seller_discount", "platform_discount",
			"cod_amount", "refund_amount", "ad_revenue", "organic_revenue",
			"shipping_cost_ratio", "ad_attribution_id",
			"status_code", "status_name",
			"is_delivered", "is_cancelled", "is_returned", "is_cod", "has_refund", "has_exchange",
			"customer_order_count", "customer_total_spent",
			"updated_at",
		},
		Values: func(o canonical.Order, now time.Time) []any {
			return []any{
				o.OrderID, o.CustomerID, o.Platform, o.SellerID, o.SellerName, o.OrderDate,
				o.GrossRevenue, o.NetRevenue, o.PlatformFee, o.ShippingFee,
				o.DiscountAmount, o.SellerDiscount, o.PlatformDiscount,
				o.CODAmount, o.RefundAmount, o.AdRevenue, o.OrganicRevenue,
				o.ShippingCostRatio, o.AdAttributionID,
				o.StatusCode, o.StatusName,
				o.IsDelivered, o.IsCancelled, o.IsReturned, o.IsCOD, o.HasRefund, o.HasExchange,
				o.CustomerOrderCount, o.CustomerTotalSpent,
				now, now,
			}
		},
		Key: func(o canonical.Order) []any { return []any{o.OrderID} },
	}
}

func orderItemSpec() TableSpec[canonical.OrderItem] {
	return TableSpec[canonical.OrderItem]{
		Table: "order_items",
		Columns: []string{
			"order_id", "sku", "platform_product_id", "item_seq", "product_name",
			"quantity", "unit_price", "original_price", "item_discount", "line_total",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"order_id", "sku", "platform_product_id"},
		PreDelete:  true,
		Values: func(it canonical.OrderItem, now time.Time) []any {
			return []any{
				it.OrderID, it.SKU, it.PlatformProductID, it.ItemSeq, it.ProductName,
				it.Quantity, it.UnitPrice, it.OriginalPrice, it.ItemDiscount, it.LineTotal,
				now, now,
			}
		},
		Key: func(it canonical.OrderItem) []any {
			return []any{it.OrderID, it.SKU, it.PlatformProductID}
		},
	}
}

func productSpec() TableSpec[canonical.Product] {
	return TableSpec[canonical.Product]{
		Table: "products",
		Columns: []string{
			"sku", "platform_product_id", "platform", "product_name", "brand",
			"category", "price_min", "price_max", "image_url",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"sku", "platform_product_id"},
		Refreshable: []string{
			"platform", "product_name", "brand", "category",
			"price_min", "price_max", "image_url", "updated_at",
		},
		Values: func(p canonical.Product, now time.Time) []any {
			return []any{
				p.SKU, p.PlatformProductID, p.Platform, p.ProductName, p.Brand,
				p.Category, p.PriceMin, p.PriceMax, p.ImageURL,
				now, now,
			}
		},
		Key: func(p canonical.Product) []any { return []any{p.SKU, p.PlatformProductID} },
	}
}

func geographySpec() TableSpec[canonical.GeographyInfo] {
	return TableSpec[canonical.GeographyInfo]{
		Table: "geography_info",
		Columns: []string{
			"order_id", "province", "district", "region", "is_urban", "is_metro",
			"economic_tier", "shipping_zone", "std_delivery_days",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"order_id"},
		Refreshable: []string{
			"province", "district", "region", "is_urban", "is_metro",
			"economic_tier", "shipping_zone", "std_delivery_days", "updated_at",
		},
		Values: func(g canonical.GeographyInfo, now time.Time) []any {
			return []any{
				g.OrderID, g.Province, g.District, g.Region, g.IsUrban, g.IsMetro,
				g.EconomicTier, g.ShippingZone, g.StdDeliveryDays,
				now, now,
			}
		},
		Key: func(g canonical.GeographyInfo) []any { return []any{g.OrderID} },
	}
}

func paymentSpec() TableSpec[canonical.PaymentInfo] {
	return TableSpec[canonical.PaymentInfo]{
		Table: "payment_info",
		Columns: []string{
			"order_id", "payment_method", "payment_category", "payment_provider",
			"is_cod", "supports_refund", "risk_level",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"order_id"},
		Refreshable: []string{
			"payment_method", "payment_category", "payment_provider",
			"is_cod", "supports_refund", "risk_level", "updated_at",
		},
		Values: func(p canonical.PaymentInfo, now time.Time) []any {
			return []any{
				p.OrderID, p.PaymentMethod, p.PaymentCategory, p.PaymentProvider,
				p.IsCOD, p.SupportsRefund, p.RiskLevel,
				now, now,
			}
		},
		Key: func(p canonical.PaymentInfo) []any { return []any{p.OrderID} },
	}
}

func shippingSpec() TableSpec[canonical.ShippingInfo] {
	return TableSpec[canonical.ShippingInfo]{
		Table: "shipping_info",
		Columns: []string{
			"order_id", "carrier", "service_type", "tracking_number",
			"total_fee", "buyer_fee", "platform_subsidy",
			"supports_cod", "has_tracking", "is_express", "avg_delivery_days",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"order_id"},
		Refreshable: []string{
			"carrier", "service_type", "tracking_number",
			"total_fee", "buyer_fee", "platform_subsidy",
			"supports_cod", "has_tracking", "is_express", "avg_delivery_days",
			"updated_at",
		},
		Values: func(s canonical.ShippingInfo, now time.Time) []any {
			return []any{
				s.OrderID, s.Carrier, s.ServiceType, s.TrackingNumber,
				s.TotalFee, s.BuyerFee, s.PlatformSubsidy,
				s.SupportsCOD, s.HasTracking, s.IsExpress, s.AvgDeliveryDays,
				now, now,
			}
		},
		Key: func(s canonical.ShippingInfo) []any { return []any{s.OrderID} },
	}
}

func processingDateSpec() TableSpec[canonical.ProcessingDateInfo] {
	return TableSpec[canonical.ProcessingDateInfo]{
		Table: "processing_date_info",
		Columns: []string{
			"order_id", "order_date", "day_of_week", "day_name", "week_of_year",
			"month", "quarter", "year", "fiscal_quarter", "fiscal_year",
			"season", "is_weekend",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"order_id"},
		Refreshable: []string{
			"order_date", "day_of_week", "day_name", "week_of_year",
			"month", "quarter", "year", "fiscal_quarter", "fiscal_year",
			"season", "is_weekend", "updated_at",
		},
		Values: func(p canonical.ProcessingDateInfo, now time.Time) []any {
			return []any{
				p.OrderID, p.OrderDate, p.DayOfWeek, p.DayName, p.WeekOfYear,
				p.Month, p.Quarter, p.Year, p.FiscalQuarter, p.FiscalYear,
				p.Season, p.IsWeekend,
				now, now,
			}
		},
		Key: func(p canonical.ProcessingDateInfo) []any { return []any{p.OrderID} },
	}
}

func statusSpec() TableSpec[canonical.Status] {
	return TableSpec[canonical.Status]{
		Table: "statuses",
		Columns: []string{
			"status_key", "platform", "platform_status_code", "platform_status_name",
			"standard_code", "standard_name",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"status_key"},
		Refreshable: []string{
			"platform", "platform_status_code", "platform_status_name",
			"standard_code", "standard_name", "updated_at",
		},
		Values: func(s canonical.Status, now time.Time) []any {
			return []any{
				s.StatusKey, s.Platform, s.PlatformStatusCode, s.PlatformStatusName,
				s.StandardCode, s.StandardName,
				now, now,
			}
		},
		Key: func(s canonical.Status) []any { return []any{s.StatusKey} },
	}
}

func orderStatusSpec() TableSpec[canonical.OrderStatus] {
	return TableSpec[canonical.OrderStatus]{
		Table: "order_statuses",
		Columns: []string{
			"status_key", "order_id", "sub_status_id", "partner_status_id",
			"reason", "triggered_by", "actor", "status_date",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"status_key", "order_id", "sub_status_id", "partner_status_id"},
		PreDelete:  true,
		Values: func(s canonical.OrderStatus, now time.Time) []any {
			return []any{
				s.StatusKey, s.OrderID, s.SubStatusID, s.PartnerStatusID,
				s.Reason, s.TriggeredBy, s.Actor, s.StatusDate,
				now, now,
			}
		},
		Key: func(s canonical.OrderStatus) []any {
			return []any{s.StatusKey, s.OrderID, s.SubStatusID, s.PartnerStatusID}
		},
	}
}

func orderStatusDetailSpec() TableSpec[canonical.OrderStatusDetail] {
	return TableSpec[canonical.OrderStatusDetail]{
		Table: "order_status_details",
		Columns: []string{
			"status_key", "order_id", "is_active", "is_completed",
			"is_refundable", "is_cancellable", "sla_hours",
			"created_at", "updated_at",
		},
		KeyColumns: []string{"status_key", "order_id"},
		PreDelete:  true,
		Values: func(s canonical.OrderStatusDetail, now time.Time) []any {
			return []any{
				s.StatusKey, s.OrderID, s.IsActive, s.IsCompleted,
				s.IsRefundable, s.IsCancellable, s.SLAHours,
				now, now,
			}
		},
		Key: func(s canonical.OrderStatusDetail) []any {
			return []any{s.StatusKey, s.OrderID}
		},
	}
}

func partnerStatusSpec() TableSpec[canonical.PartnerStatus] {
	return TableSpec[canonical.PartnerStatus]{
		Table: "partner_statuses",
		Columns: []string{
			"partner_status_id", "code", "name", "created_at", "updated_at",
		},
		KeyColumns:  []string{"partner_status_id"},
		Refreshable: []string{"code", "name", "updated_at"},
		Values: func(p canonical.PartnerStatus, now time.Time) []any {
			return []any{p.PartnerStatusID, p.Code, p.Name, now, now}
		},
		Key: func(p canonical.PartnerStatus) []any { return []any{p.PartnerStatusID} },
	}
}

func subStatusSpec() TableSpec[canonical.SubStatus] {
	return TableSpec[canonical.SubStatus]{
		Table: "sub_statuses",
		Columns: []string{
			"sub_status_id", "code", "name", "created_at", "updated_at",
		},
		KeyColumns:  []string{"sub_status_id"},
		Refreshable: []string{"code", "name", "updated_at"},
		Values: func(s canonical.SubStatus, now time.Time) []any {
			return []any{s.SubStatusID, s.Code, s.Name, now, now}
		},
		Key: func(s canonical.SubStatus) []any { return []any{s.SubStatusID} },
	}
}
