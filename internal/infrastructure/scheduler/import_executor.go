package scheduler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ordersync/backend/internal/domain/canonical"
	"github.com/ordersync/backend/internal/infrastructure/persistence"
)

// ---------------------------------------------------------------------------
// Pass executor
// ---------------------------------------------------------------------------

// PassExecutor runs one full import pass across every registered platform
type PassExecutor interface {
	// Execute fetches, normalizes and persists all orders for the given date
	Execute(ctx context.Context, date time.Time) (*canonical.ImportResult, error)
}

// ImportExecutor is the production pass executor. One pass walks every
// platform client page by page, normalizes each raw order in isolation,
// aggregates customer lifetime figures over the batch and bulk-upserts the
// canonical entities table by table.
//
// Record-level counters on the result cover fetching and normalization;
// persistence failures are table-level and surface through the returned
// error as well as the result's error list.
type ImportExecutor struct {
	repos       *persistence.Repositories
	clients     []canonical.OrderClient
	normalizers map[canonical.Platform]canonical.OrderNormalizer
	pageSize    int
	logger      *zap.Logger
}

var _ PassExecutor = (*ImportExecutor)(nil)

// NewImportExecutor creates an executor over the given clients and
// normalizers. Normalizers are matched to clients by platform.
func NewImportExecutor(
	repos *persistence.Repositories,
	clients []canonical.OrderClient,
	normalizers []canonical.OrderNormalizer,
	pageSize int,
	logger *zap.Logger,
) *ImportExecutor {
	if pageSize <= 0 {
		pageSize = 100
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	byPlatform := make(map[canonical.Platform]canonical.OrderNormalizer, len(normalizers))
	for _, n := range normalizers {
		byPlatform[n.Platform()] = n
	}
	return &ImportExecutor{
		repos:       repos,
		clients:     clients,
		normalizers: byPlatform,
		pageSize:    pageSize,
		logger:      logger,
	}
}

// Execute runs one import pass for orders created on the given date
func (e *ImportExecutor) Execute(ctx context.Context, date time.Time) (*canonical.ImportResult, error) {
	start := time.Now()
	result := &canonical.ImportResult{
		ProcessedAt: start,
		Errors:      []canonical.ImportError{},
	}
	if len(e.clients) == 0 {
		return result, ErrNoClients
	}

	batch := newPassBatch()
	for _, client := range e.clients {
		if err := ctx.Err(); err != nil {
			result.ProcessingTimeMs = time.Since(start).Milliseconds()
			return result, err
		}
		platform := client.Platform()
		norm, ok := e.normalizers[platform]
		if !ok {
			result.AddError("platform", platform.String(), canonical.ErrPlatformNotRegistered.Error())
			e.logger.Warn("No normalizer registered for platform",
				zap.String("platform", platform.String()))
			continue
		}
		e.collectPlatform(ctx, client, norm, date, batch, result)
	}

	batch.aggregateCustomers()

	persisted, persistErr := e.persist(ctx, batch, result)
	result.ProcessingTimeMs = time.Since(start).Milliseconds()

	e.logger.Info("Import pass finished",
		zap.Time("date", date),
		zap.Int("totalProcessed", result.TotalProcessed),
		zap.Int("successCount", result.SuccessCount),
		zap.Int("failedCount", result.FailedCount),
		zap.Int("skippedCount", result.SkippedCount),
		zap.Int64("rowsPersisted", persisted),
		zap.Float64("successRate", result.SuccessRate()),
		zap.Int64("durationMs", result.ProcessingTimeMs))

	return result, persistErr
}

// collectPlatform pages through one client until a short page, normalizing
// each record in isolation. A fetch failure aborts the platform but not the
// pass.
func (e *ImportExecutor) collectPlatform(
	ctx context.Context,
	client canonical.OrderClient,
	norm canonical.OrderNormalizer,
	date time.Time,
	batch *passBatch,
	result *canonical.ImportResult,
) {
	platform := client.Platform().String()
	for page := 1; ; page++ {
		raws, err := client.FetchPage(ctx, date, page, e.pageSize)
		if err != nil {
			result.AddError("fetch", platform, err.Error())
			e.logger.Warn("Fetching order page failed",
				zap.String("platform", platform),
				zap.Int("page", page),
				zap.Error(err))
			return
		}

		for _, raw := range raws {
			result.TotalProcessed++
			set, err := norm.Normalize(raw)
			switch {
			case err != nil:
				result.FailedCount++
				result.AddError("orders", "", err.Error())
				e.logger.Warn("Normalizing order failed",
					zap.String("platform", platform),
					zap.Error(err))
			case set == nil:
				result.SkippedCount++
			default:
				result.SuccessCount++
				batch.add(set)
			}
		}

		if len(raws) < e.pageSize {
			return
		}
	}
}

// persist bulk-upserts the batch table by table and returns the total affected
// row count. Parent tables go first so a partial failure leaves no
// order-scoped row without its order.
func (e *ImportExecutor) persist(ctx context.Context, b *passBatch, result *canonical.ImportResult) (int64, error) {
	var (
		errs      []error
		persisted int64
	)
	store := func(table string, upsert func() (int64, error)) {
		n, err := upsert()
		if err != nil {
			result.AddError(table, "", err.Error())
			e.logger.Error("Persisting entity batch failed",
				zap.String("table", table),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", table, err))
			return
		}
		persisted += n
	}

	store("customers", func() (int64, error) { return e.repos.Customers.Upsert(ctx, b.customerRows()) })
	store("orders", func() (int64, error) { return e.repos.Orders.Upsert(ctx, b.orderRows()) })
	store("order_items", func() (int64, error) { return e.repos.OrderItems.Upsert(ctx, b.items) })
	store("products", func() (int64, error) { return e.repos.Products.Upsert(ctx, b.products) })
	store("geography_info", func() (int64, error) { return e.repos.Geography.Upsert(ctx, b.geography) })
	store("payment_info", func() (int64, error) { return e.repos.Payments.Upsert(ctx, b.payments) })
	store("shipping_info", func() (int64, error) { return e.repos.Shipping.Upsert(ctx, b.shipping) })
	store("processing_date_info", func() (int64, error) { return e.repos.ProcessingDates.Upsert(ctx, b.processingDates) })
	store("partner_statuses", func() (int64, error) { return e.repos.PartnerStatuses.Upsert(ctx, b.partnerStatuses) })
	store("sub_statuses", func() (int64, error) { return e.repos.SubStatuses.Upsert(ctx, b.subStatuses) })
	store("order_statuses", func() (int64, error) { return e.repos.OrderStatuses.Upsert(ctx, b.statuses) })
	store("order_status_details", func() (int64, error) { return e.repos.OrderStatusDetails.Upsert(ctx, b.statusDetails) })

	return persisted, errors.Join(errs...)
}

// ---------------------------------------------------------------------------
// Batch assembly
// ---------------------------------------------------------------------------

// passBatch accumulates the canonical output of one pass before persistence.
// Customers and orders are held as pointers so customer lifetime aggregates
// can be written back after collection.
type passBatch struct {
	customers   map[string]*canonical.Customer
	customerIDs []string
	orders      []*canonical.Order

	items           []canonical.OrderItem
	products        []canonical.Product
	geography       []canonical.GeographyInfo
	payments        []canonical.PaymentInfo
	shipping        []canonical.ShippingInfo
	processingDates []canonical.ProcessingDateInfo
	statuses        []canonical.OrderStatus
	statusDetails   []canonical.OrderStatusDetail
	partnerStatuses []canonical.PartnerStatus
	subStatuses     []canonical.SubStatus

	seenPartner map[string]struct{}
	seenSub     map[string]struct{}
}

func newPassBatch() *passBatch {
	return &passBatch{
		customers:   make(map[string]*canonical.Customer),
		seenPartner: make(map[string]struct{}),
		seenSub:     make(map[string]struct{}),
	}
}

func (b *passBatch) add(set *canonical.EntitySet) {
	if set.Customer != nil {
		if _, ok := b.customers[set.Customer.CustomerID]; !ok {
			c := *set.Customer
			b.customers[c.CustomerID] = &c
			b.customerIDs = append(b.customerIDs, c.CustomerID)
		}
	}
	if set.Order != nil {
		o := *set.Order
		b.orders = append(b.orders, &o)
	}
	b.items = append(b.items, set.Items...)
	b.products = append(b.products, set.Products...)
	if set.Geography != nil {
		b.geography = append(b.geography, *set.Geography)
	}
	if set.Payment != nil {
		b.payments = append(b.payments, *set.Payment)
	}
	if set.Shipping != nil {
		b.shipping = append(b.shipping, *set.Shipping)
	}
	if set.ProcessingDate != nil {
		b.processingDates = append(b.processingDates, *set.ProcessingDate)
	}
	b.statuses = append(b.statuses, set.Statuses...)
	b.statusDetails = append(b.statusDetails, set.StatusDetails...)

	for _, status := range set.Statuses {
		b.collectReferences(status)
	}
}

// collectReferences synthesizes reference rows for carrier and sub-state
// identifiers observed on status snapshots
func (b *passBatch) collectReferences(status canonical.OrderStatus) {
	if id := status.PartnerStatusID; id != "" {
		if _, ok := b.seenPartner[id]; !ok {
			b.seenPartner[id] = struct{}{}
			code := referenceCode(id)
			b.partnerStatuses = append(b.partnerStatuses, canonical.PartnerStatus{
				PartnerStatusID: id,
				Code:            code,
				Name:            referenceName(code),
			})
		}
	}
	if id := status.SubStatusID; id != "" {
		if _, ok := b.seenSub[id]; !ok {
			b.seenSub[id] = struct{}{}
			code := referenceCode(id)
			b.subStatuses = append(b.subStatuses, canonical.SubStatus{
				SubStatusID: id,
				Code:        code,
				Name:        referenceName(code),
			})
		}
	}
}

// aggregateCustomers computes batch-level lifetime figures per customer and
// writes the denormalized snapshot back onto each order
func (b *passBatch) aggregateCustomers() {
	type lifetime struct {
		orders int
		spent  decimal.Decimal
		first  time.Time
		last   time.Time
		cod    bool
	}
	byCustomer := make(map[string]*lifetime, len(b.customers))

	for _, o := range b.orders {
		agg, ok := byCustomer[o.CustomerID]
		if !ok {
			agg = &lifetime{}
			byCustomer[o.CustomerID] = agg
		}
		agg.orders++
		agg.spent = agg.spent.Add(o.NetRevenue)
		agg.cod = agg.cod || o.IsCOD
		if !o.OrderDate.IsZero() {
			if agg.first.IsZero() || o.OrderDate.Before(agg.first) {
				agg.first = o.OrderDate
			}
			if o.OrderDate.After(agg.last) {
				agg.last = o.OrderDate
			}
		}
	}

	for id, c := range b.customers {
		agg, ok := byCustomer[id]
		if !ok {
			continue
		}
		c.TotalOrders = agg.orders
		c.TotalSpent = agg.spent
		c.AvgOrderValue = agg.spent.Div(decimal.NewFromInt(int64(agg.orders))).Round(2)
		c.IsCODUser = agg.cod
		c.FirstOrderAt = agg.first
		c.LastOrderAt = agg.last
	}

	for _, o := range b.orders {
		if agg, ok := byCustomer[o.CustomerID]; ok {
			o.CustomerOrderCount = agg.orders
			o.CustomerTotalSpent = agg.spent
		}
	}
}

// customerRows returns customers in first-seen order
func (b *passBatch) customerRows() []canonical.Customer {
	rows := make([]canonical.Customer, 0, len(b.customerIDs))
	for _, id := range b.customerIDs {
		rows = append(rows, *b.customers[id])
	}
	return rows
}

func (b *passBatch) orderRows() []canonical.Order {
	rows := make([]canonical.Order, 0, len(b.orders))
	for _, o := range b.orders {
		rows = append(rows, *o)
	}
	return rows
}

// referenceCode strips the platform and kind prefix from a synthesized
// reference identifier, e.g. "LZ_3PL_LEX_VN" yields "LEX_VN"
func referenceCode(id string) string {
	for _, tag := range []string{"SP_", "LZ_", "TT_"} {
		for _, kind := range []string{"RET_", "3PL_"} {
			if rest, ok := strings.CutPrefix(id, tag+kind); ok && rest != "" {
				return rest
			}
		}
	}
	return id
}

func referenceName(code string) string {
	return strings.ReplaceAll(code, "_", " ")
}
