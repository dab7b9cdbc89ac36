package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ordersync/backend/internal/domain/canonical"
)

// newTestDB opens an in-memory database with the full canonical schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))
	return db
}

func testCustomer(id, name string) canonical.Customer {
	return canonical.Customer{
		CustomerID:   id,
		Platform:     "SHOPEE",
		CustomerName: name,
		TotalSpent:   decimal.NewFromInt(100000),
	}
}

func testItem(orderID, sku string, qty int) canonical.OrderItem {
	return canonical.OrderItem{
		OrderID:           orderID,
		SKU:               sku,
		PlatformProductID: "P_" + sku,
		Quantity:          qty,
		UnitPrice:         decimal.NewFromInt(10000),
		LineTotal:         decimal.NewFromInt(int64(qty) * 10000),
	}
}

func TestBulkEngine_UpsertInsertsThenUpdates(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, customerSpec(), EngineOptions{}, nil)
	ctx := context.Background()

	n, err := engine.Upsert(ctx, []canonical.Customer{
		testCustomer("SP_1", "Alice"),
		testCustomer("SP_2", "Binh"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Re-observing a customer rewrites the refreshable columns
	n, err = engine.Upsert(ctx, []canonical.Customer{
		testCustomer("SP_1", "Alice Updated"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err = engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	got, err := engine.FindByKey(ctx, "SP_1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Updated", got.CustomerName)
}

func TestBulkEngine_UpsertIdempotent(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, orderSpec(), EngineOptions{}, nil)
	ctx := context.Background()

	batch := []canonical.Order{
		{OrderID: "SN1", CustomerID: "SP_1", Platform: "SHOPEE", NetRevenue: decimal.NewFromInt(90000), StatusCode: 5},
		{OrderID: "SN2", CustomerID: "SP_2", Platform: "SHOPEE", NetRevenue: decimal.NewFromInt(40000), StatusCode: 1},
	}

	n, err := engine.Upsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = engine.Upsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBulkEngine_DedupesWithinBatch(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, customerSpec(), EngineOptions{}, nil)
	ctx := context.Background()

	// Same key appears twice in one batch; the last occurrence wins and the
	// statement never touches one row twice
	n, err := engine.Upsert(ctx, []canonical.Customer{
		testCustomer("SP_1", "First"),
		testCustomer("SP_2", "Other"),
		testCustomer("SP_1", "Last"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := engine.FindByKey(ctx, "SP_1")
	require.NoError(t, err)
	assert.Equal(t, "Last", got.CustomerName)

	count, err := engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestBulkEngine_PreDeleteReplacesOnlyMatchingKeys(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, orderItemSpec(), EngineOptions{}, nil)
	ctx := context.Background()

	n, err := engine.Upsert(ctx, []canonical.OrderItem{
		testItem("SN1", "A", 1),
		testItem("SN1", "B", 2),
		testItem("SN1", "C", 1),
		testItem("SN2", "A", 5),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	// The order is re-observed with one line; sibling lines keyed outside the
	// batch survive, the matching line is rewritten
	n, err = engine.Upsert(ctx, []canonical.OrderItem{
		testItem("SN1", "A", 3),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var remaining []canonical.OrderItem
	require.NoError(t, db.Where("order_id = ?", "SN1").Order("sku").Find(&remaining).Error)
	require.Len(t, remaining, 3)
	assert.Equal(t, "A", remaining[0].SKU)
	assert.Equal(t, 3, remaining[0].Quantity)
	assert.Equal(t, "B", remaining[1].SKU)
	assert.Equal(t, "C", remaining[2].SKU)

	// Other orders are untouched
	other, err := engine.FindByKey(ctx, "SN2", "A", "P_A")
	require.NoError(t, err)
	assert.Equal(t, 5, other.Quantity)
}

func TestBulkEngine_PreDeleteKeepsPriorStatusSnapshots(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, orderStatusSpec(), EngineOptions{}, nil)
	ctx := context.Background()

	snapshot := func(statusKey string) canonical.OrderStatus {
		return canonical.OrderStatus{
			StatusKey:       statusKey,
			OrderID:         "SN1",
			SubStatusID:     "SP_RET_NONE",
			PartnerStatusID: "SP_3PL_SPX",
		}
	}

	_, err := engine.Upsert(ctx, []canonical.OrderStatus{snapshot("SHOPEE_SHIPPED")})
	require.NoError(t, err)

	// A later pass sees the order in a new state; the earlier snapshot is a
	// different key tuple and must survive
	_, err = engine.Upsert(ctx, []canonical.OrderStatus{snapshot("SHOPEE_COMPLETED")})
	require.NoError(t, err)

	var history []canonical.OrderStatus
	require.NoError(t, db.Where("order_id = ?", "SN1").Order("status_key").Find(&history).Error)
	require.Len(t, history, 2)
	assert.Equal(t, "SHOPEE_COMPLETED", history[0].StatusKey)
	assert.Equal(t, "SHOPEE_SHIPPED", history[1].StatusKey)
}

func TestBulkEngine_ChunkedKeyPreDelete(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, orderItemSpec(), EngineOptions{DeleteChunkSize: 2}, nil)
	ctx := context.Background()

	var batch []canonical.OrderItem
	for _, orderID := range []string{"SN1", "SN2", "SN3", "SN4", "SN5"} {
		batch = append(batch, testItem(orderID, "A", 1))
	}
	n, err := engine.Upsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	// Second pass spans three delete chunks and must still converge
	n, err = engine.Upsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	count, err := engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestBulkEngine_SmallBatchSizeChunksInserts(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, customerSpec(), EngineOptions{BatchSize: 2}, nil)
	ctx := context.Background()

	batch := make([]canonical.Customer, 0, 7)
	for _, id := range []string{"C1", "C2", "C3", "C4", "C5", "C6", "C7"} {
		batch = append(batch, testCustomer(id, "Name "+id))
	}
	n, err := engine.Upsert(ctx, batch)
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	count, err := engine.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
}

func TestBulkEngine_EmptyBatchIsNoop(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, customerSpec(), EngineOptions{}, nil)

	n, err := engine.Upsert(context.Background(), nil)
	assert.NoError(t, err)
	assert.Zero(t, n)

	n, err = engine.Upsert(context.Background(), []canonical.Customer{})
	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestBulkEngine_FindByKey(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, customerSpec(), EngineOptions{}, nil)
	ctx := context.Background()

	_, err := engine.Upsert(ctx, []canonical.Customer{testCustomer("SP_1", "Alice")})
	require.NoError(t, err)

	got, err := engine.FindByKey(ctx, "SP_1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.CustomerName)

	_, err = engine.FindByKey(ctx, "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = engine.FindByKey(ctx, "too", "many")
	assert.Error(t, err)
}

func TestBulkEngine_FindByKeysChunked(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, customerSpec(), EngineOptions{DeleteChunkSize: 2}, nil)
	ctx := context.Background()

	_, err := engine.Upsert(ctx, []canonical.Customer{
		testCustomer("C1", "A"),
		testCustomer("C2", "B"),
		testCustomer("C3", "C"),
	})
	require.NoError(t, err)

	got, err := engine.FindByKeys(ctx, [][]any{{"C1"}, {"C2"}, {"C3"}, {"C_missing"}})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestBulkEngine_CompositeKeyFind(t *testing.T) {
	db := newTestDB(t)
	engine := NewBulkEngine(db, nil, orderStatusDetailSpec(), EngineOptions{}, nil)
	ctx := context.Background()

	_, err := engine.Upsert(ctx, []canonical.OrderStatusDetail{
		{StatusKey: "SHOPEE_COMPLETED", OrderID: "SN1", IsCompleted: true},
		{StatusKey: "SHOPEE_SHIPPED", OrderID: "SN2", IsActive: true, SLAHours: 120},
	})
	require.NoError(t, err)

	got, err := engine.FindByKey(ctx, "SHOPEE_SHIPPED", "SN2")
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, 120, got.SLAHours)
}

// ---------------------------------------------------------------------------
// Staging path (postgres-only SQL, verified against a mock)
// ---------------------------------------------------------------------------

func TestBulkEngine_StagingMerge(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db := newTestDB(t)
	engine := NewBulkEngine(db, mockDB, customerSpec(), EngineOptions{StagingThreshold: 1}, nil)

	staging := `"customers_staging_[0-9a-f]{32}"`

	mock.ExpectExec(`CREATE UNLOGGED TABLE ` + staging + ` \(LIKE "customers" INCLUDING DEFAULTS\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	copyStmt := mock.ExpectPrepare(`COPY ` + staging + ` \(.+\) FROM STDIN`)
	copyStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	copyStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	copyStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0)) // flush
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO "customers" \(.+\) SELECT .+ FROM ` + staging +
		` ON CONFLICT \("customer_id"\) DO UPDATE SET .+ = EXCLUDED\..+`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DROP TABLE IF EXISTS ` + staging).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := engine.Upsert(context.Background(), []canonical.Customer{
		testCustomer("SP_1", "Alice"),
		testCustomer("SP_2", "Binh"),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n, "merge affected-row count must surface")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkEngine_StagingFailureFallsBack(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db := newTestDB(t)
	engine := NewBulkEngine(db, mockDB, customerSpec(), EngineOptions{StagingThreshold: 1}, nil)

	mock.ExpectExec(`CREATE UNLOGGED TABLE`).
		WillReturnError(assert.AnError)

	// The batch must still land through the portable upsert path
	n, err := engine.Upsert(context.Background(), []canonical.Customer{
		testCustomer("SP_1", "Alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := engine.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkEngine_StagingCleanupFailureIsNotFatal(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db := newTestDB(t)
	engine := NewBulkEngine(db, mockDB, customerSpec(), EngineOptions{StagingThreshold: 1}, nil)

	staging := `"customers_staging_[0-9a-f]{32}"`

	mock.ExpectExec(`CREATE UNLOGGED TABLE ` + staging).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	copyStmt := mock.ExpectPrepare(`COPY ` + staging)
	copyStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	copyStmt.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectExec(`INSERT INTO "customers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DROP TABLE IF EXISTS`).
		WillReturnError(assert.AnError)

	n, err := engine.Upsert(context.Background(), []canonical.Customer{
		testCustomer("SP_1", "Alice"),
	})
	assert.NoError(t, err, "a failed staging drop must never fail the batch")
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkEngine_BelowThresholdSkipsStaging(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db := newTestDB(t)
	engine := NewBulkEngine(db, mockDB, customerSpec(), EngineOptions{StagingThreshold: 100}, nil)

	// No expectations on the mock: a small batch must never touch the raw pool
	n, err := engine.Upsert(context.Background(), []canonical.Customer{
		testCustomer("SP_1", "Alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTupleIn(t *testing.T) {
	cond, args := tupleIn([]string{"order_id"}, [][]any{{"A"}, {"B"}})
	assert.Equal(t, `"order_id" IN (?,?)`, cond)
	assert.Equal(t, []any{"A", "B"}, args)

	cond, args = tupleIn([]string{"a", "b"}, [][]any{{"1", "2"}, {"3", "4"}})
	assert.Equal(t, `("a", "b") IN ((?,?),(?,?))`, cond)
	assert.Equal(t, []any{"1", "2", "3", "4"}, args)
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, keyString([]any{"a", 1}), keyString([]any{"a", 1}))
	assert.NotEqual(t, keyString([]any{"a", 1}), keyString([]any{"a", 2}))
}

func TestEngineOptionsDefaults(t *testing.T) {
	opts := EngineOptions{}.withDefaults()
	assert.Equal(t, 1000, opts.BatchSize)
	assert.Equal(t, 5000, opts.StagingThreshold)
	assert.Equal(t, 500, opts.DeleteChunkSize)

	custom := EngineOptions{BatchSize: 10, StagingThreshold: 20, DeleteChunkSize: 5}.withDefaults()
	assert.Equal(t, 10, custom.BatchSize)
	assert.Equal(t, 20, custom.StagingThreshold)
	assert.Equal(t, 5, custom.DeleteChunkSize)
}

func TestStagingSuffixIsUnique(t *testing.T) {
	a := stagingSuffix()
	b := stagingSuffix()
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}
