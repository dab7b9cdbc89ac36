package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableSpec describes how one canonical table is bulk-persisted. Values must
// return one driver value per entry of Columns, in the same order. Key must
// return the conflict-target values in KeyColumns order. PreDelete marks a
// composite-key table without a usable conflict target: the batch's distinct
// key tuples are chunk-deleted and the rows re-inserted. Rows whose keys are
// absent from the batch are never touched.
type TableSpec[T any] struct {
	Table       string
	Columns     []string
	KeyColumns  []string
	Refreshable []string // columns rewritten on conflict; key columns never appear here
	PreDelete   bool     // switches to delete-matching-keys-then-insert

	Values func(row T, now time.Time) []any
	Key    func(row T) []any
}

// EngineOptions tunes batch and chunk sizes. Zero values get defaults.
type EngineOptions struct {
	BatchSize        int // rows per insert batch on the fallback path
	StagingThreshold int // row count at which the staging merge kicks in
	DeleteChunkSize  int // key tuples per pre-delete or lookup statement
}

func (o EngineOptions) withDefaults() EngineOptions {
	if o.BatchSize <= 0 {
		o.BatchSize = 1000
	}
	if o.StagingThreshold <= 0 {
		o.StagingThreshold = 5000
	}
	if o.DeleteChunkSize <= 0 {
		o.DeleteChunkSize = 500
	}
	return o
}

// BulkEngine persists one canonical table. Large batches go through an
// unlogged staging table and a single merge statement; smaller batches and
// any staging failure use batched ON CONFLICT upserts through GORM. Both
// paths are idempotent: re-running the same batch changes nothing.
type BulkEngine[T any] struct {
	db     *gorm.DB
	sqlDB  *sql.DB // nil disables the staging path
	spec   TableSpec[T]
	opts   EngineOptions
	logger *zap.Logger
}

// NewBulkEngine creates an engine for one table. sqlDB may be nil when the
// raw COPY path is unavailable (tests on sqlite, for example).
func NewBulkEngine[T any](db *gorm.DB, sqlDB *sql.DB, spec TableSpec[T], opts EngineOptions, logger *zap.Logger) *BulkEngine[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BulkEngine[T]{
		db:     db,
		sqlDB:  sqlDB,
		spec:   spec,
		opts:   opts.withDefaults(),
		logger: logger.Named("bulk").With(zap.String("table", spec.Table)),
	}
}

// Table returns the destination table name
func (e *BulkEngine[T]) Table() string {
	return e.spec.Table
}

// Upsert persists the batch and returns the affected row count. Rows sharing
// a key are collapsed to the last occurrence before writing so a single
// statement never touches one row twice.
func (e *BulkEngine[T]) Upsert(ctx context.Context, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	rows = e.dedupe(rows)

	if e.spec.PreDelete {
		return e.deleteThenInsert(ctx, rows)
	}

	if e.sqlDB != nil && len(rows) >= e.opts.StagingThreshold {
		n, err := e.stagingMerge(ctx, rows)
		if err == nil {
			return n, nil
		}
		e.logger.Warn("Staging merge failed, falling back to batched upsert",
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
	}

	return e.batchUpsert(ctx, rows)
}

// dedupe collapses rows sharing a key, keeping the last occurrence in the
// first occurrence's position.
func (e *BulkEngine[T]) dedupe(rows []T) []T {
	index := make(map[string]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		k := keyString(e.spec.Key(r))
		if i, ok := index[k]; ok {
			out[i] = r
			continue
		}
		index[k] = len(out)
		out = append(out, r)
	}
	return out
}

// batchUpsert is the portable path: chunked INSERT ... ON CONFLICT through GORM
func (e *BulkEngine[T]) batchUpsert(ctx context.Context, rows []T) (int64, error) {
	conflictCols := make([]clause.Column, 0, len(e.spec.KeyColumns))
	for _, c := range e.spec.KeyColumns {
		conflictCols = append(conflictCols, clause.Column{Name: c})
	}

	onConflict := clause.OnConflict{Columns: conflictCols}
	if len(e.spec.Refreshable) == 0 {
		onConflict.DoNothing = true
	} else {
		onConflict.DoUpdates = clause.AssignmentColumns(e.spec.Refreshable)
	}

	tx := e.db.WithContext(ctx).
		Clauses(onConflict).
		CreateInBatches(rows, e.opts.BatchSize)
	if tx.Error != nil {
		return 0, fmt.Errorf("bulk upsert into %s: %w", e.spec.Table, tx.Error)
	}
	return tx.RowsAffected, nil
}

// deleteThenInsert replaces exactly the rows whose keys appear in the batch:
// the batch's key tuples are deleted in chunks, then the rows are plain
// bulk-inserted. Rows keyed outside the batch stay untouched, so earlier
// observations of the same parent survive a re-import.
func (e *BulkEngine[T]) deleteThenInsert(ctx context.Context, rows []T) (int64, error) {
	keys := make([][]any, len(rows))
	for i, r := range rows {
		keys[i] = e.spec.Key(r)
	}

	for start := 0; start < len(keys); start += e.opts.DeleteChunkSize {
		end := start + e.opts.DeleteChunkSize
		if end > len(keys) {
			end = len(keys)
		}
		cond, args := tupleIn(e.spec.KeyColumns, keys[start:end])
		stmt := fmt.Sprintf("DELETE FROM %s WHERE %s", pq.QuoteIdentifier(e.spec.Table), cond)
		if err := e.db.WithContext(ctx).Exec(stmt, args...).Error; err != nil {
			return 0, fmt.Errorf("pre-delete from %s: %w", e.spec.Table, err)
		}
	}

	tx := e.db.WithContext(ctx).CreateInBatches(rows, e.opts.BatchSize)
	if tx.Error != nil {
		return 0, fmt.Errorf("bulk insert into %s: %w", e.spec.Table, tx.Error)
	}
	return tx.RowsAffected, nil
}

// stagingMerge is the high-volume path: COPY the batch into a fresh unlogged
// staging table, merge it into the base table with one statement, drop the
// staging table. The drop is guaranteed by defer; a failed drop is logged and
// never fails the pass.
func (e *BulkEngine[T]) stagingMerge(ctx context.Context, rows []T) (int64, error) {
	staging := fmt.Sprintf("%s_staging_%s", e.spec.Table, stagingSuffix())

	createStmt := fmt.Sprintf("CREATE UNLOGGED TABLE %s (LIKE %s INCLUDING DEFAULTS)",
		pq.QuoteIdentifier(staging), pq.QuoteIdentifier(e.spec.Table))
	if _, err := e.sqlDB.ExecContext(ctx, createStmt); err != nil {
		return 0, fmt.Errorf("create staging table for %s: %w", e.spec.Table, err)
	}
	defer e.dropStaging(staging)

	if err := e.copyInto(ctx, staging, rows); err != nil {
		return 0, err
	}

	res, err := e.sqlDB.ExecContext(ctx, e.mergeSQL(staging))
	if err != nil {
		return 0, fmt.Errorf("merge staging into %s: %w", e.spec.Table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		e.logger.Warn("Merge affected-row count unavailable", zap.Error(err))
	}
	return n, nil
}

// copyInto streams the batch into the staging table via COPY FROM STDIN
func (e *BulkEngine[T]) copyInto(ctx context.Context, staging string, rows []T) error {
	tx, err := e.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin copy transaction: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(staging, e.spec.Columns...))
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare copy into %s: %w", staging, err)
	}

	now := time.Now().UTC()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, e.spec.Values(r, now)...); err != nil {
			stmt.Close()
			tx.Rollback()
			return fmt.Errorf("copy row into %s: %w", staging, err)
		}
	}

	// Final Exec with no arguments flushes the COPY stream
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		tx.Rollback()
		return fmt.Errorf("flush copy into %s: %w", staging, err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return fmt.Errorf("close copy into %s: %w", staging, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit copy into %s: %w", staging, err)
	}
	return nil
}

// mergeSQL builds the staging-to-base merge statement
func (e *BulkEngine[T]) mergeSQL(staging string) string {
	colList := quoteJoin(e.spec.Columns)
	keyList := quoteJoin(e.spec.KeyColumns)

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) SELECT %s FROM %s",
		pq.QuoteIdentifier(e.spec.Table), colList, colList, pq.QuoteIdentifier(staging))

	if len(e.spec.Refreshable) == 0 {
		fmt.Fprintf(&b, " ON CONFLICT (%s) DO NOTHING", keyList)
		return b.String()
	}

	assignments := make([]string, 0, len(e.spec.Refreshable))
	for _, c := range e.spec.Refreshable {
		q := pq.QuoteIdentifier(c)
		assignments = append(assignments, q+" = EXCLUDED."+q)
	}
	fmt.Fprintf(&b, " ON CONFLICT (%s) DO UPDATE SET %s", keyList, strings.Join(assignments, ", "))
	return b.String()
}

// dropStaging removes the staging table. Runs without the pass context so a
// cancelled pass still cleans up after itself.
func (e *BulkEngine[T]) dropStaging(staging string) {
	if _, err := e.sqlDB.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(staging)); err != nil {
		e.logger.Warn("Failed to drop staging table",
			zap.String("staging_table", staging),
			zap.Error(err),
		)
	}
}

// FindByKey loads one row by its full key. Returns gorm.ErrRecordNotFound
// when absent.
func (e *BulkEngine[T]) FindByKey(ctx context.Context, keyVals ...any) (*T, error) {
	if len(keyVals) != len(e.spec.KeyColumns) {
		return nil, fmt.Errorf("find in %s: want %d key values, got %d",
			e.spec.Table, len(e.spec.KeyColumns), len(keyVals))
	}
	var row T
	q := e.db.WithContext(ctx).Table(e.spec.Table)
	for i, col := range e.spec.KeyColumns {
		q = q.Where(pq.QuoteIdentifier(col)+" = ?", keyVals[i])
	}
	if err := q.First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByKeys loads every row matching the given key tuples, chunked so the
// IN list stays bounded. Missing keys are silently absent from the result.
func (e *BulkEngine[T]) FindByKeys(ctx context.Context, keys [][]any) ([]T, error) {
	out := make([]T, 0, len(keys))
	for start := 0; start < len(keys); start += e.opts.DeleteChunkSize {
		end := start + e.opts.DeleteChunkSize
		if end > len(keys) {
			end = len(keys)
		}
		cond, args := tupleIn(e.spec.KeyColumns, keys[start:end])
		var batch []T
		err := e.db.WithContext(ctx).Table(e.spec.Table).Where(cond, args...).Find(&batch).Error
		if err != nil {
			return nil, fmt.Errorf("find in %s: %w", e.spec.Table, err)
		}
		out = append(out, batch...)
	}
	return out, nil
}

// Count returns the number of rows in the table
func (e *BulkEngine[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := e.db.WithContext(ctx).Table(e.spec.Table).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", e.spec.Table, err)
	}
	return n, nil
}

// stagingSuffix returns a collision-free suffix for staging table names
func stagingSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// keyString folds a key tuple into a map key
func keyString(vals []any) string {
	var b strings.Builder
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		fmt.Fprintf(&b, "%v", v)
	}
	return b.String()
}

// tupleIn builds an IN condition over one or more columns with ? placeholders
func tupleIn(columns []string, tuples [][]any) (string, []any) {
	args := make([]any, 0, len(tuples)*len(columns))

	if len(columns) == 1 {
		marks := make([]string, len(tuples))
		for i, tup := range tuples {
			marks[i] = "?"
			args = append(args, tup[0])
		}
		return fmt.Sprintf("%s IN (%s)", pq.QuoteIdentifier(columns[0]), strings.Join(marks, ",")), args
	}

	single := "(" + strings.TrimSuffix(strings.Repeat("?,", len(columns)), ",") + ")"
	marks := make([]string, len(tuples))
	for i, tup := range tuples {
		marks[i] = single
		args = append(args, tup...)
	}
	return fmt.Sprintf("(%s) IN (%s)", quoteJoin(columns), strings.Join(marks, ",")), args
}

// quoteJoin quotes and comma-joins identifiers
func quoteJoin(columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return strings.Join(quoted, ", ")
}
