package clickhouse

import (
	"context"
	"fmt"

	clickhouse_go "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/ekko-ai/agentgate/internal/config"
	"github.com/ekko-ai/agentgate/internal/sentry"
)

// Conn is the slice of the clickhouse-go connection the request log
// repository actually uses. Keeping it narrow means tests and tooling never
// have to satisfy the full driver surface.
type Conn interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) driver.Row
	Select(ctx context.Context, dest any, query string, args ...any) error
	PrepareBatch(ctx context.Context, query string) (Batch, error)
}

// Batch covers the append-then-send flow used for bulk inserts.
type Batch interface {
	Append(v ...any) error
	Send() error
	Abort() error
}

type ClickHouseStore struct {
	conn   driver.Conn
	sentry *sentry.Service
}

func NewClickHouseStore(config *config.Configuration, sentryService *sentry.Service) (*ClickHouseStore, error) {
	conn, err := clickhouse_go.Open(config.ClickHouse.GetClientOptions())
	if err != nil {
		return nil, fmt.Errorf("init clickhouse client: %w", err)
	}

	return &ClickHouseStore{
		conn:   conn,
		sentry: sentryService,
	}, nil
}

// GetConn returns a connection that traces every operation it runs
func (s *ClickHouseStore) GetConn() Conn {
	return &tracedConn{
		conn:   s.conn,
		sentry: s.sentry,
	}
}

func (s *ClickHouseStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx)
}

func (s *ClickHouseStore) Close() error {
	return s.conn.Close()
}

// tracedConn wraps each operation of the narrow Conn interface in a
// ClickHouse span before delegating to the real connection
type tracedConn struct {
	conn   driver.Conn
	sentry *sentry.Service
}

// trace opens a span for one operation and returns the finish callback.
// With Sentry disabled both are passthroughs.
func (tc *tracedConn) trace(ctx context.Context, operation string, params map[string]interface{}) (context.Context, func()) {
	if tc.sentry == nil {
		return ctx, func() {}
	}

	span, ctx := tc.sentry.StartClickHouseSpan(ctx, operation, params)
	if span == nil {
		return ctx, func() {}
	}
	return ctx, span.Finish
}

func (tc *tracedConn) Exec(ctx context.Context, query string, args ...any) error {
	ctx, finish := tc.trace(ctx, "clickhouse.exec", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})
	defer finish()

	return tc.conn.Exec(ctx, query, args...)
}

func (tc *tracedConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	ctx, finish := tc.trace(ctx, "clickhouse.query", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})
	defer finish()

	return tc.conn.Query(ctx, query, args...)
}

func (tc *tracedConn) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	ctx, finish := tc.trace(ctx, "clickhouse.query_row", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})
	defer finish()

	return tc.conn.QueryRow(ctx, query, args...)
}

func (tc *tracedConn) Select(ctx context.Context, dest any, query string, args ...any) error {
	ctx, finish := tc.trace(ctx, "clickhouse.select", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})
	defer finish()

	return tc.conn.Select(ctx, dest, query, args...)
}

func (tc *tracedConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	ctx, finish := tc.trace(ctx, "clickhouse.prepare_batch", map[string]interface{}{
		"query": truncateQuery(query),
	})
	defer finish()

	batch, err := tc.conn.PrepareBatch(ctx, query)
	if err != nil {
		return nil, err
	}

	return &tracedBatch{
		batch:  batch,
		sentry: tc.sentry,
	}, nil
}

// tracedBatch traces the Send call, which is where the batch actually goes
// over the wire
type tracedBatch struct {
	batch  driver.Batch
	sentry *sentry.Service
}

func (tb *tracedBatch) Append(v ...any) error {
	return tb.batch.Append(v...)
}

func (tb *tracedBatch) Abort() error {
	return tb.batch.Abort()
}

func (tb *tracedBatch) Send() error {
	if tb.sentry == nil {
		return tb.batch.Send()
	}

	span, _ := tb.sentry.StartClickHouseSpan(context.Background(), "clickhouse.batch_send", nil)
	if span != nil {
		defer span.Finish()
	}

	return tb.batch.Send()
}

// Truncate query to avoid sending too much data to Sentry
func truncateQuery(query string) string {
	const maxQueryLength = 1000
	if len(query) > maxQueryLength {
		return query[:maxQueryLength] + "..."
	}
	return query
}
