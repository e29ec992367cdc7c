package click

import (
	"context"
	"fmt"

	"kawaiiCalc/internal/domain"
	"kawaiiCalc/internal/ports"
)

var _ ports.IOperationAnalytics = (*OperationWriter)(nil)

const evaluationsTable = "calculator_evaluations"

// OperationWriter пишет вычисления в ClickHouse для аналитики (GROUP BY operation, по сессиям и по времени).
type OperationWriter struct {
	db *Client
}

// NewOperationWriter создаёт писатель вычислений.
func NewOperationWriter(db *Client) *OperationWriter {
	return &OperationWriter{db: db}
}

func (w *OperationWriter) table() string {
	return w.db.database + "." + evaluationsTable
}

// EnsureTable создаёт таблицу, если её ещё нет. Вызывается один раз при старте приложения.
func (w *OperationWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			session_id String,
			number1 Float64,
			number2 Float64,
			operation LowCardinality(String),
			result Float64,
			divide_by_zero UInt8,
			created_at DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (created_at, operation)`,
		w.table(),
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteOperation реализует ports.IOperationAnalytics: пишет одно вычисление.
func (w *OperationWriter) WriteOperation(ctx context.Context, op domain.Operation) error {
	var divideByZero uint8
	if op.Message == domain.MessageDivisionByZero {
		divideByZero = 1
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (session_id, number1, number2, operation, result, divide_by_zero, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		w.table(),
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		op.SessionID, op.Number1, op.Number2, op.Operation, op.Result, divideByZero, op.Timestamp)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// CountByOperation возвращает число вычислений по каждой операции.
func (w *OperationWriter) CountByOperation(ctx context.Context) (map[string]uint64, error) {
	rows, err := w.db.DB().QueryContext(ctx,
		fmt.Sprintf("SELECT operation, count() FROM %s GROUP BY operation", w.table()))
	if err != nil {
		return nil, fmt.Errorf("count by operation: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]uint64)
	for rows.Next() {
		var op string
		var n uint64
		if err := rows.Scan(&op, &n); err != nil {
			return nil, err
		}
		counts[op] = n
	}
	return counts, rows.Err()
}
