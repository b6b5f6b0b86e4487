package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/domain"
	"github.com/tsawler/litsense/internal/metrics"
)

const (
	insertAnalysis = `
INSERT INTO analyses (id, created_at, text_type, text_hash, result, summary)
VALUES ($1, $2, $3, $4, $5, $6)`

	selectAnalysis = `
SELECT id, created_at, text_type, text_hash, result, summary
FROM analyses
WHERE id = $1`

	selectRecentAnalyses = `
SELECT id, created_at, text_type, text_hash, result, summary
FROM analyses
ORDER BY created_at DESC, id
LIMIT $1`
)

// AnalysisRepo persists analysis records. The result is stored as JSONB.
type AnalysisRepo struct {
	pool *pgxpool.Pool
}

func NewAnalysisRepo(pool *pgxpool.Pool) *AnalysisRepo {
	return &AnalysisRepo{pool: pool}
}

func (r *AnalysisRepo) Save(ctx context.Context, record *domain.Record) error {
	_, err := r.pool.Exec(ctx, insertAnalysis,
		record.ID, record.CreatedAt, string(record.TextType), record.TextHash, record.Result, record.Summary)
	if err != nil {
		metrics.HistoryOperationsTotal.WithLabelValues("save", "error").Inc()
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	metrics.HistoryOperationsTotal.WithLabelValues("save", "success").Inc()
	return nil
}

func (r *AnalysisRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	record, err := scanRecord(r.pool.QueryRow(ctx, selectAnalysis, id))
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.HistoryOperationsTotal.WithLabelValues("get", "not_found").Inc()
		return nil, domain.ErrAnalysisNotFound
	}
	if err != nil {
		metrics.HistoryOperationsTotal.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	metrics.HistoryOperationsTotal.WithLabelValues("get", "success").Inc()
	return record, nil
}

func (r *AnalysisRepo) Recent(ctx context.Context, limit int) ([]*domain.Record, error) {
	rows, err := r.pool.Query(ctx, selectRecentAnalyses, limit)
	if err != nil {
		metrics.HistoryOperationsTotal.WithLabelValues("recent", "error").Inc()
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*domain.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		metrics.HistoryOperationsTotal.WithLabelValues("recent", "error").Inc()
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	metrics.HistoryOperationsTotal.WithLabelValues("recent", "success").Inc()
	return records, nil
}

// Ping verifies the database connection.
func (r *AnalysisRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var (
		record   domain.Record
		textType string
		result   litsense.AnalysisResult
	)
	if err := row.Scan(&record.ID, &record.CreatedAt, &textType, &record.TextHash, &result, &record.Summary); err != nil {
		return nil, err
	}
	record.TextType = litsense.TextType(textType)
	record.CreatedAt = record.CreatedAt.UTC()
	record.Result = &result
	return &record, nil
}
