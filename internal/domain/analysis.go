package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/tsawler/litsense"
)

// Record is one stored analysis.
type Record struct {
	ID        uuid.UUID                `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	TextType  litsense.TextType        `json:"text_type"`
	TextHash  string                   `json:"text_hash"`
	Cached    bool                     `json:"cached"`
	Result    *litsense.AnalysisResult `json:"results"`
	Summary   string                   `json:"summary"`
}

// TextHash identifies a text and the type it was analyzed as. Identical
// requests share a hash, which keys the result cache.
func TextHash(textType litsense.TextType, text string) string {
	sum := sha256.Sum256([]byte(string(textType) + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

// ResultCache stores recent records by text hash.
type ResultCache interface {
	Get(ctx context.Context, hash string) (*Record, bool, error)
	Set(ctx context.Context, hash string, record *Record) error
}

// AnalysisRepository persists the analysis history.
type AnalysisRepository interface {
	Save(ctx context.Context, record *Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	Recent(ctx context.Context, limit int) ([]*Record, error)
}
