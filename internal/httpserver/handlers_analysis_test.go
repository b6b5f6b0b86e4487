package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/domain"
	apperrors "github.com/tsawler/litsense/internal/errors"
)

func decodeError(t *testing.T, body []byte) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestHandleAnalyze(t *testing.T) {
	var gotType litsense.TextType
	srv := newTestServer(t, &mockAppService{
		analyzeFn: func(_ context.Context, text string, textType litsense.TextType) (*domain.Record, error) {
			gotType = textType
			return sampleRecord(), nil
		},
	})

	rec := serve(srv, http.MethodPost, "/analyze", `{"text": "Roses are red", "type": "poem"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, litsense.Poem, gotType)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, sampleRecord().ID, resp.ID)
	assert.False(t, resp.Cached)
	assert.Equal(t, "summary", resp.Summary)
	assert.Equal(t, litsense.Love, resp.Results.Emotions.PrimaryEmotion)
}

func TestHandleAnalyze_DefaultType(t *testing.T) {
	var gotType litsense.TextType
	srv := newTestServer(t, &mockAppService{
		analyzeFn: func(_ context.Context, _ string, textType litsense.TextType) (*domain.Record, error) {
			gotType = textType
			return sampleRecord(), nil
		},
	})

	rec := serve(srv, http.MethodPost, "/analyze", `{"text": "Some prose."}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, litsense.General, gotType)
}

func TestHandleAnalyze_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing text", `{"type": "poem"}`, "No text provided"},
		{"blank text", `{"text": "   "}`, "No text provided"},
		{"unknown type", `{"text": "hello", "type": "sonnet"}`, `unknown text type "sonnet"`},
		{"malformed body", `{"text": `, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &mockAppService{})

			rec := serve(srv, http.MethodPost, "/analyze", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec.Body.Bytes())
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantErr, resp.Error)
			assert.Equal(t, apperrors.TypeValidation, resp.Type)
		})
	}
}

func TestHandleAnalyze_StageFailure(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		analyzeFn: func(context.Context, string, litsense.TextType) (*domain.Record, error) {
			return nil, &litsense.StageError{
				Stage: litsense.StageSentiment,
				Err:   &litsense.CollaboratorFailure{Collaborator: "classifier", Err: errors.New("crashed")},
			}
		},
	})

	rec := serve(srv, http.MethodPost, "/analyze", `{"text": "hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec.Body.Bytes())
	assert.Equal(t, apperrors.TypeInternal, resp.Type)
	assert.Equal(t, "sentiment_scored", resp.Context["stage"])
}

func TestHandleAnalyze_BodyTooLarge(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	body := `{"text": "` + strings.Repeat("a", 2048) + `"}`
	rec := serve(srv, http.MethodPost, "/analyze", body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleAnalyze_RateLimited(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		analyzeFn: func(context.Context, string, litsense.TextType) (*domain.Record, error) {
			return sampleRecord(), nil
		},
	}, withRateLimit(0.001, 1))

	first := serve(srv, http.MethodPost, "/analyze", `{"text": "hello"}`)
	second := serve(srv, http.MethodPost, "/analyze", `{"text": "hello"}`)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "rate limit exceeded", decodeError(t, second.Body.Bytes()).Error)

	// History routes are not rate limited.
	assert.NotEqual(t, http.StatusTooManyRequests, serve(srv, http.MethodGet, "/analyses", "").Code)
}

func TestHandleCompare(t *testing.T) {
	var gotLabels []string
	srv := newTestServer(t, &mockAppService{
		compareFn: func(_ context.Context, texts []string, labels []string) ([]litsense.Comparison, error) {
			gotLabels = labels
			comparisons := make([]litsense.Comparison, len(texts))
			for i := range texts {
				comparisons[i] = litsense.Comparison{Label: "Text"}
			}
			return comparisons, nil
		},
	})

	rec := serve(srv, http.MethodPost, "/compare", `{"texts": ["a", "b"]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, gotLabels, "default labels are left to the analyzer")

	var resp compareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Comparisons, 2)
}

func TestHandleCompare_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"no texts", `{"texts": []}`, "No texts provided"},
		{"label mismatch", `{"texts": ["a", "b"], "labels": ["one"]}`, "got 1 labels for 2 texts"},
		{"too many", `{"texts": ["a","a","a","a","a","a","a","a","a","a","a"]}`, "at most 10 texts can be compared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &mockAppService{})

			rec := serve(srv, http.MethodPost, "/compare", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, rec.Body.Bytes()).Error)
		})
	}
}

func TestHandleCompare_EmptyText(t *testing.T) {
	srv := newTestServer(t, &mockAppService{
		compareFn: func(context.Context, []string, []string) ([]litsense.Comparison, error) {
			return nil, &litsense.InsufficientInputError{Stage: litsense.StageStart, Reason: "Text 2 is empty"}
		},
	})

	rec := serve(srv, http.MethodPost, "/compare", `{"texts": ["a", " "]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Text 2 is empty", decodeError(t, rec.Body.Bytes()).Error)
}

func TestHandleGetAnalysis(t *testing.T) {
	record := sampleRecord()
	srv := newTestServer(t, &mockAppService{
		getFn: func(_ context.Context, id uuid.UUID) (*domain.Record, error) {
			if id == record.ID {
				return record, nil
			}
			return nil, domain.ErrAnalysisNotFound
		},
	})

	rec := serve(srv, http.MethodGet, "/analyses/"+record.ID.String(), "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, record.ID, resp.ID)

	rec = serve(srv, http.MethodGet, "/analyses/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(srv, http.MethodGet, "/analyses/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHistoryDisabled(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	for _, target := range []string{"/analyses", "/analyses/" + uuid.New().String()} {
		rec := serve(srv, http.MethodGet, target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Equal(t, apperrors.TypeUnavailable, decodeError(t, rec.Body.Bytes()).Type)
	}
}

func TestHandleRecent(t *testing.T) {
	var gotLimit int
	srv := newTestServer(t, &mockAppService{
		recentFn: func(_ context.Context, limit int) ([]*domain.Record, error) {
			gotLimit = limit
			return []*domain.Record{sampleRecord()}, nil
		},
	})

	rec := serve(srv, http.MethodGet, "/analyses?limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, gotLimit)

	var resp recentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Analyses, 1)
	assert.Equal(t, litsense.Positive, resp.Analyses[0].OverallSentiment)
	assert.Equal(t, litsense.Love, resp.Analyses[0].PrimaryEmotion)

	rec = serve(srv, http.MethodGet, "/analyses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, gotLimit, "the service picks the default")

	rec = serve(srv, http.MethodGet, "/analyses?limit=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
