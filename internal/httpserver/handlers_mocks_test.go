package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/tsawler/litsense"
	"github.com/tsawler/litsense/internal/config"
	"github.com/tsawler/litsense/internal/domain"
)

type mockAppService struct {
	analyzeFn func(ctx context.Context, text string, textType litsense.TextType) (*domain.Record, error)
	compareFn func(ctx context.Context, texts []string, labels []string) ([]litsense.Comparison, error)
	getFn     func(ctx context.Context, id uuid.UUID) (*domain.Record, error)
	recentFn  func(ctx context.Context, limit int) ([]*domain.Record, error)
}

func (m *mockAppService) Analyze(ctx context.Context, text string, textType litsense.TextType) (*domain.Record, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, text, textType)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) Compare(ctx context.Context, texts []string, labels []string) ([]litsense.Comparison, error) {
	if m.compareFn != nil {
		return m.compareFn(ctx, texts, labels)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAppService) Get(ctx context.Context, id uuid.UUID) (*domain.Record, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrHistoryDisabled
}

func (m *mockAppService) Recent(ctx context.Context, limit int) ([]*domain.Record, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, limit)
	}
	return nil, domain.ErrHistoryDisabled
}

var testStart = time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		MaxBodySize:    "1K",
	}
}

type testServerOpt func(cfg *config.Config, opts *[]ServerOpt)

func withHealthChecks(checks ...HealthCheck) testServerOpt {
	return func(_ *config.Config, opts *[]ServerOpt) {
		*opts = append(*opts, WithHealthChecks(checks...))
	}
}

func withRateLimit(rps float64, burst int) testServerOpt {
	return func(cfg *config.Config, _ *[]ServerOpt) {
		cfg.RateLimitRPS = rps
		cfg.RateLimitBurst = burst
	}
}

func newTestServer(t *testing.T, app appService, testOpts ...testServerOpt) *Server {
	t.Helper()
	cfg := testConfig()
	opts := []ServerOpt{WithClock(clockwork.NewFakeClockAt(testStart))}
	for _, o := range testOpts {
		o(cfg, &opts)
	}
	return NewServer(cfg, app, opts...)
}

// serve sends a request through the full middleware stack.
func serve(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func sampleRecord() *domain.Record {
	return &domain.Record{
		ID:        uuid.MustParse("6f1c2d7e-8a3b-4c5d-9e0f-112233445566"),
		CreatedAt: testStart,
		TextType:  litsense.Poem,
		Result: &litsense.AnalysisResult{
			Metadata:  litsense.Metadata{AnalyzedAt: testStart, TextType: litsense.Poem, TextLength: 13},
			Sentiment: litsense.DocumentSentiment{OverallSentiment: litsense.Positive},
			Emotions:  litsense.EmotionAnalysis{PrimaryEmotion: litsense.Love, Determined: true},
		},
		Summary: "summary",
	}
}
