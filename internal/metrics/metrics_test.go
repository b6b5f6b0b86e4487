package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/litsense"
)

func TestMetricsRegistration(t *testing.T) {
	metrics := []prometheus.Collector{
		AnalysesTotal,
		AnalysisDuration,
		StageDuration,
		CacheOperationsTotal,
		HistoryOperationsTotal,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RateLimitedTotal,
	}

	for _, metric := range metrics {
		desc := make(chan *prometheus.Desc, 1)
		metric.Describe(desc)
		close(desc)

		require.NotNil(t, <-desc, "metric should have a valid descriptor")
	}
}

func TestCounterMetrics(t *testing.T) {
	tests := []struct {
		name    string
		metric  *prometheus.CounterVec
		labels  prometheus.Labels
		incBy   float64
		wantVal float64
	}{
		{
			name:    "analyses counter",
			metric:  AnalysesTotal,
			labels:  prometheus.Labels{"text_type": "poem", "status": "success"},
			incBy:   3,
			wantVal: 3,
		},
		{
			name:    "cache counter",
			metric:  CacheOperationsTotal,
			labels:  prometheus.Labels{"result": "hit"},
			incBy:   2,
			wantVal: 2,
		},
		{
			name:    "history counter",
			metric:  HistoryOperationsTotal,
			labels:  prometheus.Labels{"operation": "save", "status": "error"},
			incBy:   1,
			wantVal: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.metric.Reset()
			tt.metric.With(tt.labels).Add(tt.incBy)
			assert.Equal(t, tt.wantVal, testutil.ToFloat64(tt.metric.With(tt.labels)))
		})
	}
}

func TestStageObserver(t *testing.T) {
	StageDuration.Reset()
	observe := StageObserver()

	observe(litsense.StageSentiment, 20*time.Millisecond)
	observe(litsense.StageSentiment, 30*time.Millisecond)
	observe(litsense.StageEmotion, time.Millisecond)
	observe(litsense.StageComplete, 60*time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(StageDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(AnalysisDuration))
}
