package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveUpstream("binance", OutcomeOK, 10*time.Millisecond)
	m.ObserveUpstream("binance", OutcomeOK, 20*time.Millisecond)
	m.ObserveUpstream("python", OutcomeHTTPError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("binance", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("python", OutcomeHTTPError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("python", OutcomeTransport)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.UpstreamDuration))
}

func TestSnapshotCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.SnapshotRecorded()
	m.SnapshotRecorded()
	m.SnapshotFailed()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SnapshotsRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SnapshotFailures))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveUpstream("binance", OutcomeOK, time.Second)
		m.SnapshotRecorded()
		m.SnapshotFailed()
	})
}

func TestHandler(t *testing.T) {
	reg := NewRegistry()
	m := New(reg)
	m.ObserveUpstream("binance", OutcomeOK, time.Millisecond)

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `coinfeed_upstream_requests_total{outcome="ok",service="binance"} 1`), text)
	assert.Contains(t, text, "go_goroutines")
}
