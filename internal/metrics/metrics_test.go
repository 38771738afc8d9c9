package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerServesMetrics(t *testing.T) {
	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()

	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordOptimization(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordOptimization("alimenticio", 250*time.Millisecond, 87, 0.82)
	})
}

func TestRecordTraining(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordTraining("succeeded", 3*time.Second, 5, 0.61)
		RecordTraining("failed", time.Second, 0, 0)
	})
}

func TestRecordCacheHitAndMiss(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordCacheHit()
		RecordCacheMiss()
	})
}

func TestRecordStoreQuery(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordStoreQuery("find", "users", 50*time.Millisecond)
	})
}

func TestRecordRecommendationsServed(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordRecommendationsServed(5)
	})
}

func TestRecordProgressBroadcastAndActiveConnections(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordProgressBroadcast(10 * time.Millisecond)
		SetActiveProgressConnections(3)
	})
}
