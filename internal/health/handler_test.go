package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/noah-isme/studykart/internal/health"
)

type stubChecker struct {
	err error
}

func (c stubChecker) PingRedis(context.Context, time.Duration) error { return c.err }

func TestLive(t *testing.T) {
	h := health.Handler{}
	rr := httptest.NewRecorder()
	h.Live(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestReadyWithoutChecker(t *testing.T) {
	h := health.Handler{}
	rr := httptest.NewRecorder()
	h.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestReadyReportsRedisFailure(t *testing.T) {
	h := health.Handler{Checker: stubChecker{err: errors.New("connection refused")}}
	rr := httptest.NewRecorder()
	h.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
	var status map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if status["redis"] != "connection refused" {
		t.Fatalf("unexpected status: %v", status)
	}
}
