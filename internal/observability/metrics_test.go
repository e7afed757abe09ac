package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
)

func TestMetrics_GateDecisions(t *testing.T) {
	m := NewMetrics()
	m.RecordGateDecision("redirect", "expired")
	m.RecordGateDecision("redirect", "expired")
	m.RecordGateDecision("allow", "none")

	if got := testutil.ToFloat64(m.gateDecisions.WithLabelValues("redirect", "expired")); got != 2 {
		t.Errorf("redirect/expired: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.gateDecisions.WithLabelValues("allow", "none")); got != 1 {
		t.Errorf("allow/none: expected 1, got %v", got)
	}
}

func TestMetrics_Registry(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/dashboard/*", "GET", 200, 15*time.Millisecond)
	m.RecordError("/api/outlets/select", "POST", "FORBIDDEN")
	m.RecordLogin("success")

	for _, name := range []string{
		"pos_http_requests_total",
		"pos_http_request_duration_seconds",
		"pos_http_errors_total",
		"pos_logins_total",
	} {
		count, err := testutil.GatherAndCount(m.Registry(), name)
		if err != nil {
			t.Fatalf("gather %s: %v", name, err)
		}
		if count == 0 {
			t.Errorf("expected %s to be reported", name)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	m.RecordGateDecision("allow", "none")
	m.RecordLogin("success")
}

func TestRequestLogger_AssignsRequestID(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(RequestID(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected propagated request id, got %q", got)
	}
	if got := testutil.ToFloat64(m.requestsTotal.WithLabelValues("/ping", "GET", "200")); got != 2 {
		t.Errorf("requests counter: expected 2, got %v", got)
	}
}
