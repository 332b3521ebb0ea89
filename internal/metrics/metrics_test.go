package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()
	m.ObserveIntent("quotation")
	m.ObserveIntent("quotation")
	m.ObserveNegotiation("reject_lowball")
	m.ObserveTranslation("normalize", "ok", 150*time.Millisecond)

	if got := testutil.ToFloat64(m.IntentCounter("quotation")); got != 2 {
		t.Fatalf("expected 2 quotation intents, got %v", got)
	}
	if got := testutil.ToFloat64(m.NegotiationCounter("reject_lowball")); got != 1 {
		t.Fatalf("expected 1 reject, got %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		"quote_agent_chat_intents_total",
		"quote_agent_negotiation_outcomes_total",
		"quote_agent_translation_latency_seconds_bucket",
	} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("expected %s in exposition", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveIntent("quotation")
	m.ObserveNegotiation("accept_immediate")
	m.ObserveTranslation("localize", "error", time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Fatalf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}
