package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.TransactionProcessed()
	m.TransactionProcessed()
	m.TransactionFailed()
	m.ActivityEmitted("0x3::token::MintTokenEvent")
	m.EventsSkipped(3)
	m.EventsSkipped(0)

	if got := testutil.ToFloat64(m.transactionsProcessed); got != 2 {
		t.Fatalf("processed = %v", got)
	}
	if got := testutil.ToFloat64(m.transactionsFailed); got != 1 {
		t.Fatalf("failed = %v", got)
	}
	if got := testutil.ToFloat64(m.activitiesEmitted.WithLabelValues("0x3::token::MintTokenEvent")); got != 1 {
		t.Fatalf("activities = %v", got)
	}
	if got := testutil.ToFloat64(m.eventsSkipped); got != 3 {
		t.Fatalf("skipped = %v", got)
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.TransactionProcessed()
	m.TransactionFailed()
	m.ActivityEmitted("x")
	m.EventsSkipped(1)
}
