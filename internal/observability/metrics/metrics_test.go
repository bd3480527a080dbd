package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestEngagementMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngagementMetrics(reg, func() float64 { return 3 })

	m.ObserveTurn("probing", true)
	m.ObserveTurn("probing", true)
	m.ObserveScamDetected()
	m.ObserveIntel("phone", 2)
	m.ObserveIntel("upi", 0) // no-op
	m.ObserveCallback("ok")
	m.ObserveCallback("error")
	m.ObserveScriptedReply()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.turnsTotal.WithLabelValues("probing", "true")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.scamsDetected))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.intelExtracted.WithLabelValues("phone")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.callbackAttempts.WithLabelValues("error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.scriptedFallbacks))
}

func TestEngagementMetrics_NilReceiverSafe(t *testing.T) {
	var m *EngagementMetrics
	m.ObserveTurn("x", false)
	m.ObserveScamDetected()
	m.ObserveIntel("phone", 1)
	m.ObserveCallback("ok")
	m.ObserveScriptedReply()
}
