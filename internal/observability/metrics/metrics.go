package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngagementMetrics exposes counters for the honeypot engagement flow.
type EngagementMetrics struct {
	turnsTotal        *prometheus.CounterVec
	scamsDetected     prometheus.Counter
	intelExtracted    *prometheus.CounterVec
	callbackAttempts  *prometheus.CounterVec
	scriptedFallbacks prometheus.Counter
	activeSessions    prometheus.GaugeFunc
}

// NewEngagementMetrics registers the honeypot metric set.
// sessionCount feeds the active-sessions gauge; pass nil to skip it.
func NewEngagementMetrics(reg prometheus.Registerer, sessionCount func() float64) *EngagementMetrics {
	m := &EngagementMetrics{
		turnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scambait",
			Subsystem: "engagement",
			Name:      "turns_total",
			Help:      "Total processed scammer turns",
		}, []string{"phase", "scam_detected"}),
		scamsDetected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scambait",
			Subsystem: "engagement",
			Name:      "scams_detected_total",
			Help:      "Sessions flipped to scam-detected",
		}),
		intelExtracted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scambait",
			Subsystem: "intel",
			Name:      "extracted_total",
			Help:      "Extracted intelligence entries by type",
		}, []string{"type"}),
		callbackAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scambait",
			Subsystem: "callback",
			Name:      "attempts_total",
			Help:      "Callback delivery attempts by outcome",
		}, []string{"status"}),
		scriptedFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scambait",
			Subsystem: "generation",
			Name:      "scripted_replies_total",
			Help:      "Replies served from the scripted library instead of the model",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.turnsTotal, m.scamsDetected, m.intelExtracted, m.callbackAttempts, m.scriptedFallbacks)

	if sessionCount != nil {
		m.activeSessions = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "scambait",
			Subsystem: "engagement",
			Name:      "active_sessions",
			Help:      "Sessions currently held in the store",
		}, sessionCount)
		reg.MustRegister(m.activeSessions)
	}
	return m
}

func (m *EngagementMetrics) ObserveTurn(phase string, scamDetected bool) {
	if m == nil {
		return
	}
	label := "false"
	if scamDetected {
		label = "true"
	}
	m.turnsTotal.WithLabelValues(phase, label).Inc()
}

func (m *EngagementMetrics) ObserveScamDetected() {
	if m == nil {
		return
	}
	m.scamsDetected.Inc()
}

func (m *EngagementMetrics) ObserveIntel(intelType string, count int) {
	if m == nil || count <= 0 {
		return
	}
	m.intelExtracted.WithLabelValues(intelType).Add(float64(count))
}

func (m *EngagementMetrics) ObserveCallback(status string) {
	if m == nil {
		return
	}
	m.callbackAttempts.WithLabelValues(status).Inc()
}

func (m *EngagementMetrics) ObserveScriptedReply() {
	if m == nil {
		return
	}
	m.scriptedFallbacks.Inc()
}
