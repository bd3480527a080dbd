// Package callback decides when an intelligence report leaves the
// process and carries it to the monitoring endpoint. Reports are
// transient value objects rebuilt fresh from the session each time
// they fire; nothing here is persisted.
package callback

import (
	"time"

	"github.com/scambait/honeypot/internal/intel"
)

// EngagementMetrics summarizes how long and how deep the engagement
// ran.
type EngagementMetrics struct {
	TotalMessagesExchanged    int   `json:"totalMessagesExchanged"`
	EngagementDurationSeconds int64 `json:"engagementDurationSeconds"`
}

// Report is the full intelligence snapshot sent to the monitoring
// endpoint. Field names are part of the wire contract.
type Report struct {
	SessionID              string            `json:"sessionId"`
	Status                 string            `json:"status"`
	ScamDetected           bool              `json:"scamDetected"`
	TotalMessagesExchanged int               `json:"totalMessagesExchanged"`
	ExtractedIntelligence  *intel.Record     `json:"extractedIntelligence"`
	RedFlagsIdentified     []string          `json:"redFlagsIdentified"`
	EngagementMetrics      EngagementMetrics `json:"engagementMetrics"`
	AgentNotes             string            `json:"agentNotes"`
	Timestamp              time.Time         `json:"timestamp"`
}
