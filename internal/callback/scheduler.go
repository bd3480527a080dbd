package callback

import (
	"fmt"
	"strings"
	"time"

	"github.com/scambait/honeypot/internal/intel"
)

// SessionView is the slice of session state the scheduler reads; the
// orchestrator hands it a snapshot taken under the session lock.
type SessionView struct {
	SessionID     string
	TurnCount     int
	ScamDetected  bool
	Phase         string
	CreatedAt     time.Time
	Intelligence  *intel.Record
	RedFlagLabels []string
}

// Scheduler applies the callback-trigger policy: a report fires on
// every turn from the configured minimum onward for scam-detected
// sessions, carrying the full current snapshot each time.
type Scheduler struct {
	minTurn int
	now     func() time.Time
}

// NewScheduler builds a scheduler; minTurn values below 1 fall back
// to 5.
func NewScheduler(minTurn int) *Scheduler {
	if minTurn < 1 {
		minTurn = 5
	}
	return &Scheduler{minTurn: minTurn, now: time.Now}
}

// ShouldReport is the whole trigger policy. It never fires before the
// minimum turn and never for a session that was never flagged.
func (s *Scheduler) ShouldReport(turn int, scamDetected bool) bool {
	return scamDetected && turn >= s.minTurn
}

// BuildReport assembles a fresh Report from the snapshot.
func (s *Scheduler) BuildReport(v SessionView) *Report {
	now := s.now()
	duration := int64(now.Sub(v.CreatedAt) / time.Second)

	return &Report{
		SessionID:              v.SessionID,
		Status:                 "success",
		ScamDetected:           v.ScamDetected,
		TotalMessagesExchanged: v.TurnCount,
		ExtractedIntelligence:  v.Intelligence,
		RedFlagsIdentified:     v.RedFlagLabels,
		EngagementMetrics: EngagementMetrics{
			TotalMessagesExchanged:    v.TurnCount,
			EngagementDurationSeconds: duration,
		},
		AgentNotes: AgentNotes(v, duration),
		Timestamp:  now,
	}
}

// AgentNotes renders the human-readable engagement summary used both
// in callback payloads and API responses.
func AgentNotes(v SessionView, durationSeconds int64) string {
	flags := strings.Join(v.RedFlagLabels, ", ")
	if flags == "" {
		flags = "none detected yet"
	}
	rec := v.Intelligence
	if rec == nil {
		rec = intel.NewRecord()
	}
	return fmt.Sprintf(
		"AI agent engaged suspected scammer for %d exchanges over %ds. Phase: %s. "+
			"Red flags identified: %s. Scam detected: %t. Intelligence: %d items "+
			"(UPI: %d, Phone: %d, Bank: %d, Links: %d, Email: %d).",
		v.TurnCount, durationSeconds, v.Phase, flags, v.ScamDetected,
		rec.IdentifierCount(),
		len(rec.UPIIDs), len(rec.PhoneNumbers), len(rec.BankAccounts),
		len(rec.PhishingLinks), len(rec.EmailAddresses),
	)
}
