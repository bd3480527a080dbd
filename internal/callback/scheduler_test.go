package callback

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scambait/honeypot/internal/intel"
)

func TestScheduler_ShouldReport(t *testing.T) {
	s := NewScheduler(5)

	tests := []struct {
		name         string
		turn         int
		scamDetected bool
		want         bool
	}{
		{"before minimum turn", 4, true, false},
		{"at minimum turn", 5, true, true},
		{"every turn after minimum", 6, true, true},
		{"at hard cap", 10, true, true},
		{"benign session never reports", 9, false, false},
		{"turn zero", 0, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ShouldReport(tt.turn, tt.scamDetected))
		})
	}
}

func TestScheduler_BuildReport(t *testing.T) {
	s := NewScheduler(5)
	fixed := time.Date(2026, 2, 1, 12, 0, 30, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	rec := intel.NewRecord()
	rec.UPIIDs = append(rec.UPIIDs, "scam@paytm")
	rec.PhoneNumbers = append(rec.PhoneNumbers, "9876543210")

	report := s.BuildReport(SessionView{
		SessionID:     "sess-9",
		TurnCount:     6,
		ScamDetected:  true,
		Phase:         "extraction",
		CreatedAt:     fixed.Add(-90 * time.Second),
		Intelligence:  rec,
		RedFlagLabels: []string{"Urgency / pressure tactics"},
	})

	assert.Equal(t, "sess-9", report.SessionID)
	assert.Equal(t, "success", report.Status)
	assert.Equal(t, 6, report.TotalMessagesExchanged)
	assert.Equal(t, int64(90), report.EngagementMetrics.EngagementDurationSeconds)
	assert.Equal(t, fixed, report.Timestamp)
	assert.Contains(t, report.AgentNotes, "6 exchanges over 90s")
	assert.Contains(t, report.AgentNotes, "Phase: extraction")
	assert.Contains(t, report.AgentNotes, "UPI: 1, Phone: 1")
}

func TestAgentNotes_NoFlags(t *testing.T) {
	notes := AgentNotes(SessionView{SessionID: "x", Phase: "trust_building"}, 0)
	assert.Contains(t, notes, "none detected yet")
}

func TestHTTPTransport_Deliver(t *testing.T) {
	var received Report
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	transport := NewHTTPTransport(srv.URL, time.Second, nil)
	report := NewScheduler(5).BuildReport(SessionView{
		SessionID:    "sess-1",
		TurnCount:    5,
		ScamDetected: true,
		Phase:        "extraction",
		CreatedAt:    time.Now(),
		Intelligence: intel.NewRecord(),
	})

	require.NoError(t, transport.Deliver(context.Background(), report))
	assert.Equal(t, "sess-1", received.SessionID)
	assert.NotNil(t, received.ExtractedIntelligence)
}

func TestHTTPTransport_DeliverFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	transport := NewHTTPTransport(srv.URL, time.Second, nil)
	err := transport.Deliver(context.Background(), &Report{SessionID: "s"})
	assert.Error(t, err)

	// Unreachable endpoint also errors instead of hanging.
	dead := NewHTTPTransport("http://127.0.0.1:1", 200*time.Millisecond, nil)
	err = dead.Deliver(context.Background(), &Report{SessionID: "s"})
	assert.Error(t, err)
}
