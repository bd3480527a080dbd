// Package session owns the per-engagement state and the keyed store
// that is the system's single concurrency boundary. The store is the
// sole mutator of Session records; everything else works on copies.
package session

import (
	"time"

	"github.com/scambait/honeypot/internal/engagement"
	"github.com/scambait/honeypot/internal/intel"
	"github.com/scambait/honeypot/internal/patterns"
)

// Exchange is one completed turn of the transcript.
type Exchange struct {
	Scammer   string    `json:"scammer"`
	Agent     string    `json:"agent"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the full state of one engagement. All fields marked
// monotonic only ever move one way: ScamDetected and Terminated flip
// to true once, RedFlags and Intelligence only grow, Phase only
// advances.
type Session struct {
	ID        string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`

	Phase          engagement.Phase `json:"phase"`
	TurnCount      int              `json:"turnCount"`
	LastActivityAt time.Time        `json:"lastActivityAt"`

	// PersonaName is empty until first assignment and immutable after.
	PersonaName string `json:"persona,omitempty"`

	ScamDetected bool                       `json:"scamDetected"`
	Evidence     []string                   `json:"evidence,omitempty"`
	RedFlags     []patterns.RedFlagCategory `json:"redFlags"`
	Intelligence *intel.Record              `json:"extractedIntelligence"`

	// ExtractionEnteredTurn records when the extraction phase began;
	// zero until then. The state machine needs it for early wind-down.
	ExtractionEnteredTurn int `json:"-"`

	// LastCallbackAt tracks "last attempted at" — it is set when a
	// callback is dispatched, independent of transport success.
	LastCallbackAt *time.Time `json:"callbackSentAt"`

	Terminated bool `json:"terminated"`

	Conversation []Exchange `json:"-"`
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:             id,
		CreatedAt:      now,
		Phase:          engagement.PhaseTrustBuilding,
		LastActivityAt: now,
		RedFlags:       []patterns.RedFlagCategory{},
		Intelligence:   intel.NewRecord(),
	}
}

// AddRedFlags unions categories into the session set, preserving
// discovery order.
func (s *Session) AddRedFlags(flags []patterns.RedFlagCategory) {
	for _, flag := range flags {
		found := false
		for _, have := range s.RedFlags {
			if have == flag {
				found = true
				break
			}
		}
		if !found {
			s.RedFlags = append(s.RedFlags, flag)
		}
	}
}

// AddEvidence unions detector layer ids into the evidence set.
func (s *Session) AddEvidence(layers []string) {
	for _, layer := range layers {
		found := false
		for _, have := range s.Evidence {
			if have == layer {
				found = true
				break
			}
		}
		if !found {
			s.Evidence = append(s.Evidence, layer)
		}
	}
}

// RedFlagLabels renders the accumulated categories as human-readable
// labels in discovery order.
func (s *Session) RedFlagLabels() []string {
	labels := make([]string, 0, len(s.RedFlags))
	for _, flag := range s.RedFlags {
		labels = append(labels, patterns.RedFlagLabel(flag))
	}
	return labels
}

// Snapshot returns a deep copy safe to use outside the store's lock.
func (s *Session) Snapshot() *Session {
	cp := *s
	cp.Evidence = append([]string{}, s.Evidence...)
	cp.RedFlags = append([]patterns.RedFlagCategory{}, s.RedFlags...)
	cp.Intelligence = s.Intelligence.Clone()
	cp.Conversation = append([]Exchange{}, s.Conversation...)
	if s.LastCallbackAt != nil {
		t := *s.LastCallbackAt
		cp.LastCallbackAt = &t
	}
	return &cp
}

// Summary is the listing view of a session.
type Summary struct {
	SessionID    string           `json:"sessionId"`
	Persona      string           `json:"persona"`
	Messages     int              `json:"messages"`
	ScamDetected bool             `json:"scamDetected"`
	Phase        engagement.Phase `json:"state"`
	Terminated   bool             `json:"terminated"`
}

func (s *Session) summary() Summary {
	return Summary{
		SessionID:    s.ID,
		Persona:      s.PersonaName,
		Messages:     s.TurnCount,
		ScamDetected: s.ScamDetected,
		Phase:        s.Phase,
		Terminated:   s.Terminated,
	}
}
