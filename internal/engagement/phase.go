// Package engagement owns the deterministic engagement controls: the
// phase state machine, the persona catalog and router, and the
// scripted reply library. Nothing here consults the text generator;
// generated prose is rendering, never control flow.
package engagement

import "github.com/scambait/honeypot/internal/config"

// Phase is one of the four ordered engagement stages.
type Phase string

const (
	PhaseTrustBuilding Phase = "trust_building"
	PhaseProbing       Phase = "probing"
	PhaseExtraction    Phase = "extraction"
	PhaseWindingDown   Phase = "winding_down"
)

var phaseRank = map[Phase]int{
	PhaseTrustBuilding: 0,
	PhaseProbing:       1,
	PhaseExtraction:    2,
	PhaseWindingDown:   3,
}

// State is the slice of session state the machine reads. Turn is the
// number of the turn just completed (1-based).
type State struct {
	Phase                 Phase
	Turn                  int
	ScamDetected          bool
	IntelComplete         bool
	ExtractionEnteredTurn int // 0 until the extraction phase is first entered
}

// Machine advances sessions through the four phases. All thresholds
// come from configuration; the machine itself carries no session
// state and the same State input always yields the same output.
type Machine struct {
	probingTurn        int
	extractionTurn     int
	minExtractionTurns int
	maxMessages        int
}

// NewMachine builds a state machine from the configured thresholds.
func NewMachine(cfg *config.Config) *Machine {
	if cfg == nil {
		cfg = config.Load()
	}
	return &Machine{
		probingTurn:        cfg.ProbingTurn,
		extractionTurn:     cfg.ExtractionTurn,
		minExtractionTurns: cfg.MinExtractionTurns,
		maxMessages:        cfg.MaxMessages,
	}
}

// Next returns the phase the session should hold after the given
// state. Phases never regress, and no phase past trust_building is
// reachable until the session is flagged as a scam — the machine
// never escalates engagement against a benign exchange.
func (m *Machine) Next(s State) Phase {
	current := s.Phase
	if current == "" {
		current = PhaseTrustBuilding
	}
	if !s.ScamDetected {
		return current
	}

	target := PhaseTrustBuilding
	switch {
	case s.Turn >= m.maxMessages-1 || m.extractionDone(s):
		target = PhaseWindingDown
	case s.IntelComplete || s.Turn >= m.extractionTurn:
		target = PhaseExtraction
	case s.Turn >= m.probingTurn:
		target = PhaseProbing
	}

	if phaseRank[target] > phaseRank[current] {
		return target
	}
	return current
}

// extractionDone reports whether intelligence is complete and the
// session has already spent the minimum number of turns in the
// extraction phase, allowing a graceful close before the hard cap.
func (m *Machine) extractionDone(s State) bool {
	if !s.IntelComplete || s.ExtractionEnteredTurn == 0 {
		return false
	}
	return s.Turn-s.ExtractionEnteredTurn+1 >= m.minExtractionTurns
}

// Terminated reports whether the session has hit the hard cap. Phase
// value, never generated text, is the sole authority here.
func (m *Machine) Terminated(turn int) bool {
	return turn >= m.maxMessages
}
