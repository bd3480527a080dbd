// Package generation renders in-character persona replies. The rest
// of the system treats it purely as a rendering step: phase, persona,
// and callback decisions are all made before anything here runs, and
// nothing here feeds back into control flow.
package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/scambait/honeypot/internal/engagement"
)

// Exchange is one prior turn: the scammer's message and the reply the
// honeypot sent.
type Exchange struct {
	Scammer string `json:"scammer"`
	Agent   string `json:"agent"`
}

// Request carries everything the generator needs for one reply.
type Request struct {
	Persona engagement.Persona
	Phase   engagement.Phase
	Turn    int
	// Missing is the ordered missing-intelligence directive; it
	// steers the reply, it never dictates it.
	Missing []string
	History []Exchange
	Message string
}

// Generator turns a Request into one in-character reply.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// historyWindow bounds how many prior exchanges are replayed into the
// model context.
const historyWindow = 6

// BuildSystemPrompt assembles the persona directives, the phase
// instruction, the missing-intelligence steer, and the turn rules
// into one system message.
func BuildSystemPrompt(req Request) string {
	missing := "any new contact detail"
	if len(req.Missing) > 0 {
		missing = strings.Join(req.Missing, ", ")
	}
	return fmt.Sprintf("%s\n\nCURRENT PHASE: %s\n\nSTILL MISSING: We still need their %s.\n\n%s",
		req.Persona.Directives,
		engagement.PhaseInstruction(req.Phase, req.Turn),
		missing,
		engagement.GenerationRules(req.Turn),
	)
}

// Scripted is a Generator that replays the deterministic reply
// library; it is the terminal fallback and can never fail.
type Scripted struct{}

// Generate returns the turn's scripted probe line.
func (Scripted) Generate(_ context.Context, req Request) (string, error) {
	return engagement.ScriptedReply(req.Turn), nil
}
