package generation

import (
	"errors"
	"strings"
)

// maxReplyChars caps generated replies; anything longer reads like a
// model dumping its prompt, not a confused pensioner texting.
const maxReplyChars = 400

// forbiddenFragments are reasoning-leak and character-break markers.
// A reply containing any of them is discarded in favour of a scripted
// line.
var forbiddenFragments = []string{
	"the user", "the scammer", "user wants", "scammer wants",
	"training data", "output format", "instructions",
	"as an ai", "as a language model", "i'm an ai",
	"the victim", "the agent", "honeypot",
	"generate", "scenario", "realistic", "respond with",
	"here is", "here's the", "the response",
	"i am calling from", "this is bank", "i am from bank",
	"we need your", "please provide your", "share your",
}

var (
	// ErrEmptyReply is returned when the model produced nothing usable.
	ErrEmptyReply = errors.New("generation: empty reply")
	// ErrGuardedReply is returned when the reply tripped the output guard.
	ErrGuardedReply = errors.New("generation: reply rejected by output guard")
)

// GuardReply validates a generated reply in-character. It returns the
// trimmed reply, or an error when the reply must not be sent.
func GuardReply(reply string) (string, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return "", ErrEmptyReply
	}
	if len(reply) > maxReplyChars {
		return "", ErrGuardedReply
	}
	lower := strings.ToLower(reply)
	for _, fragment := range forbiddenFragments {
		if strings.Contains(lower, fragment) {
			return "", ErrGuardedReply
		}
	}
	return reply, nil
}
