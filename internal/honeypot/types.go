// Package honeypot wires the engagement pipeline together: one
// inbound scammer message in, one in-character reply plus updated
// session state out. The HTTP handler in this package is the
// containment boundary — no internal fault escapes to the caller.
package honeypot

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/scambait/honeypot/internal/callback"
	"github.com/scambait/honeypot/internal/intel"
)

// InboundMessage is one message of the conversation as the caller
// sends it. Timestamp is accepted as either a number or a string and
// is not interpreted.
type InboundMessage struct {
	Sender    string          `json:"sender"`
	Text      string          `json:"text"`
	Content   string          `json:"content"`
	Timestamp json.RawMessage `json:"timestamp"`
}

// EngageRequest is the inbound engagement payload. Message is kept
// raw because callers send either a bare string or a message object.
type EngageRequest struct {
	SessionID           string           `json:"sessionId"`
	Message             json.RawMessage  `json:"message"`
	ConversationHistory []InboundMessage `json:"conversationHistory"`
	Metadata            RequestMetadata  `json:"metadata"`
}

// RequestMetadata carries channel hints; the engine does not branch
// on them but they are logged for investigators.
type RequestMetadata struct {
	Channel  string `json:"channel"`
	Language string `json:"language"`
	Locale   string `json:"locale"`
}

// MessageText extracts the message text from the raw payload,
// accepting a plain string or an object with text/content fields.
func (r *EngageRequest) MessageText() string {
	raw := r.Message
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strings.TrimSpace(asString)
	}
	var asObject InboundMessage
	if err := json.Unmarshal(raw, &asObject); err == nil {
		if asObject.Text != "" {
			return strings.TrimSpace(asObject.Text)
		}
		return strings.TrimSpace(asObject.Content)
	}
	return ""
}

// EngageResponse is the outbound envelope. The endpoint always
// returns this shape with Status "success", whatever happened inside.
type EngageResponse struct {
	Status                string                      `json:"status"`
	Reply                 string                      `json:"reply"`
	Persona               string                      `json:"persona,omitempty"`
	ScamDetected          bool                        `json:"scamDetected"`
	MessagesExchanged     int                         `json:"messagesExchanged"`
	CallbackSent          *time.Time                  `json:"callbackSent"`
	ExtractedIntelligence *intel.Record               `json:"extractedIntelligence,omitempty"`
	RedFlagsIdentified    []string                    `json:"redFlagsIdentified"`
	EngagementMetrics     *callback.EngagementMetrics `json:"engagementMetrics,omitempty"`
	AgentNotes            string                      `json:"agentNotes,omitempty"`
}
