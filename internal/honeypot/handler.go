package honeypot

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scambait/honeypot/pkg/logging"
)

// Handler exposes the engagement engine over HTTP. The engage endpoint
// is a containment boundary: whatever goes wrong inside, the caller
// gets HTTP 200 with a plausible reply. Error responses would tell a
// scammer they are talking to a machine.
type Handler struct {
	service *Service
	logger  *logging.Logger
	started time.Time
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if service == nil {
		panic("honeypot: NewHandler requires a service")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger, started: time.Now()}
}

// Engage handles POST /api/honeypot. Malformed bodies, missing fields
// and internal panics all produce the same success envelope.
func (h *Handler) Engage(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("engage panic recovered", "panic", rec)
			h.writeJSON(w, http.StatusOK, SafeResponse())
		}
	}()

	var req EngageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("engage body rejected", "error", err)
		h.writeJSON(w, http.StatusOK, SafeResponse())
		return
	}

	resp := h.service.Engage(r.Context(), req.SessionID, req.MessageText())
	h.writeJSON(w, http.StatusOK, resp)
}

// GetSession handles GET /api/session/{sessionID}. This is the one
// read surface where a 404 is allowed; it faces investigators, not
// scammers.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	snap := h.service.Inspect(sessionID)
	if snap == nil {
		h.writeJSON(w, http.StatusNotFound, map[string]string{
			"status":  "error",
			"message": "session not found",
		})
		return
	}

	conversation := snap.Conversation
	if len(conversation) > 5 {
		conversation = conversation[len(conversation)-5:]
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"sessionId":             snap.ID,
		"phase":                 snap.Phase,
		"persona":               snap.PersonaName,
		"scamDetected":          snap.ScamDetected,
		"messagesExchanged":     snap.TurnCount,
		"terminated":            snap.Terminated,
		"extractedIntelligence": snap.Intelligence,
		"redFlagsIdentified":    snap.RedFlagLabels(),
		"callbackSentAt":        snap.LastCallbackAt,
		"createdAt":             snap.CreatedAt,
		"recentConversation":    conversation,
	})
}

// ListSessions handles GET /api/sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	summaries := h.service.Sessions()
	h.writeJSON(w, http.StatusOK, map[string]any{
		"activeSessions": len(summaries),
		"sessions":       summaries,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"service":        "agentic-honeypot",
		"activeSessions": h.service.SessionCount(),
		"uptimeSeconds":  int64(time.Since(h.started) / time.Second),
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
	})
}

// Probe answers GET probes on / and /api/honeypot so platform health
// checkers and curious scanners get something bland.
func (h *Handler) Probe(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "agentic-honeypot",
		"message": "POST /api/honeypot to engage",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response encode failed", "error", err)
	}
}
