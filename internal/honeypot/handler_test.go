package honeypot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scambait/honeypot/internal/engagement"
	"github.com/scambait/honeypot/internal/generation"
)

func newTestRouter(t *testing.T, gen generation.Generator) (*chi.Mux, *Service) {
	t.Helper()
	svc, _ := newTestService(t, gen)
	h := NewHandler(svc, nil)

	r := chi.NewRouter()
	r.Post("/api/honeypot", h.Engage)
	r.Post("/api/endpoint", h.Engage)
	r.Get("/api/honeypot", h.Probe)
	r.Get("/api/session/{sessionID}", h.GetSession)
	r.Get("/api/sessions", h.ListSessions)
	r.Get("/health", h.Health)
	r.Get("/", h.Probe)
	return r, svc
}

func postJSON(t *testing.T, r http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func getJSON(t *testing.T, r http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestHandler_EngageStringMessage(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec, body := postJSON(t, r, "/api/honeypot",
		`{"sessionId":"h-1","message":"Congratulations! You won 25 lakh, pay the processing fee urgent"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, true, body["scamDetected"])
	assert.Equal(t, float64(1), body["messagesExchanged"])
	assert.Nil(t, body["callbackSent"])
	assert.NotEmpty(t, body["reply"])
}

func TestHandler_EngageObjectMessage(t *testing.T) {
	r, svc := newTestRouter(t, nil)

	rec, body := postJSON(t, r, "/api/endpoint",
		`{"sessionId":"h-2","message":{"sender":"scammer","text":"your account is blocked, share otp to verify","timestamp":1699999999}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	snap := svc.Inspect("h-2")
	require.NotNil(t, snap)
	assert.True(t, snap.ScamDetected)
}

func TestHandler_EngageMalformedBody(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	for _, body := range []string{``, `{`, `"just a string"`, `{"message": [1,2,3]}`} {
		rec, decoded := postJSON(t, r, "/api/honeypot", body)
		assert.Equal(t, http.StatusOK, rec.Code, "body %q", body)
		assert.Equal(t, "success", decoded["status"], "body %q", body)
		assert.NotEmpty(t, decoded["reply"], "body %q", body)
	}
}

func TestHandler_EngagePanicContained(t *testing.T) {
	gen := generatorFunc(func(_ context.Context, _ generation.Request) (string, error) {
		panic("model client blew up")
	})
	r, _ := newTestRouter(t, gen)

	rec, body := postJSON(t, r, "/api/honeypot",
		`{"sessionId":"h-3","message":"urgent! you won the lottery prize, pay the fee"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, engagement.NeutralReply, body["reply"])
}

func TestHandler_GetSession(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	postJSON(t, r, "/api/honeypot", `{"sessionId":"h-4","message":"hello"}`)

	rec, body := getJSON(t, r, "/api/session/h-4")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "h-4", body["sessionId"])
	assert.Equal(t, float64(1), body["messagesExchanged"])
	assert.NotNil(t, body["recentConversation"])
}

func TestHandler_GetSessionUnknown(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec, body := getJSON(t, r, "/api/session/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", body["status"])
}

func TestHandler_ListSessions(t *testing.T) {
	r, _ := newTestRouter(t, nil)
	postJSON(t, r, "/api/honeypot", `{"sessionId":"h-5","message":"hello"}`)
	postJSON(t, r, "/api/honeypot", `{"sessionId":"h-6","message":"hello"}`)

	rec, body := getJSON(t, r, "/api/sessions")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["activeSessions"])
	assert.Len(t, body["sessions"], 2)
}

func TestHandler_HealthAndProbes(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	rec, body := getJSON(t, r, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	for _, path := range []string{"/", "/api/honeypot"} {
		rec, body = getJSON(t, r, path)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", body["status"])
	}
}

func TestMessageText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain string", `"hello there"`, "hello there"},
		{"object with text", `{"text":" hi "}`, "hi"},
		{"object with content", `{"content":"hey"}`, "hey"},
		{"text wins over content", `{"text":"a","content":"b"}`, "a"},
		{"number", `42`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := EngageRequest{Message: json.RawMessage(tt.raw)}
			assert.Equal(t, tt.want, req.MessageText())
		})
	}
}
