package honeypot

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scambait/honeypot/internal/callback"
	"github.com/scambait/honeypot/internal/detection"
	"github.com/scambait/honeypot/internal/engagement"
	"github.com/scambait/honeypot/internal/generation"
	"github.com/scambait/honeypot/internal/intel"
	"github.com/scambait/honeypot/internal/observability/metrics"
	"github.com/scambait/honeypot/internal/session"
	"github.com/scambait/honeypot/pkg/logging"
)

// Service runs one turn of the engagement loop. All session mutations
// for a message happen in a single critical section under the store's
// per-session lock; the generator and the callback transport only ever
// see immutable snapshots.
type Service struct {
	store     *session.Store
	detector  *detection.Detector
	extractor *intel.Extractor
	machine   *engagement.Machine
	scheduler *callback.Scheduler
	transport callback.Transport
	generator generation.Generator
	archive   *session.TranscriptArchive
	metrics   *metrics.EngagementMetrics
	logger    *logging.Logger
	now       func() time.Time
	wg        sync.WaitGroup
}

// ServiceDeps carries the service's collaborators. Transport, archive
// and metrics are optional; everything else must be set.
type ServiceDeps struct {
	Store     *session.Store
	Detector  *detection.Detector
	Extractor *intel.Extractor
	Machine   *engagement.Machine
	Scheduler *callback.Scheduler
	Transport callback.Transport
	Generator generation.Generator
	Archive   *session.TranscriptArchive
	Metrics   *metrics.EngagementMetrics
	Logger    *logging.Logger
}

func NewService(deps ServiceDeps) *Service {
	if deps.Store == nil || deps.Detector == nil || deps.Extractor == nil ||
		deps.Machine == nil || deps.Scheduler == nil || deps.Generator == nil {
		panic("honeypot: NewService requires store, detector, extractor, machine, scheduler and generator")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		store:     deps.Store,
		detector:  deps.Detector,
		extractor: deps.Extractor,
		machine:   deps.Machine,
		scheduler: deps.Scheduler,
		transport: deps.Transport,
		generator: deps.Generator,
		archive:   deps.Archive,
		metrics:   deps.Metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Engage processes one inbound scammer message and returns the full
// response envelope. It never returns an error: every failure inside
// the pipeline degrades to a safe in-character or neutral reply.
func (s *Service) Engage(ctx context.Context, sessionID, text string) *EngageResponse {
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	text = strings.TrimSpace(text)
	log := s.logger.WithSession(sessionID)

	// Detection, red-flag matching and extraction are pure functions
	// of the message text, so they run before the session lock.
	var (
		result detection.Result
		flags  = detection.IdentifyRedFlags(text)
		perMsg *intel.Record
	)
	if text != "" {
		result = s.detector.Detect(ctx, text)
		perMsg = s.extractor.Extract(ctx, text)
	}

	var (
		snap         *session.Session
		closing      bool
		shouldReport bool
		intelDeltas  map[string]int
	)
	s.store.Update(sessionID, func(sess *session.Session) {
		if sess.Terminated || s.machine.Terminated(sess.TurnCount) {
			sess.Terminated = true
			closing = true
			snap = sess.Snapshot()
			return
		}

		if result.IsScam && !sess.ScamDetected {
			sess.ScamDetected = true
			s.metrics.ObserveScamDetected()
			log.Info("scam detected", "evidence", result.Evidence)
		}
		sess.AddEvidence(layerStrings(result.Evidence))
		sess.AddRedFlags(flags)
		if perMsg != nil {
			before := typeCounts(sess.Intelligence)
			sess.Intelligence.Merge(perMsg)
			intelDeltas = diffCounts(before, typeCounts(sess.Intelligence))
		}

		sess.TurnCount++
		turn := sess.TurnCount

		next := s.machine.Next(engagement.State{
			Phase:                 sess.Phase,
			Turn:                  turn,
			ScamDetected:          sess.ScamDetected,
			IntelComplete:         sess.Intelligence.Complete(),
			ExtractionEnteredTurn: sess.ExtractionEnteredTurn,
		})
		if next == engagement.PhaseExtraction && sess.ExtractionEnteredTurn == 0 {
			sess.ExtractionEnteredTurn = turn
		}
		sess.Phase = next

		if sess.ScamDetected && sess.PersonaName == "" {
			persona := engagement.SelectPersona(sess.RedFlags, result.KeywordHits, text)
			sess.PersonaName = persona.Name
			log.Info("persona assigned", "persona", persona.Name)
		}

		if s.machine.Terminated(turn) {
			sess.Terminated = true
		}

		if s.scheduler.ShouldReport(turn, sess.ScamDetected) {
			shouldReport = true
			at := s.now()
			sess.LastCallbackAt = &at
		}

		snap = sess.Snapshot()
	})

	reply := s.renderReply(ctx, snap, result, text, closing)

	if !closing {
		s.metrics.ObserveTurn(string(snap.Phase), snap.ScamDetected)
		for intelType, n := range intelDeltas {
			s.metrics.ObserveIntel(intelType, n)
		}
		s.appendTranscript(sessionID, text, reply)
	}

	if shouldReport {
		report := s.scheduler.BuildReport(sessionView(snap))
		s.dispatchCallback(sessionID, report)
	}

	return s.buildResponse(snap, reply)
}

// renderReply picks the outbound reply for the turn. Terminated
// sessions always get the closing line; sessions that were never
// flagged rotate through scripted small talk so the engine stays
// unreadable from the outside.
func (s *Service) renderReply(ctx context.Context, snap *session.Session, result detection.Result, text string, closing bool) string {
	switch {
	case closing:
		return engagement.ClosingReply
	case text == "":
		return engagement.NeutralReply
	case !snap.ScamDetected:
		if len(result.KeywordHits) > 0 {
			return engagement.SuspicionReply(snap.TurnCount)
		}
		return engagement.ScriptedReply(snap.TurnCount)
	}

	persona, ok := engagement.PersonaByName(snap.PersonaName)
	if !ok {
		persona = engagement.Personas()[0]
	}
	history := make([]generation.Exchange, 0, len(snap.Conversation))
	for _, ex := range snap.Conversation {
		history = append(history, generation.Exchange{Scammer: ex.Scammer, Agent: ex.Agent})
	}
	reply, err := s.generator.Generate(ctx, generation.Request{
		Persona: persona,
		Phase:   snap.Phase,
		Turn:    snap.TurnCount,
		Missing: snap.Intelligence.Missing(),
		History: history,
		Message: text,
	})
	if err != nil || reply == "" {
		s.metrics.ObserveScriptedReply()
		return engagement.ScriptedReply(snap.TurnCount)
	}
	return reply
}

// appendTranscript records the completed exchange and mirrors it to
// the Redis archive when one is configured.
func (s *Service) appendTranscript(sessionID, text, reply string) {
	var transcript []session.Exchange
	s.store.Update(sessionID, func(sess *session.Session) {
		sess.Conversation = append(sess.Conversation, session.Exchange{
			Scammer:   text,
			Agent:     reply,
			Timestamp: s.now(),
		})
		if s.archive != nil {
			transcript = append([]session.Exchange{}, sess.Conversation...)
		}
	})
	if s.archive == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.archive.Save(ctx, sessionID, transcript); err != nil {
			s.logger.WithSession(sessionID).Warn("transcript archive failed", "error", err)
		}
	}()
}

// dispatchCallback delivers the report off the request path. Delivery
// failures are logged and counted, never surfaced to the scammer.
func (s *Service) dispatchCallback(sessionID string, report *callback.Report) {
	if s.transport == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.transport.Deliver(ctx, report); err != nil {
			s.metrics.ObserveCallback("failed")
			s.logger.WithSession(sessionID).Warn("callback delivery failed", "error", err)
			return
		}
		s.metrics.ObserveCallback("delivered")
	}()
}

func (s *Service) buildResponse(snap *session.Session, reply string) *EngageResponse {
	resp := &EngageResponse{
		Status:                "success",
		Reply:                 reply,
		Persona:               snap.PersonaName,
		ScamDetected:          snap.ScamDetected,
		MessagesExchanged:     snap.TurnCount,
		CallbackSent:          snap.LastCallbackAt,
		ExtractedIntelligence: snap.Intelligence,
		RedFlagsIdentified:    snap.RedFlagLabels(),
	}
	if snap.ScamDetected {
		duration := int64(s.now().Sub(snap.CreatedAt) / time.Second)
		resp.EngagementMetrics = &callback.EngagementMetrics{
			TotalMessagesExchanged:    snap.TurnCount,
			EngagementDurationSeconds: duration,
		}
		resp.AgentNotes = callback.AgentNotes(sessionView(snap), duration)
	}
	return resp
}

// Inspect returns a read-only snapshot of one session, or nil when
// the session does not exist.
func (s *Service) Inspect(sessionID string) *session.Session {
	var snap *session.Session
	found := s.store.View(sessionID, func(sess *session.Session) {
		snap = sess.Snapshot()
	})
	if !found {
		return nil
	}
	return snap
}

// Sessions lists summaries of every live session.
func (s *Service) Sessions() []session.Summary {
	return s.store.List()
}

// SessionCount reports the number of live sessions; the active-session
// gauge reads it.
func (s *Service) SessionCount() int {
	return s.store.Len()
}

// Close waits for in-flight callback and archive deliveries, then
// shuts down the store's janitor.
func (s *Service) Close() {
	s.wg.Wait()
	s.store.Close()
}

// SafeResponse is the envelope handed back when the pipeline cannot
// run at all; the scammer only ever sees a bland greeting.
func SafeResponse() *EngageResponse {
	return &EngageResponse{
		Status:             "success",
		Reply:              engagement.NeutralReply,
		RedFlagsIdentified: []string{},
	}
}

func sessionView(snap *session.Session) callback.SessionView {
	return callback.SessionView{
		SessionID:     snap.ID,
		TurnCount:     snap.TurnCount,
		ScamDetected:  snap.ScamDetected,
		Phase:         string(snap.Phase),
		CreatedAt:     snap.CreatedAt,
		Intelligence:  snap.Intelligence,
		RedFlagLabels: snap.RedFlagLabels(),
	}
}

func layerStrings(layers []detection.Layer) []string {
	out := make([]string, 0, len(layers))
	for _, l := range layers {
		out = append(out, string(l))
	}
	return out
}

func typeCounts(rec *intel.Record) map[string]int {
	return map[string]int{
		"upi":     len(rec.UPIIDs),
		"phone":   len(rec.PhoneNumbers),
		"bank":    len(rec.BankAccounts),
		"link":    len(rec.PhishingLinks),
		"email":   len(rec.EmailAddresses),
		"keyword": len(rec.SuspiciousKeywords),
	}
}

func diffCounts(before, after map[string]int) map[string]int {
	deltas := make(map[string]int)
	for intelType, n := range after {
		if d := n - before[intelType]; d > 0 {
			deltas[intelType] = d
		}
	}
	return deltas
}
