package session

import (
	"sort"
	"sync"
	"time"

	"github.com/scambait/honeypot/pkg/logging"
)

// Store maps session ids to records with per-session serialization:
// the map itself is guarded by a short-lived RWMutex, while each
// session carries its own lock so unrelated sessions never contend.
// Mutations for one inbound message run as a single critical section
// via Update; blocking I/O belongs outside, on snapshots.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	logger  *logging.Logger
	idleTTL time.Duration
	stop    chan struct{}
	stopped sync.Once

	now func() time.Time
}

type entry struct {
	mu   sync.Mutex
	sess *Session
}

// NewStore builds a store. idleTTL of zero disables the eviction
// janitor; when enabled, sessions idle longer than the TTL are
// dropped, but never one that is mid-turn.
func NewStore(logger *logging.Logger, idleTTL time.Duration) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	s := &Store{
		entries: make(map[string]*entry),
		logger:  logger,
		idleTTL: idleTTL,
		stop:    make(chan struct{}),
		now:     time.Now,
	}
	if idleTTL > 0 {
		go s.janitor()
	}
	return s
}

// Update runs fn on the session for id under that session's lock,
// creating the session first if the id is unseen. Calls for the same
// id serialize; calls for different ids proceed in parallel.
func (s *Store) Update(id string, fn func(*Session)) {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sess.LastActivityAt = s.now()
	fn(e.sess)
}

// View runs fn on a read-only snapshot of the session, or returns
// false for an unknown id without creating anything.
func (s *Store) View(id string, fn func(*Session)) bool {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	snap := e.sess.Snapshot()
	e.mu.Unlock()
	fn(snap)
	return true
}

// List returns summaries of all sessions, ordered by id for stable
// output.
func (s *Store) List() []Summary {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	summaries := make([]Summary, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		summaries = append(summaries, e.sess.summary())
		e.mu.Unlock()
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].SessionID < summaries[j].SessionID })
	return summaries
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the eviction janitor.
func (s *Store) Close() {
	s.stopped.Do(func() { close(s.stop) })
}

func (s *Store) entryFor(id string) *entry {
	s.mu.RLock()
	e, ok := s.entries[id]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[id]; ok {
		return e
	}
	e = &entry{sess: newSession(id, s.now())}
	s.entries[id] = e
	s.logger.Info("session created", "session_id", id)
	return e
}

func (s *Store) janitor() {
	interval := s.idleTTL / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *Store) evictIdle() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		// TryLock keeps the janitor away from a session mid-turn.
		if !e.mu.TryLock() {
			continue
		}
		idle := e.sess.LastActivityAt.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.entries, id)
			s.logger.Info("session evicted after idle timeout", "session_id", id)
		}
	}
}
