package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TranscriptArchive mirrors session transcripts into Redis with a TTL
// so investigators can pull conversations after the serving process
// restarts. It sits off the reply path: archive failures are the
// caller's to log, never to surface.
type TranscriptArchive struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewTranscriptArchive builds the archive. A zero ttl defaults to 24h.
func NewTranscriptArchive(client *redis.Client, ttl time.Duration) *TranscriptArchive {
	if client == nil {
		panic("session: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TranscriptArchive{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("honeypot/transcript-archive"),
	}
}

// Save persists the full transcript for a session, refreshing the TTL.
func (a *TranscriptArchive) Save(ctx context.Context, sessionID string, transcript []Exchange) error {
	ctx, span := a.tracer.Start(ctx, "session.save_transcript")
	defer span.End()

	data, err := json.Marshal(transcript)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to marshal transcript: %w", err)
	}
	if err := a.redis.Set(ctx, transcriptKey(sessionID), data, a.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("session: failed to persist transcript: %w", err)
	}
	return nil
}

// Load fetches the archived transcript for a session.
func (a *TranscriptArchive) Load(ctx context.Context, sessionID string) ([]Exchange, error) {
	ctx, span := a.tracer.Start(ctx, "session.load_transcript")
	defer span.End()

	data, err := a.redis.Get(ctx, transcriptKey(sessionID)).Bytes()
	if err != nil {
		span.RecordError(err)
		if err == redis.Nil {
			return nil, fmt.Errorf("session: no archived transcript for %s", sessionID)
		}
		return nil, fmt.Errorf("session: failed to load transcript: %w", err)
	}

	var transcript []Exchange
	if err := json.Unmarshal(data, &transcript); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("session: failed to decode transcript: %w", err)
	}
	return transcript, nil
}

func transcriptKey(id string) string {
	return fmt.Sprintf("transcript:%s", id)
}
