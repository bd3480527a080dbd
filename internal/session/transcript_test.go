package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArchive(t *testing.T) (*TranscriptArchive, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewTranscriptArchive(client, time.Hour), mr
}

func TestTranscriptArchive_SaveAndLoad(t *testing.T) {
	archive, _ := newTestArchive(t)
	ctx := context.Background()

	transcript := []Exchange{
		{Scammer: "your account is blocked", Agent: "kaun bol raha hai?", Timestamp: time.Now().UTC().Truncate(time.Second)},
		{Scammer: "pay to scam@paytm", Agent: "UPI ID phir se bolo na?", Timestamp: time.Now().UTC().Truncate(time.Second)},
	}
	require.NoError(t, archive.Save(ctx, "sess-1", transcript))

	loaded, err := archive.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, transcript[0].Scammer, loaded[0].Scammer)
	assert.Equal(t, transcript[1].Agent, loaded[1].Agent)
}

func TestTranscriptArchive_LoadMissing(t *testing.T) {
	archive, _ := newTestArchive(t)

	_, err := archive.Load(context.Background(), "never-seen")
	assert.Error(t, err)
}

func TestTranscriptArchive_TTL(t *testing.T) {
	archive, mr := newTestArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.Save(ctx, "sess-ttl", []Exchange{{Scammer: "hi", Agent: "ji?"}}))

	mr.FastForward(2 * time.Hour)

	_, err := archive.Load(ctx, "sess-ttl")
	assert.Error(t, err, "archived transcript should expire with the TTL")
}
