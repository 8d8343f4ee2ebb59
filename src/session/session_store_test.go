package session

import (
	"fmt"
	"testing"
	"time"

	"iex-insight/src/logger"
	"iex-insight/src/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(maxMessages int) *SessionStore {
	cfg := &models.MConfig{
		Session: models.MSessionConfig{TTLMinutes: 30, MaxMessages: maxMessages},
	}
	return NewSessionStore(cfg, logger.NewLogger("ERROR", "session-test"))
}

func msg(text string) models.MSessionMessage {
	return models.MSessionMessage{Text: text, AskedAt: time.Now()}
}

func TestAppendGeneratesSessionID(t *testing.T) {
	s := newTestStore(5)
	defer s.Stop()

	id := s.Append("", msg("first"))
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	history := s.History(id)
	require.Len(t, history, 1)
	assert.Equal(t, "first", history[0].Text)
}

func TestAppendKeepsExplicitSessionID(t *testing.T) {
	s := newTestStore(5)
	defer s.Stop()

	id := s.Append("abc", msg("one"))
	assert.Equal(t, "abc", id)
	assert.Equal(t, "abc", s.Append("abc", msg("two")))

	history := s.History("abc")
	require.Len(t, history, 2)
	assert.Equal(t, "one", history[0].Text)
	assert.Equal(t, "two", history[1].Text)
}

func TestRingDropsOldestFirst(t *testing.T) {
	s := newTestStore(3)
	defer s.Stop()

	for i := 1; i <= 5; i++ {
		s.Append("abc", msg(fmt.Sprintf("q%d", i)))
	}

	history := s.History("abc")
	require.Len(t, history, 3)
	assert.Equal(t, "q3", history[0].Text)
	assert.Equal(t, "q4", history[1].Text)
	assert.Equal(t, "q5", history[2].Text)
}

func TestHistoryUnknownSession(t *testing.T) {
	s := newTestStore(3)
	defer s.Stop()

	assert.Nil(t, s.History("no-such-session"))
}

func TestSessionsAreIndependent(t *testing.T) {
	s := newTestStore(3)
	defer s.Stop()

	s.Append("a", msg("for-a"))
	s.Append("b", msg("for-b"))

	require.Len(t, s.History("a"), 1)
	assert.Equal(t, "for-a", s.History("a")[0].Text)
	assert.Equal(t, "for-b", s.History("b")[0].Text)
}

func TestEvictExpired(t *testing.T) {
	s := newTestStore(3)
	defer s.Stop()

	s.Append("stale", msg("old"))
	s.Append("fresh", msg("new"))

	s.mu.Lock()
	s.sessions["stale"].lastSeen = time.Now().Add(-31 * time.Minute)
	s.mu.Unlock()

	s.evictExpired(time.Now())
	assert.Nil(t, s.History("stale"))
	assert.Len(t, s.History("fresh"), 1)

	// Re-appending after eviction starts a clean session.
	s.Append("stale", msg("again"))
	require.Len(t, s.History("stale"), 1)
}

func TestStopIsIdempotent(t *testing.T) {
	s := newTestStore(3)
	s.Stop()
	s.Stop()
}
