package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"iex-insight/src/logger"
	"iex-insight/src/models"
)

// -----------------------------------------------------------------------------
// SessionStore retains recent query history per session as contextual hints.
// Each session keeps a bounded ring of messages and is evicted after a fixed
// period of inactivity. The store is eventually consistent: an evicted or
// lost session only loses hints, never correctness.
// -----------------------------------------------------------------------------

type SessionStore struct {
	ttl         time.Duration
	maxMessages int
	logger      *logger.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	stop     chan struct{}
	stopOnce sync.Once
}

type sessionEntry struct {
	// ring is a fixed-capacity circular buffer of the newest messages.
	ring     []models.MSessionMessage
	next     int
	size     int
	lastSeen time.Time
}

// -----------------------------------------------------------------------------

// NewSessionStore starts the store and its eviction loop.
func NewSessionStore(cfg *models.MConfig, log *logger.Logger) *SessionStore {
	s := &SessionStore{
		ttl:         time.Duration(cfg.Session.TTLMinutes) * time.Minute,
		maxMessages: cfg.Session.MaxMessages,
		logger:      log,
		sessions:    make(map[string]*sessionEntry),
		stop:        make(chan struct{}),
	}
	go s.evictLoop()
	return s
}

// -----------------------------------------------------------------------------

// Append records one exchange, creating the session (with a fresh id) when
// sessionID is empty, and returns the session id.
func (s *SessionStore) Append(sessionID string, msg models.MSessionMessage) string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		entry = &sessionEntry{ring: make([]models.MSessionMessage, s.maxMessages)}
		s.sessions[sessionID] = entry
	}

	entry.ring[entry.next] = msg
	entry.next = (entry.next + 1) % s.maxMessages
	if entry.size < s.maxMessages {
		entry.size++
	}
	entry.lastSeen = time.Now()
	return sessionID
}

// -----------------------------------------------------------------------------

// History returns the retained messages, oldest first. Unknown or expired
// sessions return nil.
func (s *SessionStore) History(sessionID string) []models.MSessionMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}

	out := make([]models.MSessionMessage, 0, entry.size)
	start := entry.next - entry.size
	if start < 0 {
		start += s.maxMessages
	}
	for i := 0; i < entry.size; i++ {
		out = append(out, entry.ring[(start+i)%s.maxMessages])
	}
	return out
}

// -----------------------------------------------------------------------------

// Stop terminates the eviction loop.
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// -----------------------------------------------------------------------------

func (s *SessionStore) evictLoop() {
	interval := s.ttl / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.evictExpired(now)
		}
	}
}

func (s *SessionStore) evictExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		if now.Sub(entry.lastSeen) > s.ttl {
			delete(s.sessions, id)
			s.logger.Debug("Evicted idle session %s", id)
		}
	}
}
