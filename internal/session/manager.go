package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/slideai/internal/markdown"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// subscriberBuffer is how many events a slow subscriber may fall behind
// before events are dropped for it.
const subscriberBuffer = 16

// Manager keeps sessions in memory. Nothing survives a restart.
type Manager struct {
	gen *Generator
	md  *markdown.Renderer

	mu       sync.RWMutex
	sessions map[string]*Session
	subs     map[string]map[chan Event]struct{}
}

// NewManager creates an empty Manager whose sessions use gen.
func NewManager(gen *Generator, md *markdown.Renderer) *Manager {
	return &Manager{
		gen:      gen,
		md:       md,
		sessions: make(map[string]*Session),
		subs:     make(map[string]map[chan Event]struct{}),
	}
}

// Create starts a new session with a random ID.
func (m *Manager) Create() *Session {
	s := New(uuid.New().String(), m.gen, m.md, m.publish)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Printf("session: created %s", s.ID)
	return s
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.touch(time.Now())
	return s, nil
}

// Delete removes a session and closes its subscriptions.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	m.remove(id)
	log.Printf("session: deleted %s", id)
	return nil
}

// remove drops a session and closes its subscriptions. m.mu must be held.
func (m *Manager) remove(id string) {
	delete(m.sessions, id)
	for ch := range m.subs[id] {
		close(ch)
	}
	delete(m.subs, id)
}

// Sweep deletes sessions not looked up for longer than maxIdle. Sessions
// with a subscriber or a generation in flight are kept. It returns the
// number removed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if len(m.subs[id]) > 0 || s.idleSince(now) <= maxIdle {
			continue
		}
		if !s.inflight.TryLock() {
			continue
		}
		m.remove(id)
		s.inflight.Unlock()
		removed++
	}
	if removed > 0 {
		log.Printf("session: evicted %d idle sessions, %d left", removed, len(m.sessions))
	}
	return removed
}

// Run sweeps every interval until ctx is done. A non-positive maxIdle
// disables eviction.
func (m *Manager) Run(ctx context.Context, interval, maxIdle time.Duration) {
	if maxIdle <= 0 {
		return
	}
	if interval <= 0 {
		interval = maxIdle / 4
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(maxIdle)
		}
	}
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Subscribe returns a channel of events for session id and a function that
// ends the subscription. The channel is closed when either is called or the
// session is deleted.
func (m *Manager) Subscribe(id string) (<-chan Event, func(), error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	s.touch(time.Now())

	ch := make(chan Event, subscriberBuffer)
	if m.subs[id] == nil {
		m.subs[id] = make(map[chan Event]struct{})
	}
	m.subs[id][ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if _, ok := m.subs[id][ch]; ok {
				delete(m.subs[id], ch)
				close(ch)
			}
		})
	}
	return ch, cancel, nil
}

// publish delivers ev to every subscriber without blocking.
func (m *Manager) publish(ev Event) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for ch := range m.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
			log.Printf("session: dropping %s event for slow subscriber of %s", ev.Type, ev.SessionID)
		}
	}
}
