package store

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is the lifetime of a namespace created by a write before any Touch
const DefaultTTL = 7 * 24 * time.Hour // 7 days

// Memory is an in-process Backend. State is lost on restart.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time
}

type memorySession struct {
	values    map[string]string
	expiresAt time.Time
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{
		sessions: make(map[string]*memorySession),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
}

func (m *Memory) live(sid string) (*memorySession, bool) {
	s, ok := m.sessions[sid]
	if !ok {
		return nil, false
	}
	if !s.expiresAt.IsZero() && m.now().After(s.expiresAt) {
		return nil, false
	}
	return s, true
}

func (m *Memory) Get(ctx context.Context, sid, key string) (string, bool, error) {
	if sid == "" {
		return "", false, ErrEmptySession
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.live(sid)
	if !ok {
		return "", false, nil
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (m *Memory) Set(ctx context.Context, sid, key, value string) error {
	if sid == "" {
		return ErrEmptySession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.live(sid)
	if !ok {
		s = &memorySession{values: make(map[string]string), expiresAt: m.now().Add(m.ttl)}
		m.sessions[sid] = s
	}
	s.values[key] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, sid string, keys ...string) error {
	if sid == "" {
		return ErrEmptySession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sid]; ok {
		for _, k := range keys {
			delete(s.values, k)
		}
	}
	return nil
}

func (m *Memory) Touch(ctx context.Context, sid string, ttl time.Duration) error {
	if sid == "" {
		return ErrEmptySession
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.live(sid)
	if !ok {
		s = &memorySession{values: make(map[string]string)}
		m.sessions[sid] = s
	}
	if ttl > 0 {
		s.expiresAt = m.now().Add(ttl)
	}
	return nil
}

func (m *Memory) Drop(ctx context.Context, sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

func (m *Memory) CleanupExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	now := m.now()
	for sid, s := range m.sessions {
		if !s.expiresAt.IsZero() && now.After(s.expiresAt) {
			delete(m.sessions, sid)
			removed++
		}
	}
	return removed, nil
}

func (m *Memory) Close() error { return nil }
