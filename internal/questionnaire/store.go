package questionnaire

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned by stores for unknown session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Store persists questionnaire sessions. The engine itself never touches a
// store; handlers load a session, run Flow operations on it and save it back.
type Store interface {
	Create(userID string) (*Session, error)
	Get(id string) (*Session, error)
	Save(s *Session) error
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewInMemoryStore() Store {
	return &memoryStore{sessions: map[string]Session{}}
}

func (m *memoryStore) Create(userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := NewSession(uuid.NewString(), userID)
	m.sessions[s.ID] = cloneSession(s)
	return s, nil
}

func (m *memoryStore) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := cloneSession(&s)
	return &out, nil
}

func (m *memoryStore) Save(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return ErrSessionNotFound
	}
	m.sessions[s.ID] = cloneSession(s)
	return nil
}

func cloneSession(s *Session) Session {
	out := *s
	out.Answers = make(map[string]Answer, len(s.Answers))
	for k, v := range s.Answers {
		v.Selected = append([]string(nil), v.Selected...)
		out.Answers[k] = v
	}
	return out
}
