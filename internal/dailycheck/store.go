package dailycheck

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

var ErrRunNotFound = errors.New("daily run not found")

// HistoryEntry is one saved daily record, shaped for the history page.
type HistoryEntry struct {
	ID            string `json:"id"`
	Date          int64  `json:"date"`
	BodyCondition int    `json:"body_condition"`
	MindCondition int    `json:"mind_condition"`
	MainSymptom   string `json:"main_symptom"`
	Advice        string `json:"advice"`
}

type Store interface {
	Create(userID string) (*Run, error)
	Get(id string) (*Run, error)
	Save(r *Run) error
	History(userID string, limit int) ([]HistoryEntry, error)
}

type memoryStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

func NewInMemoryStore() Store {
	return &memoryStore{runs: map[string]Run{}}
}

func (m *memoryStore) Create(userID string) (*Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := NewRun(uuid.NewString(), userID)
	m.runs[r.ID] = cloneRun(r)
	return r, nil
}

func (m *memoryStore) Get(id string) (*Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	out := cloneRun(&r)
	return &out, nil
}

func (m *memoryStore) Save(r *Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.runs[r.ID]; !ok {
		return ErrRunNotFound
	}
	m.runs[r.ID] = cloneRun(r)
	return nil
}

func (m *memoryStore) History(userID string, limit int) ([]HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []HistoryEntry
	for _, r := range m.runs {
		if r.UserID != userID || r.SavedAt == 0 {
			continue
		}
		out = append(out, HistoryEntry{
			ID:            r.ID,
			Date:          r.SavedAt,
			BodyCondition: r.BodyCondition,
			MindCondition: r.MindCondition,
			MainSymptom:   r.FreeText,
			Advice:        r.Advice,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func cloneRun(r *Run) Run {
	out := *r
	out.Answers = make(map[string]string, len(r.Answers))
	for k, v := range r.Answers {
		out.Answers[k] = v
	}
	return out
}
