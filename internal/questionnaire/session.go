package questionnaire

import "time"

// Session is one user's questionnaire run: position, recorded answers and the
// free-text complaint. It is mutated only through Flow operations and holds
// no reference to ambient state.
type Session struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	Position    Position          `json:"position"`
	Answers     map[string]Answer `json:"answers"`
	Complaint   string            `json:"complaint"`
	StartedAt   int64             `json:"started_at"`
	CompletedAt int64             `json:"completed_at,omitempty"`
}

func NewSession(id, userID string) *Session {
	return &Session{
		ID:        id,
		UserID:    userID,
		Position:  Start(),
		Answers:   map[string]Answer{},
		StartedAt: time.Now().Unix(),
	}
}
