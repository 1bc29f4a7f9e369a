package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authmw "github.com/yomogi-health/yomogi/internal/auth/middleware"
	"github.com/yomogi-health/yomogi/internal/questionnaire"
)

// sessionView is the state handed to the client after every operation: the
// current question (if any), the step and the recomputed progress.
type sessionView struct {
	SessionID  string                      `json:"session_id"`
	Step       questionnaire.Step          `json:"step"`
	Progress   float64                     `json:"progress"`
	Question   *questionnaire.QuestionView `json:"question,omitempty"`
	Answer     *questionnaire.Answer       `json:"answer,omitempty"`
	ExitToHome bool                        `json:"exit_to_home,omitempty"`
	Complaint  string                      `json:"complaint,omitempty"`
}

func viewOf(flow *questionnaire.Flow, s *questionnaire.Session) sessionView {
	v := sessionView{
		SessionID: s.ID,
		Step:      s.Position.Step,
		Progress:  flow.Progress(s),
		Complaint: s.Complaint,
	}
	if q, ok := flow.Current(s); ok {
		v.Question = &q
		if a, answered := s.Answers[q.ID]; answered {
			v.Answer = &a
		}
	}
	return v
}

// loadOwnSession fetches the session and enforces that it belongs to the
// authenticated user. Foreign sessions read as not found.
func loadOwnSession(w http.ResponseWriter, r *http.Request, store questionnaire.Store) (*questionnaire.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	s, err := store.Get(id)
	if err != nil || s.UserID != authmw.SubjectFromContext(r.Context()) {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return s, true
}

func CreateSessionHandler(store questionnaire.Store, flow *questionnaire.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := store.Create(authmw.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, "create session", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(flow, s))
	}
}

func GetSessionHandler(store questionnaire.Store, flow *questionnaire.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(flow, s))
	}
}

func AnswerHandler(store questionnaire.Store, flow *questionnaire.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		var req struct {
			Answer questionnaire.Answer `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := flow.Answer(s, req.Answer); err != nil {
			if errors.Is(err, questionnaire.ErrNoCurrentQuestion) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.Save(s); err != nil {
			http.Error(w, "save session", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(flow, s))
	}
}

func GoBackHandler(store questionnaire.Store, flow *questionnaire.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		err := flow.GoBack(s)
		if err != nil && !errors.Is(err, questionnaire.ErrExitQuestionnaire) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.Save(s); err != nil {
			http.Error(w, "save session", http.StatusInternalServerError)
			return
		}
		v := viewOf(flow, s)
		v.ExitToHome = errors.Is(err, questionnaire.ErrExitQuestionnaire)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func ToggleOptionHandler(store questionnaire.Store, flow *questionnaire.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		var req struct {
			Option   string `json:"option"`
			Selected bool   `json:"selected"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := flow.ToggleOption(s, req.Option, req.Selected); err != nil {
			if errors.Is(err, questionnaire.ErrNoCurrentQuestion) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.Save(s); err != nil {
			http.Error(w, "save session", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(flow, s))
	}
}

func ComplaintHandler(store questionnaire.Store, flow *questionnaire.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := flow.SubmitComplaint(s, req.Text); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err := store.Save(s); err != nil {
			http.Error(w, "save session", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(flow, s))
	}
}

func ResetSessionHandler(store questionnaire.Store, flow *questionnaire.Flow) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		flow.Reset(s)
		if err := store.Save(s); err != nil {
			http.Error(w, "save session", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(viewOf(flow, s))
	}
}
