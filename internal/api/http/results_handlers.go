package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/yomogi-health/yomogi/internal/catalog"
	"github.com/yomogi-health/yomogi/internal/eventlog"
	"github.com/yomogi-health/yomogi/internal/questionnaire"
	"github.com/yomogi-health/yomogi/internal/scoring"
)

type resultsOut struct {
	SessionID        string                 `json:"session_id"`
	Scores           scoring.Scores         `json:"scores"`
	Radar            scoring.RadarSummary   `json:"radar"`
	TopConstitutions []scoring.Constitution `json:"top_constitutions"`
	Complaint        string                 `json:"complaint,omitempty"`
}

// ResultsHandler finalizes a completed questionnaire: moves the session to
// the results step, derives the scores from the answer map and logs a
// completion event on the first transition.
func ResultsHandler(store questionnaire.Store, flow *questionnaire.Flow, cat *catalog.Catalog, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		first := s.Position.Step == questionnaire.StepComplete
		if err := flow.ShowResults(s); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err := store.Save(s); err != nil {
			http.Error(w, "save session", http.StatusInternalServerError)
			return
		}

		scores := scoring.Compute(s.Answers, cat)
		if first && events != nil {
			if err := events.Append(r.Context(), eventlog.TypeQuestionnaireCompleted, s.ID, map[string]interface{}{
				"user_id": s.UserID,
				"scores":  scores,
			}); err != nil {
				log.Printf("event log append: %v", err)
			}
		}
		_ = json.NewEncoder(w).Encode(resultsOut{
			SessionID:        s.ID,
			Scores:           scores,
			Radar:            scoring.Radar(scores),
			TopConstitutions: scoring.Top(scores, 3),
			Complaint:        s.Complaint,
		})
	}
}
