package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/yomogi-health/yomogi/internal/advice"
	"github.com/yomogi-health/yomogi/internal/catalog"
	"github.com/yomogi-health/yomogi/internal/questionnaire"
	"github.com/yomogi-health/yomogi/internal/scoring"
	"github.com/yomogi-health/yomogi/internal/tongue"
)

// adviceTimeout bounds the remote generator call; expiry lands on the
// generator's local fallback, never on an error response.
const adviceTimeout = 20 * time.Second

// AdviceHandler generates personalized advice for a finished questionnaire.
func AdviceHandler(store questionnaire.Store, flow *questionnaire.Flow, cat *catalog.Catalog, gen advice.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := loadOwnSession(w, r, store)
		if !ok {
			return
		}
		if s.Position.Step != questionnaire.StepComplete && s.Position.Step != questionnaire.StepResults {
			http.Error(w, "questionnaire not complete", http.StatusConflict)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), adviceTimeout)
		defer cancel()
		res := gen.Generate(ctx, scoring.Compute(s.Answers, cat), s.Complaint)
		_ = json.NewEncoder(w).Encode(res)
	}
}

// TongueHandler runs the opaque tongue-image diagnosis.
func TongueHandler(d tongue.Diagnoser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ImageBase64 string `json:"image_base64"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		diag, err := d.Diagnose(r.Context(), req.ImageBase64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(struct {
			Success   bool             `json:"success"`
			Diagnosis tongue.Diagnosis `json:"diagnosis"`
		}{true, diag})
	}
}
