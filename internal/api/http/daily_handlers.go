package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yomogi-health/yomogi/internal/advice"
	authmw "github.com/yomogi-health/yomogi/internal/auth/middleware"
	"github.com/yomogi-health/yomogi/internal/catalog"
	"github.com/yomogi-health/yomogi/internal/dailycheck"
	"github.com/yomogi-health/yomogi/internal/eventlog"
)

type dailyView struct {
	RunID    string                 `json:"run_id"`
	Step     dailycheck.Step        `json:"step"`
	Progress float64                `json:"progress"`
	Question *catalog.DailyQuestion `json:"question,omitempty"`
	Answer   string                 `json:"answer,omitempty"`
	Index    int                    `json:"question_index"`
	Count    int                    `json:"question_count"`
	Advice   string                 `json:"advice,omitempty"`
}

func dailyViewOf(c *dailycheck.Checker, cat *catalog.DailyCatalog, r *dailycheck.Run) dailyView {
	v := dailyView{
		RunID:    r.ID,
		Step:     r.Step,
		Progress: c.Progress(r),
		Index:    r.QuestionIndex,
		Count:    len(cat.Questions()),
		Advice:   r.Advice,
	}
	if q, ok := c.Current(r); ok {
		v.Question = &q
		v.Answer = r.Answers[q.ID]
	}
	return v
}

func loadOwnRun(w http.ResponseWriter, r *http.Request, store dailycheck.Store) (*dailycheck.Run, bool) {
	id := chi.URLParam(r, "runID")
	run, err := store.Get(id)
	if err != nil || run.UserID != authmw.SubjectFromContext(r.Context()) {
		http.Error(w, "daily run not found", http.StatusNotFound)
		return nil, false
	}
	return run, true
}

func StartDailyHandler(store dailycheck.Store, c *dailycheck.Checker, cat *catalog.DailyCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, err := store.Create(authmw.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, "create daily run", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(dailyViewOf(c, cat, run))
	}
}

func GetDailyHandler(store dailycheck.Store, c *dailycheck.Checker, cat *catalog.DailyCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnRun(w, r, store)
		if !ok {
			return
		}
		_ = json.NewEncoder(w).Encode(dailyViewOf(c, cat, run))
	}
}

func DailyAnswerHandler(store dailycheck.Store, c *dailycheck.Checker, cat *catalog.DailyCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnRun(w, r, store)
		if !ok {
			return
		}
		var req struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := c.Answer(run, req.Answer); err != nil {
			if errors.Is(err, dailycheck.ErrNoCurrentQuestion) {
				http.Error(w, err.Error(), http.StatusConflict)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.Save(run); err != nil {
			http.Error(w, "save daily run", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(dailyViewOf(c, cat, run))
	}
}

func DailyBackHandler(store dailycheck.Store, c *dailycheck.Checker, cat *catalog.DailyCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnRun(w, r, store)
		if !ok {
			return
		}
		c.GoBack(run)
		if err := store.Save(run); err != nil {
			http.Error(w, "save daily run", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(dailyViewOf(c, cat, run))
	}
}

// DailyWellnessHandler records the sliders and free text; the response
// carries the rule-based advice computed from the run's scores.
func DailyWellnessHandler(store dailycheck.Store, c *dailycheck.Checker, cat *catalog.DailyCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnRun(w, r, store)
		if !ok {
			return
		}
		var req struct {
			BodyCondition int    `json:"body_condition"`
			MindCondition int    `json:"mind_condition"`
			FreeText      string `json:"free_text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := c.SubmitWellness(run, req.BodyCondition, req.MindCondition, req.FreeText); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err := store.Save(run); err != nil {
			http.Error(w, "save daily run", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(dailyViewOf(c, cat, run))
	}
}

// DailyAdviceHandler asks the remote generator for day-specific advice; it
// degrades to the same rules the wellness step used.
func DailyAdviceHandler(store dailycheck.Store, c *dailycheck.Checker, gen advice.DailyGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnRun(w, r, store)
		if !ok {
			return
		}
		if run.Step != dailycheck.StepAdvice && run.Step != dailycheck.StepComplete {
			http.Error(w, "daily check not finished", http.StatusConflict)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), adviceTimeout)
		defer cancel()
		res := gen.GenerateDaily(ctx, c.Scores(run), run.BodyCondition, run.MindCondition, run.FreeText)
		_ = json.NewEncoder(w).Encode(res)
	}
}

func SaveDailyHandler(store dailycheck.Store, c *dailycheck.Checker, cat *catalog.DailyCatalog, events *eventlog.Repo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		run, ok := loadOwnRun(w, r, store)
		if !ok {
			return
		}
		if err := c.Save(run); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		if err := store.Save(run); err != nil {
			http.Error(w, "save daily run", http.StatusInternalServerError)
			return
		}
		if events != nil {
			if err := events.Append(r.Context(), eventlog.TypeDailyRecordSaved, run.ID, map[string]interface{}{
				"user_id": run.UserID,
				"scores":  c.Scores(run),
				"body":    run.BodyCondition,
				"mind":    run.MindCondition,
			}); err != nil {
				log.Printf("event log append: %v", err)
			}
		}
		_ = json.NewEncoder(w).Encode(dailyViewOf(c, cat, run))
	}
}

func DailyHistoryHandler(store dailycheck.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		entries, err := store.History(authmw.SubjectFromContext(r.Context()), limit)
		if err != nil {
			http.Error(w, "list history", http.StatusInternalServerError)
			return
		}
		if entries == nil {
			entries = []dailycheck.HistoryEntry{}
		}
		_ = json.NewEncoder(w).Encode(entries)
	}
}
