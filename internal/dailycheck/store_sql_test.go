package dailycheck

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yomogi-health/yomogi/internal/db"
)

func testSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "daily.db")
	conn, err := db.Open(context.Background(), db.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewSQLStore(conn, "sqlite")
}

func TestDailySQLStoreRoundTrip(t *testing.T) {
	st := testSQLStore(t)

	r, err := st.Create("user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	r.Answers["d1"] = "だるい"
	r.Step = StepWellness
	r.BodyCondition = 2
	r.MindCondition = 4
	r.FreeText = "頭が重い"
	if err := st.Save(r); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := st.Get(r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Step != StepWellness || got.Answers["d1"] != "だるい" || got.BodyCondition != 2 {
		t.Fatalf("reloaded = %+v", got)
	}
	if got.SavedAt != 0 {
		t.Fatalf("unsaved run has saved_at = %d", got.SavedAt)
	}
}

func TestDailySQLStoreHistory(t *testing.T) {
	st := testSQLStore(t)

	finish := func(userID, symptom string, savedAt int64) {
		t.Helper()
		r, err := st.Create(userID)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		r.Step = StepComplete
		r.FreeText = symptom
		r.Advice = "advice"
		r.SavedAt = savedAt
		if err := st.Save(r); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	now := time.Now().Unix()
	finish("user-1", "older", now-100)
	finish("user-1", "newer", now)
	finish("someone-else", "other", now)

	// one unsaved run must not appear
	if _, err := st.Create("user-1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	hist, err := st.History("user-1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("history = %d entries, want 2", len(hist))
	}
	if hist[0].MainSymptom != "newer" || hist[1].MainSymptom != "older" {
		t.Fatalf("order = %q, %q", hist[0].MainSymptom, hist[1].MainSymptom)
	}

	hist, err = st.History("user-1", 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(hist) != 1 || hist[0].MainSymptom != "newer" {
		t.Fatalf("limited history = %+v", hist)
	}
}

func TestDailySQLStoreUnknownRun(t *testing.T) {
	st := testSQLStore(t)
	if _, err := st.Get("missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("get: err = %v", err)
	}
	if err := st.Save(NewRun("missing", "u")); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("save: err = %v", err)
	}
}
