package dailycheck

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Create(userID string) (*Run, error) {
	r := NewRun(uuid.NewString(), userID)
	ansJSON, _ := json.Marshal(r.Answers)
	_, err := s.db.Exec(`INSERT INTO daily_runs
		(id,user_id,step,question_index,answers_json,body_condition,mind_condition,free_text,advice,created_at)
		VALUES ($1,$2,$3,0,$4,$5,$6,'','',$7)`,
		r.ID, r.UserID, string(r.Step), string(ansJSON), r.BodyCondition, r.MindCondition, r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *SQLStore) Get(id string) (*Run, error) {
	row := s.db.QueryRow(`SELECT id,user_id,step,question_index,answers_json,body_condition,mind_condition,free_text,advice,created_at,saved_at
		FROM daily_runs WHERE id=$1`, id)
	var r Run
	var step, ansJSON string
	var saved sql.NullInt64
	if err := row.Scan(&r.ID, &r.UserID, &step, &r.QuestionIndex, &ansJSON,
		&r.BodyCondition, &r.MindCondition, &r.FreeText, &r.Advice, &r.CreatedAt, &saved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	r.Step = Step(step)
	if err := json.Unmarshal([]byte(ansJSON), &r.Answers); err != nil {
		return nil, err
	}
	if r.Answers == nil {
		r.Answers = map[string]string{}
	}
	if saved.Valid {
		r.SavedAt = saved.Int64
	}
	return &r, nil
}

func (s *SQLStore) Save(r *Run) error {
	ansJSON, _ := json.Marshal(r.Answers)
	var saved interface{}
	if r.SavedAt != 0 {
		saved = r.SavedAt
	}
	res, err := s.db.Exec(`UPDATE daily_runs
		SET step=$1, question_index=$2, answers_json=$3, body_condition=$4,
		    mind_condition=$5, free_text=$6, advice=$7, saved_at=$8
		WHERE id=$9`,
		string(r.Step), r.QuestionIndex, string(ansJSON), r.BodyCondition,
		r.MindCondition, r.FreeText, r.Advice, saved, r.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRunNotFound
	}
	return nil
}

func (s *SQLStore) History(userID string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.Query(`SELECT id,saved_at,body_condition,mind_condition,free_text,advice
		FROM daily_runs WHERE user_id=$1 AND saved_at IS NOT NULL
		ORDER BY saved_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.BodyCondition, &e.MindCondition, &e.MainSymptom, &e.Advice); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
