package questionnaire

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) Create(userID string) (*Session, error) {
	sess := NewSession(uuid.NewString(), userID)
	posJSON, _ := json.Marshal(sess.Position)
	ansJSON, _ := json.Marshal(sess.Answers)
	_, err := s.db.Exec(`INSERT INTO questionnaire_sessions
		(id,user_id,position_json,answers_json,complaint,started_at)
		VALUES ($1,$2,$3,$4,'',$5)`,
		sess.ID, sess.UserID, string(posJSON), string(ansJSON), sess.StartedAt)
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SQLStore) Get(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT id,user_id,position_json,answers_json,complaint,started_at,completed_at
		FROM questionnaire_sessions WHERE id=$1`, id)
	var sess Session
	var posJSON, ansJSON string
	var completed sql.NullInt64
	if err := row.Scan(&sess.ID, &sess.UserID, &posJSON, &ansJSON, &sess.Complaint, &sess.StartedAt, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(posJSON), &sess.Position); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ansJSON), &sess.Answers); err != nil {
		return nil, err
	}
	if sess.Answers == nil {
		sess.Answers = map[string]Answer{}
	}
	if completed.Valid {
		sess.CompletedAt = completed.Int64
	}
	return &sess, nil
}

func (s *SQLStore) Save(sess *Session) error {
	if sess.Position.Step == StepComplete || sess.Position.Step == StepResults {
		if sess.CompletedAt == 0 {
			sess.CompletedAt = time.Now().Unix()
		}
	}
	posJSON, _ := json.Marshal(sess.Position)
	ansJSON, _ := json.Marshal(sess.Answers)
	var completed interface{}
	if sess.CompletedAt != 0 {
		completed = sess.CompletedAt
	}
	res, err := s.db.Exec(`UPDATE questionnaire_sessions
		SET position_json=$1, answers_json=$2, complaint=$3, completed_at=$4
		WHERE id=$5`,
		string(posJSON), string(ansJSON), sess.Complaint, completed, sess.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
