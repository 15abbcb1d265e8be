package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/growthlab/diagnostic/internal/api"
	"github.com/growthlab/diagnostic/internal/models"
	"github.com/growthlab/diagnostic/internal/services"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    email      TEXT NOT NULL UNIQUE,
    pass_hash  BLOB NOT NULL,
    created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS diagnostic_results (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    test_id         TEXT NOT NULL,
    answers         TEXT NOT NULL,
    scores          TEXT NOT NULL,
    overall_score   INTEGER NOT NULL,
    recommendations TEXT NOT NULL,
    completed_at    TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_user ON diagnostic_results(user_id);
`

// SQLiteStore persists users and diagnostic results. Nested records
// (answers, scores, recommendations) are stored as JSON columns; they are
// written once and read whole, so there is nothing to query inside them.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

var _ api.Store = (*SQLiteStore)(nil)

// classify maps locked/busy sqlite errors onto the transient error code so
// the save path retries them.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se sqlite3.Error
	if errors.As(err, &se) && (se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked) {
		return services.NewBadGatewayError(err.Error())
	}
	return err
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SQLiteStore) AddResult(r *models.DiagnosticResult) error {
	if r == nil {
		return services.NewInvalidError("result required")
	}
	answers, err := encodeJSON(r.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	scores, err := encodeJSON(r.Scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	recs, err := encodeJSON(r.Recommendations)
	if err != nil {
		return fmt.Errorf("encode recommendations: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO diagnostic_results (id, user_id, test_id, answers, scores, overall_score, recommendations, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.UserID, r.TestID, answers, scores, r.OverallScore, recs, r.CompletedAt.UTC(),
	)
	return classify(err)
}

func (s *SQLiteStore) ListResultsByUser(userID string) ([]*models.DiagnosticResult, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, test_id, answers, scores, overall_score, recommendations, completed_at
		 FROM diagnostic_results WHERE user_id = ? ORDER BY completed_at ASC, rowid ASC`,
		userID,
	)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	out := []*models.DiagnosticResult{}
	for rows.Next() {
		var (
			r                     models.DiagnosticResult
			answers, scores, recs string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.TestID, &answers, &scores, &r.OverallScore, &recs, &r.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(answers), &r.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(scores), &r.Scores); err != nil {
			return nil, fmt.Errorf("decode scores for %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(recs), &r.Recommendations); err != nil {
			return nil, fmt.Errorf("decode recommendations for %s: %w", r.ID, err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) DeleteResultsBefore(cutoff time.Time) (int, error) {
	res, err := s.db.Exec(`DELETE FROM diagnostic_results WHERE completed_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, classify(err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *SQLiteStore) AddUser(u *models.User) error {
	if u == nil {
		return services.NewInvalidError("user required")
	}
	_, err := s.db.Exec(
		`INSERT INTO users (id, email, pass_hash, created_at) VALUES (?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, u.CreatedAt.UTC(),
	)
	var se sqlite3.Error
	if errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return services.NewConflictError("email exists")
	}
	return classify(err)
}

func (s *SQLiteStore) FindUserByEmail(email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(
		`SELECT id, email, pass_hash, created_at FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.PassHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, classify(err)
	}
	return &u, nil
}
