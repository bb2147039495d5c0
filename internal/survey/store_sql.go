package survey

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// SQLStore persists tests and results over database/sql. Questions live
// as a JSON column on the test row; results keep the raw answer payload
// verbatim. Works against both the sqlite and postgres drivers wired in
// internal/db.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutTest(ctx context.Context, t Test) error {
	qj, err := json.Marshal(t.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO tests
		(id,title,description,created_by,created_at,published,require_name,require_group,require_age,questions_json)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			title=EXCLUDED.title, description=EXCLUDED.description,
			published=EXCLUDED.published, require_name=EXCLUDED.require_name,
			require_group=EXCLUDED.require_group, require_age=EXCLUDED.require_age,
			questions_json=EXCLUDED.questions_json`,
		t.ID, t.Title, t.Description, t.CreatedBy, t.CreatedAt, t.Published,
		t.RequireName, t.RequireGroup, t.RequireAge, string(qj))
	return err
}

func (s *SQLStore) GetTest(ctx context.Context, id string) (Test, error) {
	t, err := s.getTest(ctx, id)
	if err != nil {
		return Test{}, err
	}
	if !t.Published {
		return Test{}, ErrTestNotFound
	}
	// Strip answer keys when serving to respondents.
	for i := range t.Questions {
		t.Questions[i].CorrectText = ""
		for j := range t.Questions[i].Options {
			t.Questions[i].Options[j].Correct = false
		}
	}
	return t, nil
}

func (s *SQLStore) GetTestAdmin(ctx context.Context, id string) (Test, error) {
	return s.getTest(ctx, id)
}

func (s *SQLStore) getTest(ctx context.Context, id string) (Test, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,description,created_by,created_at,
		published,require_name,require_group,require_age,questions_json
		FROM tests WHERE id=$1`, id)
	var t Test
	var qjson string
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedBy, &t.CreatedAt,
		&t.Published, &t.RequireName, &t.RequireGroup, &t.RequireAge, &qjson)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Test{}, ErrTestNotFound
		}
		return Test{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &t.Questions); err != nil {
		return Test{}, err
	}
	return t, nil
}

func (s *SQLStore) ListPublishedTests(ctx context.Context) ([]TestSummary, error) {
	return s.listTests(ctx, `SELECT id,title,description,created_at,published,questions_json
		FROM tests WHERE published=$1 ORDER BY created_at DESC`, true)
}

func (s *SQLStore) ListTestsByAuthor(ctx context.Context, userID string) ([]TestSummary, error) {
	return s.listTests(ctx, `SELECT id,title,description,created_at,published,questions_json
		FROM tests WHERE created_by=$1 ORDER BY created_at DESC`, userID)
}

func (s *SQLStore) listTests(ctx context.Context, query string, arg any) ([]TestSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []TestSummary{}
	for rows.Next() {
		var ts TestSummary
		var qjson string
		if err := rows.Scan(&ts.ID, &ts.Title, &ts.Description, &ts.CreatedAt, &ts.Published, &qjson); err != nil {
			return nil, err
		}
		var qs []Question
		if err := json.Unmarshal([]byte(qjson), &qs); err == nil {
			ts.QuestionCount = len(qs)
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

// DeleteTest removes the test and its results in one transaction. The
// schema also declares ON DELETE CASCADE, but the ownership rule is
// explicit here rather than left to the database.
func (s *SQLStore) DeleteTest(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results WHERE test_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM tests WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTestNotFound
	}
	return tx.Commit()
}

func (s *SQLStore) SaveResult(ctx context.Context, r Result) (string, error) {
	_, err := s.db.ExecContext(ctx, `INSERT INTO results
		(id,test_id,user_name,respondent_group,age,completed_at,score,max_score,answers_json)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		r.ID, r.TestID, r.UserName, r.Group, r.Age, r.CompletedAt, r.Score, r.MaxScore, r.AnswersJSON)
	if err != nil {
		return "", err
	}
	return r.ID, nil
}

func (s *SQLStore) GetResult(ctx context.Context, id string) (Result, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,test_id,user_name,respondent_group,age,
		completed_at,score,max_score,answers_json FROM results WHERE id=$1`, id)
	var r Result
	err := row.Scan(&r.ID, &r.TestID, &r.UserName, &r.Group, &r.Age,
		&r.CompletedAt, &r.Score, &r.MaxScore, &r.AnswersJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Result{}, ErrResultNotFound
		}
		return Result{}, err
	}
	return r, nil
}

func (s *SQLStore) ListResults(ctx context.Context, testID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,test_id,user_name,respondent_group,age,
		completed_at,score,max_score,answers_json FROM results
		WHERE test_id=$1 ORDER BY completed_at DESC`, testID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.ID, &r.TestID, &r.UserName, &r.Group, &r.Age,
			&r.CompletedAt, &r.Score, &r.MaxScore, &r.AnswersJSON); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
