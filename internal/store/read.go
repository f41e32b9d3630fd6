package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/placer/internal/engine"
)

// ErrRunNotFound is returned by GetRun for an unknown token.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns run records, newest first, up to limit.
// A limit of 0 or less returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
		SELECT token, created_at, total_people, total_activities,
		       n1, n2, n3, n4, unassigned, cancelled
		FROM runs
		ORDER BY created_at DESC, token DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return records, nil
}

// GetRun returns one run's record and its stored result document.
func (s *Store) GetRun(ctx context.Context, token string) (RunRecord, *engine.Result, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT token, created_at, total_people, total_activities,
		       n1, n2, n3, n4, unassigned, cancelled, result
		FROM runs
		WHERE token = ?
	`, token)

	var rec RunRecord
	var createdAt, doc string
	err := row.Scan(
		&rec.Token, &createdAt, &rec.TotalPeople, &rec.TotalActivities,
		&rec.N1, &rec.N2, &rec.N3, &rec.N4, &rec.Unassigned, &rec.Cancelled,
		&doc,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, nil, fmt.Errorf("get run %s: %w", token, ErrRunNotFound)
	}
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("get run %s: %w", token, err)
	}

	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunRecord{}, nil, fmt.Errorf("get run %s: parse created_at: %w", token, err)
	}

	var result engine.Result
	if err := json.Unmarshal([]byte(doc), &result); err != nil {
		return RunRecord{}, nil, fmt.Errorf("get run %s: decode result: %w", token, err)
	}

	return rec, &result, nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var rec RunRecord
	var createdAt string
	if err := sc.Scan(
		&rec.Token, &createdAt, &rec.TotalPeople, &rec.TotalActivities,
		&rec.N1, &rec.N2, &rec.N3, &rec.N4, &rec.Unassigned, &rec.Cancelled,
	); err != nil {
		return RunRecord{}, err
	}

	var err error
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	return rec, nil
}
