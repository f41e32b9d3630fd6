package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/placer/internal/engine"
)

// RunRecord is one row of run history.
type RunRecord struct {
	Token           string    `json:"token"`
	CreatedAt       time.Time `json:"created_at"`
	TotalPeople     int       `json:"total_people"`
	TotalActivities int       `json:"total_activities"`
	N1              int       `json:"n1"`
	N2              int       `json:"n2"`
	N3              int       `json:"n3"`
	N4              int       `json:"n4"`
	Unassigned      int       `json:"unassigned"`
	Cancelled       int       `json:"cancelled"`
}

// WriteRun records a finished engine run under the given token.
// Uses ON CONFLICT(token) DO NOTHING for idempotency - recording the
// same run twice is silently ignored.
//
// The full result document is stored as JSON alongside the headline
// counters so history listings don't need to parse it.
func (s *Store) WriteRun(ctx context.Context, token string, createdAt time.Time, result *engine.Result) error {
	doc, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	sum := result.Statistics.Summary
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(token, created_at, total_people, total_activities, n1, n2, n3, n4, unassigned, cancelled, result)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(token) DO NOTHING
	`,
		token,
		createdAt.UTC().Format(time.RFC3339Nano),
		sum.TotalPeople,
		sum.TotalActivities,
		sum.N1,
		sum.N2,
		sum.N3,
		sum.N4,
		sum.Unassigned,
		len(result.CancelledActivities),
		string(doc),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}
