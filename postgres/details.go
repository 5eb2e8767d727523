package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meikuraledutech/planflow"
)

// SaveDetails upserts the full details snapshot for a task. The editor
// only ever pushes latest-state snapshots, so last write wins.
func (s *PGStore) SaveDetails(ctx context.Context, taskID string, d *planflow.TaskDetails) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("planflow: marshal details: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO task_details (task_id, details, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (task_id) DO UPDATE SET details = EXCLUDED.details, updated_at = NOW()`,
		taskID, data,
	)
	if err != nil {
		return fmt.Errorf("planflow: save details %s: %w", taskID, err)
	}
	return nil
}

// GetDetails fetches the details snapshot for a task.
// Returns nil, nil if the task has no stored details.
func (s *PGStore) GetDetails(ctx context.Context, taskID string) (*planflow.TaskDetails, error) {
	var data []byte
	err := s.db.QueryRow(ctx,
		`SELECT details FROM task_details WHERE task_id = $1`, taskID,
	).Scan(&data)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("planflow: get details %s: %w", taskID, err)
	}

	var d planflow.TaskDetails
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("planflow: unmarshal details %s: %w", taskID, err)
	}
	return &d, nil
}

// DeleteDetails removes the stored snapshot for a task.
// No error if the task has none.
func (s *PGStore) DeleteDetails(ctx context.Context, taskID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM task_details WHERE task_id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("planflow: delete details %s: %w", taskID, err)
	}
	return nil
}

// ListTaskIDs returns the IDs of all tasks with stored details, oldest
// first. Returns an empty slice (not nil) if none found.
func (s *PGStore) ListTaskIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT task_id FROM task_details ORDER BY updated_at`)
	if err != nil {
		return nil, fmt.Errorf("planflow: list tasks: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("planflow: scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("planflow: rows tasks: %w", err)
	}

	return ids, nil
}
