package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS task_details (
    task_id    TEXT PRIMARY KEY,
    details    JSONB NOT NULL DEFAULT '{}',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// CreateSchema creates the task_details table if it doesn't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return err
}

// DropSchema drops the task_details table.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS task_details CASCADE;`)
	return err
}
