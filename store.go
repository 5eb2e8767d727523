package planflow

import "context"

// Store defines the contract for persisting and retrieving task detail
// snapshots. The editor never talks to a Store directly; its debounced
// update callback is typically wired to SaveDetails.
type Store interface {
	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Details snapshots, keyed by the owning task's ID.
	SaveDetails(ctx context.Context, taskID string, d *TaskDetails) error
	GetDetails(ctx context.Context, taskID string) (*TaskDetails, error)
	DeleteDetails(ctx context.Context, taskID string) error
	ListTaskIDs(ctx context.Context) ([]string, error)
}
