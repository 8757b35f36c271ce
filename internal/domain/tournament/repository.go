package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
// Soft-deleted tournaments are invisible to every read, and writes on them
// report exists=false.
type Repository interface {
	Create(ctx context.Context, item Tournament) (Tournament, error)
	GetByID(ctx context.Context, id int64) (Tournament, bool, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	// Lifecycle transitions read through it.
	GetByIDForUpdate(ctx context.Context, id int64) (Tournament, bool, error)
	// GetByIDForShare blocks lifecycle transitions until the surrounding
	// transaction ends but not other shared readers.
	GetByIDForShare(ctx context.Context, id int64) (Tournament, bool, error)
	List(ctx context.Context, offset, limit int) ([]Tournament, error)
	ListStopped(ctx context.Context) ([]Tournament, error)
	UpdateTitle(ctx context.Context, id int64, title string) (Tournament, bool, error)
	// UpdateSchedule writes StartedAt and StoppedAt only.
	UpdateSchedule(ctx context.Context, item Tournament) (Tournament, bool, error)
	SoftDelete(ctx context.Context, id int64) (bool, error)
}
