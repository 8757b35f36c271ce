package usecase

import (
	"context"
	"time"
)

// Transactor runs fn inside one store transaction. Repositories called with
// the ctx passed to fn take part in it; any error from fn rolls it back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func clockOrDefault(now func() time.Time) func() time.Time {
	if now == nil {
		return time.Now
	}
	return now
}
