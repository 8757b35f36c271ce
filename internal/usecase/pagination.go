package usecase

import "fmt"

const (
	DefaultPageLimit = 30
	MaxPageLimit     = 100
)

func normalizePage(offset, limit int) (int, int, error) {
	if offset < 0 {
		return 0, 0, fmt.Errorf("%w: offset must be >= 0", ErrInvalidInput)
	}
	if limit < 0 || limit > MaxPageLimit {
		return 0, 0, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxPageLimit)
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	return offset, limit, nil
}
