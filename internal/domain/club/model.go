package club

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrDuplicateTitle = errors.New("club title already exists")

// Club is a reference entity a user fields when joining a tournament.
type Club struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Club) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("club title is required")
	}
	return nil
}
