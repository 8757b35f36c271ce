package tournament

import (
	"fmt"
	"strings"
	"time"
)

// State is derived from the start and stop timestamps and never stored.
type State string

const (
	StateDraft   State = "draft"
	StateStarted State = "started"
	StateStopped State = "stopped"
)

// Tournament is a competition that users join with a club.
type Tournament struct {
	ID        int64
	Title     string
	StartedAt *time.Time
	StoppedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Tournament) State() State {
	switch {
	case t.StoppedAt != nil:
		return StateStopped
	case t.StartedAt != nil:
		return StateStarted
	default:
		return StateDraft
	}
}

func (t Tournament) IsDraft() bool   { return t.State() == StateDraft }
func (t Tournament) IsStarted() bool { return t.State() == StateStarted }
func (t Tournament) IsStopped() bool { return t.State() == StateStopped }

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("tournament title is required")
	}
	if t.StoppedAt != nil {
		if t.StartedAt == nil {
			return fmt.Errorf("tournament cannot be stopped before it is started")
		}
		if t.StoppedAt.Before(*t.StartedAt) {
			return fmt.Errorf("tournament stop time is before its start time")
		}
	}

	return nil
}
