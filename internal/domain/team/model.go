package team

import (
	"errors"
	"fmt"
	"time"
)

var ErrDuplicate = errors.New("team already exists in tournament")

// Team is one user fielding one club inside a tournament. The aggregate
// counters are written only by match recording.
type Team struct {
	ID           int64
	TournamentID int64
	UserID       int64
	ClubID       int64
	Scored       int
	Missed       int
	Wins         int
	Draws        int
	Losses       int
	Points       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t Team) Validate() error {
	if t.TournamentID <= 0 {
		return fmt.Errorf("team tournament id is required")
	}
	if t.UserID <= 0 {
		return fmt.Errorf("team user id is required")
	}
	if t.ClubID <= 0 {
		return fmt.Errorf("team club id is required")
	}

	return nil
}

func (t Team) GoalDifference() int {
	return t.Scored - t.Missed
}

func (t Team) Played() int {
	return t.Wins + t.Draws + t.Losses
}

// Apply returns a copy of t with d added to its counters.
func (t Team) Apply(d Delta) Team {
	t.Scored += d.Scored
	t.Missed += d.Missed
	t.Wins += d.Wins
	t.Draws += d.Draws
	t.Losses += d.Losses
	t.Points += d.Points
	return t
}

// Delta is a signed change to a team's aggregate counters.
type Delta struct {
	Scored int
	Missed int
	Wins   int
	Draws  int
	Losses int
	Points int
}

func (d Delta) Add(other Delta) Delta {
	return Delta{
		Scored: d.Scored + other.Scored,
		Missed: d.Missed + other.Missed,
		Wins:   d.Wins + other.Wins,
		Draws:  d.Draws + other.Draws,
		Losses: d.Losses + other.Losses,
		Points: d.Points + other.Points,
	}
}

func (d Delta) Negate() Delta {
	return Delta{
		Scored: -d.Scored,
		Missed: -d.Missed,
		Wins:   -d.Wins,
		Draws:  -d.Draws,
		Losses: -d.Losses,
		Points: -d.Points,
	}
}

func (d Delta) IsZero() bool {
	return d == Delta{}
}
