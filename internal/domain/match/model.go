package match

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSameTeams     = errors.New("teams are the same")
	ErrNegativeScore = errors.New("score cannot be negative")
)

// Match is a recorded result between two teams of one tournament.
type Match struct {
	ID           int64
	TournamentID int64
	HomeTeamID   int64
	AwayTeamID   int64
	HomeScored   int
	AwayScored   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (m Match) Result() Result {
	return Result{HomeScored: m.HomeScored, AwayScored: m.AwayScored}
}

// SamePairing reports whether home and away are exactly m's teams, in order.
func (m Match) SamePairing(homeTeamID, awayTeamID int64) bool {
	return m.HomeTeamID == homeTeamID && m.AwayTeamID == awayTeamID
}

func (m Match) Validate() error {
	if m.TournamentID <= 0 {
		return fmt.Errorf("match tournament id is required")
	}
	if m.HomeTeamID <= 0 || m.AwayTeamID <= 0 {
		return fmt.Errorf("match team ids are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return ErrSameTeams
	}
	return m.Result().Validate()
}

type Outcome string

const (
	OutcomeHomeWin Outcome = "home_win"
	OutcomeAwayWin Outcome = "away_win"
	OutcomeDraw    Outcome = "draw"
)

// Result is the final score of a match.
type Result struct {
	HomeScored int
	AwayScored int
}

func (r Result) Validate() error {
	if r.HomeScored < 0 || r.AwayScored < 0 {
		return fmt.Errorf("%w: %d-%d", ErrNegativeScore, r.HomeScored, r.AwayScored)
	}
	return nil
}

func (r Result) Outcome() Outcome {
	switch {
	case r.HomeScored > r.AwayScored:
		return OutcomeHomeWin
	case r.AwayScored > r.HomeScored:
		return OutcomeAwayWin
	default:
		return OutcomeDraw
	}
}
