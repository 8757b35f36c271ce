package match

import "github.com/riskibarqy/tournament-league/internal/domain/team"

const (
	PointsForWin  = 3
	PointsForDraw = 1
)

// Deltas returns the counter changes a result applies to the home and away teams.
func Deltas(r Result) (home, away team.Delta) {
	home = team.Delta{Scored: r.HomeScored, Missed: r.AwayScored}
	away = team.Delta{Scored: r.AwayScored, Missed: r.HomeScored}

	switch r.Outcome() {
	case OutcomeHomeWin:
		home.Wins, home.Points = 1, PointsForWin
		away.Losses = 1
	case OutcomeAwayWin:
		away.Wins, away.Points = 1, PointsForWin
		home.Losses = 1
	default:
		home.Draws, home.Points = 1, PointsForDraw
		away.Draws, away.Points = 1, PointsForDraw
	}

	return home, away
}

// RevisionDeltas folds "undo previous, apply next" into one change per team.
func RevisionDeltas(previous, next Result) (home, away team.Delta) {
	oldHome, oldAway := Deltas(previous)
	newHome, newAway := Deltas(next)
	return oldHome.Negate().Add(newHome), oldAway.Negate().Add(newAway)
}
