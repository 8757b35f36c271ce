package standing

import (
	"sort"

	"github.com/riskibarqy/tournament-league/internal/domain/team"
)

// Row is one line of a league table.
type Row struct {
	Position int
	Team     team.Team
}

// Rank orders teams by points, then goal difference, both descending.
// Teams level on both keep their input order.
func Rank(teams []team.Team) []team.Team {
	out := append([]team.Team(nil), teams...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].GoalDifference() > out[j].GoalDifference()
	})
	return out
}

func Table(teams []team.Team) []Row {
	ranked := Rank(teams)
	rows := make([]Row, 0, len(ranked))
	for i, item := range ranked {
		rows = append(rows, Row{Position: i + 1, Team: item})
	}
	return rows
}

// Leader returns the top ranked team, if any.
func Leader(teams []team.Team) (team.Team, bool) {
	if len(teams) == 0 {
		return team.Team{}, false
	}
	return Rank(teams)[0], true
}
