package httpapi

import (
	"time"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/standing"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/usecase"
)

type tournamentDTO struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	State     string     `json:"state"`
	StartedAt *time.Time `json:"startedAt"`
	StoppedAt *time.Time `json:"stoppedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type tournamentInfoDTO struct {
	tournamentDTO
	Teams    []teamDTO  `json:"teams"`
	Matches  []matchDTO `json:"matches"`
	IsJoined bool       `json:"isJoined"`
}

type teamDTO struct {
	ID             int64 `json:"id"`
	TournamentID   int64 `json:"tournamentId"`
	UserID         int64 `json:"userId"`
	ClubID         int64 `json:"clubId"`
	Played         int   `json:"played"`
	Wins           int   `json:"wins"`
	Draws          int   `json:"draws"`
	Losses         int   `json:"losses"`
	Scored         int   `json:"scored"`
	Missed         int   `json:"missed"`
	GoalDifference int   `json:"goalDifference"`
	Points         int   `json:"points"`
}

type standingDTO struct {
	Position int     `json:"position"`
	Team     teamDTO `json:"team"`
}

type matchDTO struct {
	ID           int64     `json:"id"`
	TournamentID int64     `json:"tournamentId"`
	HomeID       int64     `json:"homeId"`
	AwayID       int64     `json:"awayId"`
	HomeScored   int       `json:"homeScored"`
	AwayScored   int       `json:"awayScored"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type clubDTO struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type userDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      int       `json:"role"`
	RoleName  string    `json:"roleName"`
	CreatedAt time.Time `json:"createdAt"`
}

type statisticsDTO struct {
	TotalMatches int `json:"totalMatches"`
	Wins         int `json:"wins"`
	Draws        int `json:"draws"`
	Losses       int `json:"losses"`
	Champion     int `json:"champion"`
}

type sessionDTO struct {
	ID       int64  `json:"id"`
	APIToken string `json:"api_token"`
}

func tournamentToDTO(item tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:        item.ID,
		Title:     item.Title,
		State:     string(item.State()),
		StartedAt: item.StartedAt,
		StoppedAt: item.StoppedAt,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func tournamentsToDTO(items []tournament.Tournament) []tournamentDTO {
	out := make([]tournamentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentToDTO(item))
	}
	return out
}

func tournamentInfoToDTO(info usecase.TournamentInfo) tournamentInfoDTO {
	return tournamentInfoDTO{
		tournamentDTO: tournamentToDTO(info.Tournament),
		Teams:         teamsToDTO(info.Teams),
		Matches:       matchesToDTO(info.Matches),
		IsJoined:      info.IsJoined,
	}
}

func teamToDTO(item team.Team) teamDTO {
	return teamDTO{
		ID:             item.ID,
		TournamentID:   item.TournamentID,
		UserID:         item.UserID,
		ClubID:         item.ClubID,
		Played:         item.Played(),
		Wins:           item.Wins,
		Draws:          item.Draws,
		Losses:         item.Losses,
		Scored:         item.Scored,
		Missed:         item.Missed,
		GoalDifference: item.GoalDifference(),
		Points:         item.Points,
	}
}

func teamsToDTO(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	return out
}

func standingsToDTO(rows []standing.Row) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingDTO{Position: row.Position, Team: teamToDTO(row.Team)})
	}
	return out
}

func matchToDTO(item match.Match) matchDTO {
	return matchDTO{
		ID:           item.ID,
		TournamentID: item.TournamentID,
		HomeID:       item.HomeTeamID,
		AwayID:       item.AwayTeamID,
		HomeScored:   item.HomeScored,
		AwayScored:   item.AwayScored,
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	}
}

func matchesToDTO(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchToDTO(item))
	}
	return out
}

func clubToDTO(item club.Club) clubDTO {
	return clubDTO{ID: item.ID, Title: item.Title}
}

func clubsToDTO(items []club.Club) []clubDTO {
	out := make([]clubDTO, 0, len(items))
	for _, item := range items {
		out = append(out, clubToDTO(item))
	}
	return out
}

func userToDTO(item user.User) userDTO {
	return userDTO{
		ID:        item.ID,
		Name:      item.Name,
		Email:     item.Email,
		Role:      int(item.Role),
		RoleName:  item.Role.String(),
		CreatedAt: item.CreatedAt,
	}
}

func usersToDTO(items []user.User) []userDTO {
	out := make([]userDTO, 0, len(items))
	for _, item := range items {
		out = append(out, userToDTO(item))
	}
	return out
}

func statisticsToDTO(stats usecase.Statistics) statisticsDTO {
	return statisticsDTO{
		TotalMatches: stats.TotalMatches,
		Wins:         stats.Wins,
		Draws:        stats.Draws,
		Losses:       stats.Losses,
		Champion:     stats.Champion,
	}
}

func sessionToDTO(session usecase.Session) sessionDTO {
	return sessionDTO{ID: session.UserID, APIToken: session.Token}
}
