package postgres

import (
	"time"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
)

type tournamentTableModel struct {
	ID        int64      `db:"id"`
	Title     string     `db:"title"`
	StartedAt *time.Time `db:"started_at"`
	StoppedAt *time.Time `db:"stopped_at"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type tournamentInsertModel struct {
	Title string `db:"title"`
}

func tournamentFromRow(row tournamentTableModel) tournament.Tournament {
	return tournament.Tournament{
		ID:        row.ID,
		Title:     row.Title,
		StartedAt: row.StartedAt,
		StoppedAt: row.StoppedAt,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type teamTableModel struct {
	ID           int64      `db:"id"`
	TournamentID int64      `db:"tournament_id"`
	UserID       int64      `db:"user_id"`
	ClubID       int64      `db:"club_id"`
	Scored       int        `db:"scored"`
	Missed       int        `db:"missed"`
	Wins         int        `db:"wins"`
	Draws        int        `db:"draws"`
	Losses       int        `db:"losses"`
	Points       int        `db:"points"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	TournamentID int64 `db:"tournament_id"`
	UserID       int64 `db:"user_id"`
	ClubID       int64 `db:"club_id"`
}

func teamFromRow(row teamTableModel) team.Team {
	return team.Team{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		UserID:       row.UserID,
		ClubID:       row.ClubID,
		Scored:       row.Scored,
		Missed:       row.Missed,
		Wins:         row.Wins,
		Draws:        row.Draws,
		Losses:       row.Losses,
		Points:       row.Points,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

type matchTableModel struct {
	ID           int64     `db:"id"`
	TournamentID int64     `db:"tournament_id"`
	HomeTeamID   int64     `db:"home_team_id"`
	AwayTeamID   int64     `db:"away_team_id"`
	HomeScored   int       `db:"home_scored"`
	AwayScored   int       `db:"away_scored"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	TournamentID int64 `db:"tournament_id"`
	HomeTeamID   int64 `db:"home_team_id"`
	AwayTeamID   int64 `db:"away_team_id"`
	HomeScored   int   `db:"home_scored"`
	AwayScored   int   `db:"away_scored"`
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:           row.ID,
		TournamentID: row.TournamentID,
		HomeTeamID:   row.HomeTeamID,
		AwayTeamID:   row.AwayTeamID,
		HomeScored:   row.HomeScored,
		AwayScored:   row.AwayScored,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

type clubTableModel struct {
	ID        int64      `db:"id"`
	Title     string     `db:"title"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type clubInsertModel struct {
	Title string `db:"title"`
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:        row.ID,
		Title:     row.Title,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

type userTableModel struct {
	ID           int64      `db:"id"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Role         int        `db:"role"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type userInsertModel struct {
	Name         string `db:"name"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Role         int    `db:"role"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         user.Role(row.Role),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
