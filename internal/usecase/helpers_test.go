package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// memoryEnv wires every service against one in-memory store.
type memoryEnv struct {
	store       *memory.Store
	clock       *testClock
	tournaments *memory.TournamentRepository
	teams       *memory.TeamRepository
	matches     *memory.MatchRepository
	clubs       *memory.ClubRepository
	users       *memory.UserRepository

	tournamentService *TournamentService
	membershipService *MembershipService
	matchService      *MatchService
	statisticsService *StatisticsService
}

func newMemoryEnv(t *testing.T) *memoryEnv {
	t.Helper()

	clock := &testClock{now: time.Date(2024, 4, 1, 18, 0, 0, 0, time.UTC)}
	store := memory.NewStore(clock.Now)
	if err := memory.Seed(context.Background(), store, memory.SeedClubs()); err != nil {
		t.Fatalf("seed clubs: %v", err)
	}

	env := &memoryEnv{
		store:       store,
		clock:       clock,
		tournaments: memory.NewTournamentRepository(store),
		teams:       memory.NewTeamRepository(store),
		matches:     memory.NewMatchRepository(store),
		clubs:       memory.NewClubRepository(store),
		users:       memory.NewUserRepository(store),
	}
	logger := logging.NewNop()
	env.tournamentService = NewTournamentService(env.tournaments, env.teams, env.matches, env.clubs, store, clock.Now)
	env.membershipService = NewMembershipService(env.tournaments, env.teams, env.clubs, store, logger)
	env.matchService = NewMatchService(env.tournaments, env.teams, env.matches, store, logger)
	env.statisticsService = NewStatisticsService(env.users, env.tournaments, env.teams, 2)
	return env
}

func (e *memoryEnv) createUser(t *testing.T, name string) user.User {
	t.Helper()

	created, err := e.users.Create(context.Background(), user.User{Name: name, Email: name + "@example.com", PasswordHash: "x"})
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return created
}

func (e *memoryEnv) createTournament(t *testing.T, title string) tournament.Tournament {
	t.Helper()

	created, err := e.tournamentService.Create(context.Background(), title)
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	return created
}

func (e *memoryEnv) join(t *testing.T, tournamentID, userID, clubID int64) team.Team {
	t.Helper()

	joined, err := e.membershipService.Join(context.Background(), JoinTournamentInput{
		UserID:       userID,
		TournamentID: tournamentID,
		ClubID:       clubID,
	})
	if err != nil {
		t.Fatalf("join tournament: %v", err)
	}
	return joined
}

func (e *memoryEnv) start(t *testing.T, tournamentID int64) {
	t.Helper()

	if _, err := e.tournamentService.Start(context.Background(), tournamentID); err != nil {
		t.Fatalf("start tournament: %v", err)
	}
}

func (e *memoryEnv) stop(t *testing.T, tournamentID int64) {
	t.Helper()

	e.clock.Advance(time.Hour)
	if _, err := e.tournamentService.Stop(context.Background(), tournamentID); err != nil {
		t.Fatalf("stop tournament: %v", err)
	}
}

func (e *memoryEnv) team(t *testing.T, tournamentID, teamID int64) team.Team {
	t.Helper()

	item, exists, err := e.teams.GetByID(context.Background(), tournamentID, teamID)
	if err != nil || !exists {
		t.Fatalf("get team %d: exists=%v err=%v", teamID, exists, err)
	}
	return item
}

// passthroughTransactor runs fn directly; used with mocked repositories.
type passthroughTransactor struct{}

func (passthroughTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
