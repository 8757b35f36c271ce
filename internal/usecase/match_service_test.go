package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	matchmock "github.com/riskibarqy/tournament-league/internal/mocks/domain/match"
	teammock "github.com/riskibarqy/tournament-league/internal/mocks/domain/team"
	tournamentmock "github.com/riskibarqy/tournament-league/internal/mocks/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

type cupFixture struct {
	env        *memoryEnv
	tournament tournament.Tournament
	home       team.Team
	away       team.Team
}

func newStartedCup(t *testing.T) cupFixture {
	t.Helper()

	env := newMemoryEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	cup := env.createTournament(t, "Cup")
	home := env.join(t, cup.ID, alice.ID, 1)
	away := env.join(t, cup.ID, bob.ID, 2)
	env.start(t, cup.ID)

	return cupFixture{env: env, tournament: cup, home: home, away: away}
}

func (f cupFixture) record(t *testing.T, homeScored, awayScored int) match.Match {
	t.Helper()

	recorded, err := f.env.matchService.Record(context.Background(), RecordMatchInput{
		TournamentID: f.tournament.ID,
		HomeTeamID:   f.home.ID,
		AwayTeamID:   f.away.ID,
		Result:       match.Result{HomeScored: homeScored, AwayScored: awayScored},
	})
	if err != nil {
		t.Fatalf("record %d-%d: %v", homeScored, awayScored, err)
	}
	return recorded
}

func assertCounters(t *testing.T, got team.Team, want team.Delta) {
	t.Helper()

	have := team.Delta{
		Scored: got.Scored,
		Missed: got.Missed,
		Wins:   got.Wins,
		Draws:  got.Draws,
		Losses: got.Losses,
		Points: got.Points,
	}
	if have != want {
		t.Fatalf("team %d counters: got %+v want %+v", got.ID, have, want)
	}
}

func TestMatchService_RecordAndRevise(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStartedCup(t)

	recorded := f.record(t, 3, 1)
	assertCounters(t, f.env.team(t, f.tournament.ID, f.home.ID), team.Delta{Scored: 3, Missed: 1, Wins: 1, Points: 3})
	assertCounters(t, f.env.team(t, f.tournament.ID, f.away.ID), team.Delta{Scored: 1, Missed: 3, Losses: 1})

	revised, err := f.env.matchService.Revise(ctx, ReviseMatchInput{
		TournamentID: f.tournament.ID,
		MatchID:      recorded.ID,
		HomeTeamID:   f.home.ID,
		AwayTeamID:   f.away.ID,
		Result:       match.Result{HomeScored: 1, AwayScored: 1},
	})
	if err != nil {
		t.Fatalf("revise match: %v", err)
	}
	if revised.HomeScored != 1 || revised.AwayScored != 1 || revised.ID != recorded.ID {
		t.Fatalf("unexpected revised match %+v", revised)
	}

	draw := team.Delta{Scored: 1, Missed: 1, Draws: 1, Points: 1}
	assertCounters(t, f.env.team(t, f.tournament.ID, f.home.ID), draw)
	assertCounters(t, f.env.team(t, f.tournament.ID, f.away.ID), draw)

	matches, err := f.env.matchService.ListByTournament(ctx, f.tournament.ID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 1 || matches[0].Result() != (match.Result{HomeScored: 1, AwayScored: 1}) {
		t.Fatalf("unexpected matches %+v", matches)
	}
}

func TestMatchService_ReviseEqualsDirectRecord(t *testing.T) {
	t.Parallel()

	results := []match.Result{
		{HomeScored: 0, AwayScored: 0},
		{HomeScored: 2, AwayScored: 0},
		{HomeScored: 1, AwayScored: 4},
		{HomeScored: 3, AwayScored: 3},
	}

	for _, from := range results {
		for _, to := range results {
			revisedCup := newStartedCup(t)
			recorded := revisedCup.record(t, from.HomeScored, from.AwayScored)
			if _, err := revisedCup.env.matchService.Revise(context.Background(), ReviseMatchInput{
				TournamentID: revisedCup.tournament.ID,
				MatchID:      recorded.ID,
				HomeTeamID:   revisedCup.home.ID,
				AwayTeamID:   revisedCup.away.ID,
				Result:       to,
			}); err != nil {
				t.Fatalf("revise %+v -> %+v: %v", from, to, err)
			}

			directCup := newStartedCup(t)
			directCup.record(t, to.HomeScored, to.AwayScored)

			for _, pair := range [][2]team.Team{
				{revisedCup.env.team(t, revisedCup.tournament.ID, revisedCup.home.ID), directCup.env.team(t, directCup.tournament.ID, directCup.home.ID)},
				{revisedCup.env.team(t, revisedCup.tournament.ID, revisedCup.away.ID), directCup.env.team(t, directCup.tournament.ID, directCup.away.ID)},
			} {
				got, want := pair[0], pair[1]
				if got.Scored != want.Scored || got.Missed != want.Missed || got.Wins != want.Wins ||
					got.Draws != want.Draws || got.Losses != want.Losses || got.Points != want.Points {
					t.Fatalf("revise %+v -> %+v: got %+v want %+v", from, to, got, want)
				}
			}
		}
	}
}

func TestMatchService_AggregatesStayConsistent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newMemoryEnv(t)
	cup := env.createTournament(t, "League")
	teams := make([]team.Team, 4)
	for i := range teams {
		member := env.createUser(t, string(rune('p'+i)))
		teams[i] = env.join(t, cup.ID, member.ID, int64(i+1))
	}
	env.start(t, cup.ID)

	scores := [][2]int{{2, 1}, {0, 0}, {1, 3}, {4, 4}, {5, 0}, {1, 2}}
	n := 0
	for i := range teams {
		for j := i + 1; j < len(teams); j++ {
			score := scores[n%len(scores)]
			n++
			if _, err := env.matchService.Record(ctx, RecordMatchInput{
				TournamentID: cup.ID,
				HomeTeamID:   teams[i].ID,
				AwayTeamID:   teams[j].ID,
				Result:       match.Result{HomeScored: score[0], AwayScored: score[1]},
			}); err != nil {
				t.Fatalf("record match: %v", err)
			}
		}
	}

	items, err := env.teams.ListByTournament(ctx, cup.ID)
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}

	var scored, missed, wins, losses, draws int
	for _, item := range items {
		if item.Points != 3*item.Wins+item.Draws {
			t.Fatalf("points invariant broken for %+v", item)
		}
		scored += item.Scored
		missed += item.Missed
		wins += item.Wins
		losses += item.Losses
		draws += item.Draws
	}
	if scored != missed {
		t.Fatalf("goals do not balance: scored=%d missed=%d", scored, missed)
	}
	if wins != losses || draws%2 != 0 {
		t.Fatalf("results do not balance: wins=%d losses=%d draws=%d", wins, losses, draws)
	}
}

func TestMatchService_RecordRejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newMemoryEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")
	cup := env.createTournament(t, "Cup")
	other := env.createTournament(t, "Other")
	home := env.join(t, cup.ID, alice.ID, 1)
	away := env.join(t, cup.ID, bob.ID, 2)
	outsider := env.join(t, other.ID, carol.ID, 3)

	input := RecordMatchInput{TournamentID: cup.ID, HomeTeamID: home.ID, AwayTeamID: away.ID, Result: match.Result{HomeScored: 1}}
	if _, err := env.matchService.Record(ctx, input); err == nil || err.Error() != "invalid state: the tournament not started yet" {
		t.Fatalf("unexpected error for draft tournament: %v", err)
	}

	env.start(t, cup.ID)

	tests := []struct {
		name       string
		input      RecordMatchInput
		wantReason string
	}{
		{
			name:       "unknown tournament",
			input:      RecordMatchInput{TournamentID: 404, HomeTeamID: home.ID, AwayTeamID: away.ID},
			wantReason: "resource not found: the tournament doesn't exist",
		},
		{
			name:       "missing home team",
			input:      RecordMatchInput{TournamentID: cup.ID, HomeTeamID: 404, AwayTeamID: away.ID},
			wantReason: "resource not found: home team doesn't exist",
		},
		{
			name:       "away team from another tournament",
			input:      RecordMatchInput{TournamentID: cup.ID, HomeTeamID: home.ID, AwayTeamID: outsider.ID},
			wantReason: "resource not found: away team doesn't exist",
		},
		{
			name:       "negative score",
			input:      RecordMatchInput{TournamentID: cup.ID, HomeTeamID: home.ID, AwayTeamID: away.ID, Result: match.Result{HomeScored: -1}},
			wantReason: "invalid input: score cannot be negative: -1-0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.matchService.Record(ctx, tt.input)
			if err == nil || err.Error() != tt.wantReason {
				t.Fatalf("expected %q, got %v", tt.wantReason, err)
			}
		})
	}

	env.stop(t, cup.ID)
	if _, err := env.matchService.Record(ctx, input); err == nil || err.Error() != "invalid state: the tournament has ended" {
		t.Fatalf("unexpected error for stopped tournament: %v", err)
	}

	assertCounters(t, env.team(t, cup.ID, home.ID), team.Delta{})
	assertCounters(t, env.team(t, cup.ID, away.ID), team.Delta{})
}

func TestMatchService_SameTeamsRejectedBeforeStore(t *testing.T) {
	t.Parallel()

	// The mocks carry no expectations, so any repository call fails the test.
	service := NewMatchService(
		tournamentmock.NewRepository(t),
		teammock.NewRepository(t),
		matchmock.NewRepository(t),
		passthroughTransactor{},
		logging.NewNop(),
	)

	_, err := service.Record(context.Background(), RecordMatchInput{
		TournamentID: 1,
		HomeTeamID:   5,
		AwayTeamID:   5,
		Result:       match.Result{HomeScored: 2, AwayScored: 0},
	})
	if KindOf(err) != KindValidation || err.Error() != "invalid input: teams are the same" {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestMatchService_RevisePairingIsFixed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStartedCup(t)
	recorded := f.record(t, 2, 0)

	_, err := f.env.matchService.Revise(ctx, ReviseMatchInput{
		TournamentID: f.tournament.ID,
		MatchID:      recorded.ID,
		HomeTeamID:   f.away.ID,
		AwayTeamID:   f.home.ID,
		Result:       match.Result{HomeScored: 0, AwayScored: 2},
	})
	if KindOf(err) != KindValidation || err.Error() != "invalid input: changing the team is forbidden" {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	_, err = f.env.matchService.Revise(ctx, ReviseMatchInput{
		TournamentID: f.tournament.ID,
		MatchID:      404,
		HomeTeamID:   f.home.ID,
		AwayTeamID:   f.away.ID,
	})
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}

	f.env.stop(t, f.tournament.ID)
	_, err = f.env.matchService.Revise(ctx, ReviseMatchInput{
		TournamentID: f.tournament.ID,
		MatchID:      recorded.ID,
		HomeTeamID:   f.home.ID,
		AwayTeamID:   f.away.ID,
		Result:       match.Result{HomeScored: 1, AwayScored: 1},
	})
	if KindOf(err) != KindInvalidState {
		t.Fatalf("expected InvalidState revising in a stopped tournament, got %v", err)
	}
	assertCounters(t, f.env.team(t, f.tournament.ID, f.home.ID), team.Delta{Scored: 2, Wins: 1, Points: 3})
}

func TestMatchService_RecordShareLocksTournament(t *testing.T) {
	t.Parallel()

	// Only the share-locked read is expected; a plain GetByID fails the test.
	tournamentRepo := tournamentmock.NewRepository(t)
	service := NewMatchService(tournamentRepo, teammock.NewRepository(t), matchmock.NewRepository(t), passthroughTransactor{}, logging.NewNop())

	tournamentRepo.On("GetByIDForShare", mock.Anything, int64(1)).Return(tournament.Tournament{ID: 1, Title: "Cup"}, true, nil).Once()

	_, err := service.Record(context.Background(), RecordMatchInput{
		TournamentID: 1,
		HomeTeamID:   10,
		AwayTeamID:   11,
		Result:       match.Result{HomeScored: 1},
	})
	if KindOf(err) != KindInvalidState || err.Error() != "invalid state: the tournament not started yet" {
		t.Fatalf("expected InvalidState, got %v", err)
	}
}

func TestMatchService_StoreFailureRollsBack(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	teamRepo := teammock.NewRepository(t)
	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(tournamentRepo, teamRepo, matchRepo, passthroughTransactor{}, logging.NewNop())

	started := tournament.Tournament{ID: 1, Title: "Cup"}
	startedAt := started.CreatedAt
	started.StartedAt = &startedAt

	tournamentRepo.On("GetByIDForShare", mock.Anything, int64(1)).Return(started, true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, int64(1), int64(10)).Return(team.Team{ID: 10}, true, nil).Once()
	teamRepo.On("GetByID", mock.Anything, int64(1), int64(11)).Return(team.Team{ID: 11}, true, nil).Once()
	teamRepo.On("GetByIDForUpdate", mock.Anything, int64(1), int64(10)).Return(team.Team{ID: 10}, true, nil).Once()
	teamRepo.On("GetByIDForUpdate", mock.Anything, int64(1), int64(11)).Return(team.Team{ID: 11}, true, nil).Once()
	matchRepo.On("Create", mock.Anything, mock.AnythingOfType("match.Match")).
		Return(match.Match{ID: 3, TournamentID: 1, HomeTeamID: 11, AwayTeamID: 10, HomeScored: 1}, nil).Once()
	teamRepo.On("ApplyDelta", mock.Anything, int64(11), team.Delta{Scored: 1, Wins: 1, Points: 3}).
		Return(team.Team{}, errors.New("deadlock detected")).Once()

	_, err := service.Record(ctx, RecordMatchInput{
		TournamentID: 1,
		HomeTeamID:   11,
		AwayTeamID:   10,
		Result:       match.Result{HomeScored: 1},
	})
	if KindOf(err) != KindInternal {
		t.Fatalf("expected InternalError, got %v", err)
	}
}

func TestMatchService_ConcurrentRecordsKeepEveryUpdate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newStartedCup(t)

	const matches = 40
	var wg sync.WaitGroup
	errs := make(chan error, matches)
	wg.Add(matches)
	for i := 0; i < matches; i++ {
		go func(i int) {
			defer wg.Done()
			homeTeamID, awayTeamID := f.home.ID, f.away.ID
			if i%2 == 1 {
				homeTeamID, awayTeamID = awayTeamID, homeTeamID
			}
			_, err := f.env.matchService.Record(ctx, RecordMatchInput{
				TournamentID: f.tournament.ID,
				HomeTeamID:   homeTeamID,
				AwayTeamID:   awayTeamID,
				Result:       match.Result{HomeScored: 1, AwayScored: 0},
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("record match: %v", err)
		}
	}

	half := matches / 2
	want := team.Delta{Scored: half, Missed: half, Wins: half, Losses: half, Points: 3 * half}
	assertCounters(t, f.env.team(t, f.tournament.ID, f.home.ID), want)
	assertCounters(t, f.env.team(t, f.tournament.ID, f.away.ID), want)
}
