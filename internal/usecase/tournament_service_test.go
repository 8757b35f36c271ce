package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/repository/memory"
	tournamentmock "github.com/riskibarqy/tournament-league/internal/mocks/domain/tournament"
	"github.com/stretchr/testify/mock"
)

func TestTournamentService_Lifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newMemoryEnv(t)

	created, err := env.tournamentService.Create(ctx, "  Spring Cup  ")
	if err != nil {
		t.Fatalf("create tournament: %v", err)
	}
	if created.Title != "Spring Cup" || created.State() != tournament.StateDraft {
		t.Fatalf("unexpected tournament %+v", created)
	}

	if _, err := env.tournamentService.Stop(ctx, created.ID); KindOf(err) != KindInvalidState {
		t.Fatalf("expected InvalidState stopping a draft, got %v", err)
	}

	started, err := env.tournamentService.Start(ctx, created.ID)
	if err != nil {
		t.Fatalf("start tournament: %v", err)
	}
	if started.State() != tournament.StateStarted || !started.StartedAt.Equal(env.clock.now) {
		t.Fatalf("unexpected started tournament %+v", started)
	}

	_, err = env.tournamentService.Start(ctx, created.ID)
	if KindOf(err) != KindInvalidState || err.Error() != "invalid state: the tournament was already started" {
		t.Fatalf("unexpected error starting twice: %v", err)
	}

	env.clock.Advance(90 * time.Minute)
	stopped, err := env.tournamentService.Stop(ctx, created.ID)
	if err != nil {
		t.Fatalf("stop tournament: %v", err)
	}
	if stopped.State() != tournament.StateStopped || stopped.StoppedAt.Sub(*stopped.StartedAt) != 90*time.Minute {
		t.Fatalf("unexpected stopped tournament %+v", stopped)
	}

	_, err = env.tournamentService.Start(ctx, created.ID)
	if KindOf(err) != KindInvalidState || err.Error() != "invalid state: the tournament has ended" {
		t.Fatalf("unexpected error starting a stopped tournament: %v", err)
	}
	_, err = env.tournamentService.Stop(ctx, created.ID)
	if KindOf(err) != KindInvalidState || err.Error() != "invalid state: the tournament was already stopped" {
		t.Fatalf("unexpected error stopping twice: %v", err)
	}

	renamed, err := env.tournamentService.UpdateTitle(ctx, created.ID, "Spring Cup 2024")
	if err != nil {
		t.Fatalf("rename stopped tournament: %v", err)
	}
	if renamed.Title != "Spring Cup 2024" || renamed.State() != tournament.StateStopped {
		t.Fatalf("rename changed state: %+v", renamed)
	}
}

func TestTournamentService_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newMemoryEnv(t)

	if _, err := env.tournamentService.Create(ctx, "   "); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for blank title, got %v", err)
	}

	created := env.createTournament(t, "Cup")
	if _, err := env.tournamentService.UpdateTitle(ctx, created.ID, ""); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for empty title, got %v", err)
	}
	if _, err := env.tournamentService.UpdateTitle(ctx, 404, "Other"); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := env.tournamentService.Start(ctx, 404); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if _, err := env.tournamentService.List(ctx, -1, 10); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for negative offset, got %v", err)
	}
	if _, err := env.tournamentService.List(ctx, 0, MaxPageLimit+1); KindOf(err) != KindValidation {
		t.Fatalf("expected ValidationError for oversized limit, got %v", err)
	}
}

func TestTournamentService_DeleteHidesTournament(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newMemoryEnv(t)
	created := env.createTournament(t, "Cup")
	env.start(t, created.ID)

	if err := env.tournamentService.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete started tournament: %v", err)
	}
	if _, err := env.tournamentService.Get(ctx, created.ID); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
	if err := env.tournamentService.Delete(ctx, created.ID); KindOf(err) != KindNotFound {
		t.Fatalf("expected NotFound deleting twice, got %v", err)
	}

	items, err := env.tournamentService.List(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no tournaments, got %+v", items)
	}
}

func TestTournamentService_InfoAndAvailableClubs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newMemoryEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	viewer := env.createUser(t, "viewer")

	cup := env.createTournament(t, "Cup")
	aliceTeam := env.join(t, cup.ID, alice.ID, 1)
	bobTeam := env.join(t, cup.ID, bob.ID, 2)
	env.start(t, cup.ID)

	if _, err := env.matchService.Record(ctx, RecordMatchInput{
		TournamentID: cup.ID,
		HomeTeamID:   aliceTeam.ID,
		AwayTeamID:   bobTeam.ID,
		Result:       match.Result{HomeScored: 0, AwayScored: 2},
	}); err != nil {
		t.Fatalf("record match: %v", err)
	}

	info, err := env.tournamentService.Info(ctx, cup.ID, alice.ID)
	if err != nil {
		t.Fatalf("tournament info: %v", err)
	}
	if !info.IsJoined || len(info.Matches) != 1 || len(info.Teams) != 2 {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Teams[0].ID != bobTeam.ID {
		t.Fatalf("expected the winner ranked first, got %+v", info.Teams)
	}

	info, err = env.tournamentService.Info(ctx, cup.ID, viewer.ID)
	if err != nil {
		t.Fatalf("tournament info: %v", err)
	}
	if info.IsJoined {
		t.Fatalf("viewer should not be joined")
	}

	clubs, err := env.tournamentService.AvailableClubs(ctx, cup.ID)
	if err != nil {
		t.Fatalf("available clubs: %v", err)
	}
	for _, item := range clubs {
		if item.ID == 1 || item.ID == 2 {
			t.Fatalf("claimed club %d listed as available", item.ID)
		}
	}
	if len(clubs) != 6 {
		t.Fatalf("expected 6 available clubs, got %d", len(clubs))
	}

	rows, err := env.tournamentService.Standings(ctx, cup.ID)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	if rows[0].Position != 1 || rows[0].Team.Points != 3 || rows[1].Team.Losses != 1 {
		t.Fatalf("unexpected standings %+v", rows)
	}
}

func TestTournamentService_StoreFailureIsInternal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	service := NewTournamentService(tournamentRepo, nil, nil, nil, passthroughTransactor{}, nil)

	tournamentRepo.
		On("GetByIDForUpdate", mock.Anything, int64(7)).
		Return(tournament.Tournament{}, false, errors.New("pq: connection refused")).
		Once()

	_, err := service.Start(ctx, 7)
	if KindOf(err) != KindInternal {
		t.Fatalf("expected InternalError, got %v", err)
	}
}

// lockHookRepository runs onLock once, right after the first locked read.
type lockHookRepository struct {
	*memory.TournamentRepository
	once   sync.Once
	onLock func()
}

func (r *lockHookRepository) GetByIDForUpdate(ctx context.Context, id int64) (tournament.Tournament, bool, error) {
	item, exists, err := r.TournamentRepository.GetByIDForUpdate(ctx, id)
	r.once.Do(r.onLock)
	return item, exists, err
}

func TestTournamentService_StartDuringRenameIsKept(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newMemoryEnv(t)
	cup := env.createTournament(t, "Cup")

	var (
		service  *TournamentService
		startErr error
		done     = make(chan struct{})
	)
	repo := &lockHookRepository{TournamentRepository: env.tournaments}
	repo.onLock = func() {
		go func() {
			defer close(done)
			_, startErr = service.Start(ctx, cup.ID)
		}()
		time.Sleep(20 * time.Millisecond)
	}
	service = NewTournamentService(repo, env.teams, env.matches, env.clubs, env.store, env.clock.Now)

	renamed, err := service.UpdateTitle(ctx, cup.ID, "Winter Cup")
	if err != nil {
		t.Fatalf("rename tournament: %v", err)
	}
	if renamed.Title != "Winter Cup" {
		t.Fatalf("unexpected renamed tournament %+v", renamed)
	}

	<-done
	if startErr != nil {
		t.Fatalf("start tournament: %v", startErr)
	}

	got, err := service.Get(ctx, cup.ID)
	if err != nil {
		t.Fatalf("get tournament: %v", err)
	}
	if got.State() != tournament.StateStarted || got.Title != "Winter Cup" {
		t.Fatalf("expected a started tournament keeping the new title, got %+v", got)
	}
}

func TestTournamentService_UpdateTitleWritesTitleOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tournamentRepo := tournamentmock.NewRepository(t)
	service := NewTournamentService(tournamentRepo, nil, nil, nil, passthroughTransactor{}, nil)

	startedAt := time.Date(2024, 4, 1, 18, 0, 0, 0, time.UTC)
	draft := tournament.Tournament{ID: 7, Title: "Cup"}
	started := tournament.Tournament{ID: 7, Title: "Trophy", StartedAt: &startedAt}

	// No UpdateSchedule expectation: a schedule write fails the test.
	tournamentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).Return(draft, true, nil).Once()
	tournamentRepo.On("UpdateTitle", mock.Anything, int64(7), "Trophy").Return(started, true, nil).Once()

	renamed, err := service.UpdateTitle(ctx, 7, "  Trophy ")
	if err != nil {
		t.Fatalf("rename tournament: %v", err)
	}
	if renamed.State() != tournament.StateStarted {
		t.Fatalf("expected the committed schedule back, got %+v", renamed)
	}
}

func TestTournamentService_DeletedBeforeWriteIsNotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	draft := tournament.Tournament{ID: 7, Title: "Cup"}

	t.Run("rename", func(t *testing.T) {
		t.Parallel()

		tournamentRepo := tournamentmock.NewRepository(t)
		service := NewTournamentService(tournamentRepo, nil, nil, nil, passthroughTransactor{}, nil)
		tournamentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).Return(draft, true, nil).Once()
		tournamentRepo.On("UpdateTitle", mock.Anything, int64(7), "Trophy").Return(tournament.Tournament{}, false, nil).Once()

		if _, err := service.UpdateTitle(ctx, 7, "Trophy"); KindOf(err) != KindNotFound {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})

	t.Run("start", func(t *testing.T) {
		t.Parallel()

		tournamentRepo := tournamentmock.NewRepository(t)
		service := NewTournamentService(tournamentRepo, nil, nil, nil, passthroughTransactor{}, nil)
		tournamentRepo.On("GetByIDForUpdate", mock.Anything, int64(7)).Return(draft, true, nil).Once()
		tournamentRepo.On("UpdateSchedule", mock.Anything, mock.MatchedBy(func(item tournament.Tournament) bool {
			return item.ID == 7 && item.IsStarted()
		})).Return(tournament.Tournament{}, false, nil).Once()

		if _, err := service.Start(ctx, 7); KindOf(err) != KindNotFound {
			t.Fatalf("expected NotFound, got %v", err)
		}
	})
}
