package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/riskibarqy/tournament-league/internal/domain/club"
	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
)

type txKey struct{}

type tournamentRecord struct {
	item    tournament.Tournament
	deleted bool
}

type teamRecord struct {
	item    team.Team
	deleted bool
}

type clubRecord struct {
	item    club.Club
	deleted bool
}

type userRecord struct {
	item    user.User
	deleted bool
}

type tables struct {
	tournaments map[int64]tournamentRecord
	teams       map[int64]teamRecord
	matches     map[int64]match.Match
	clubs       map[int64]clubRecord
	users       map[int64]userRecord

	lastTournamentID int64
	lastTeamID       int64
	lastMatchID      int64
	lastClubID       int64
	lastUserID       int64
}

func (t *tables) clone() *tables {
	out := *t
	out.tournaments = maps.Clone(t.tournaments)
	out.teams = maps.Clone(t.teams)
	out.matches = maps.Clone(t.matches)
	out.clubs = maps.Clone(t.clubs)
	out.users = maps.Clone(t.users)
	return &out
}

// Store holds every table of the in-memory backend. Transactions are
// serialised: one runs at a time and a failed one restores the snapshot taken
// when it began. Writes outside a transaction wait for the running one.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *tables
	now  func() time.Time
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		data: &tables{
			tournaments: make(map[int64]tournamentRecord),
			teams:       make(map[int64]teamRecord),
			matches:     make(map[int64]match.Match),
			clubs:       make(map[int64]clubRecord),
			users:       make(map[int64]userRecord),
		},
		now: now,
	}
}

// WithinTransaction joins the caller's transaction when ctx already carries one.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTransaction(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) read(fn func(data *tables)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

func (s *Store) write(ctx context.Context, fn func(data *tables) error) error {
	if !inTransaction(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func inTransaction(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}
