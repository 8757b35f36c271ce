package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/riskibarqy/tournament-league/internal/config"
	"github.com/riskibarqy/tournament-league/internal/domain/club"
	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/domain/team"
	"github.com/riskibarqy/tournament-league/internal/domain/tournament"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/account/password"
	cacherepo "github.com/riskibarqy/tournament-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tournament-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tournament-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
	"github.com/riskibarqy/tournament-league/internal/platform/resilience"
	"github.com/riskibarqy/tournament-league/internal/usecase"
)

// storage is one backend's set of repositories plus its transaction runner.
type storage struct {
	tournaments tournament.Repository
	teams       team.Repository
	matches     match.Repository
	clubs       club.Repository
	users       user.Repository
	tx          usecase.Transactor
	close       func() error
}

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases the storage backend and must run after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	router, err := newRouter(ctx, cfg, store, logger)
	if err != nil {
		_ = store.close()
		return nil, nil, err
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return server, store.close, nil
}

func newRouter(ctx context.Context, cfg config.Config, store storage, logger *logging.Logger) (http.Handler, error) {
	clubs := store.clubs
	if cfg.CacheEnabled {
		clubs = cacherepo.NewClubRepository(clubs, cfg.CacheTTL)
	}

	tokens, err := jwtauth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL, nil)
	if err != nil {
		return nil, fmt.Errorf("build token issuer: %w", err)
	}
	hasher := password.NewBcryptHasher(cfg.BcryptCost)

	tournamentSvc := usecase.NewTournamentService(store.tournaments, store.teams, store.matches, clubs, store.tx, time.Now)
	membershipSvc := usecase.NewMembershipService(store.tournaments, store.teams, clubs, store.tx, logger)
	matchSvc := usecase.NewMatchService(store.tournaments, store.teams, store.matches, store.tx, logger)
	statisticsSvc := usecase.NewStatisticsService(store.users, store.tournaments, store.teams, cfg.StatsWorkers)
	clubSvc := usecase.NewClubService(clubs)
	userSvc := usecase.NewUserService(store.users, hasher)
	authSvc := usecase.NewAuthService(store.users, hasher, tokens, logger)

	if cfg.AdminEmail != "" {
		if _, err := authSvc.EnsureAdmin(ctx, usecase.RegisterInput{
			Name:     cfg.AdminName,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		}); err != nil {
			return nil, fmt.Errorf("ensure bootstrap admin: %w", err)
		}
	}

	handler := httpapi.NewHandler(
		tournamentSvc,
		membershipSvc,
		matchSvc,
		statisticsSvc,
		clubSvc,
		userSvc,
		authSvc,
		logger,
	)
	return httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins), nil
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return openMemoryStorage(ctx, cfg, logger)
	}
	return openPostgresStorage(ctx, cfg, logger)
}

func openMemoryStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	store := memory.NewStore(nil)
	if cfg.SeedClubs {
		if err := memory.Seed(ctx, store, memory.SeedClubs()); err != nil {
			return storage{}, fmt.Errorf("seed memory store: %w", err)
		}
	}
	logger.Info("storage ready", "driver", config.StorageMemory)

	return storage{
		tournaments: memory.NewTournamentRepository(store),
		teams:       memory.NewTeamRepository(store),
		matches:     memory.NewMatchRepository(store),
		clubs:       memory.NewClubRepository(store),
		users:       memory.NewUserRepository(store),
		tx:          store,
		close:       func() error { return nil },
	}, nil
}

func openPostgresStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	db, err := openDB(ctx, cfg)
	if err != nil {
		return storage{}, err
	}

	if cfg.SeedClubs {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return storage{}, fmt.Errorf("bootstrap seed: %w", err)
		}
	}

	var breaker *resilience.CircuitBreaker
	if cfg.DBCircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker(cfg.DBCircuitBreaker)
	}
	logger.Info("storage ready",
		"driver", config.StoragePostgres,
		"db_name", dbNameFromURL(cfg.DBURL),
		"circuit_breaker", breaker != nil,
	)

	return storage{
		tournaments: postgres.NewTournamentRepository(db),
		teams:       postgres.NewTeamRepository(db),
		matches:     postgres.NewMatchRepository(db),
		clubs:       postgres.NewClubRepository(db),
		users:       postgres.NewUserRepository(db),
		tx:          postgres.NewTransactor(db, breaker),
		close:       db.Close,
	}, nil
}
