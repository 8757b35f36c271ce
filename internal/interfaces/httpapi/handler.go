package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/platform/logging"
	"github.com/riskibarqy/tournament-league/internal/usecase"
)

type Handler struct {
	tournamentService *usecase.TournamentService
	membershipService *usecase.MembershipService
	matchService      *usecase.MatchService
	statisticsService *usecase.StatisticsService
	clubService       *usecase.ClubService
	userService       *usecase.UserService
	authService       *usecase.AuthService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	membershipService *usecase.MembershipService,
	matchService *usecase.MatchService,
	statisticsService *usecase.StatisticsService,
	clubService *usecase.ClubService,
	userService *usecase.UserService,
	authService *usecase.AuthService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		membershipService: membershipService,
		matchService:      matchService,
		statisticsService: statisticsService,
		clubService:       clubService,
		userService:       userService,
		authService:       authService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail logs err at a level matching its kind and writes the error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if usecase.KindOf(err) == usecase.KindInternal {
		h.logger.ErrorContext(ctx, msg, args...)
	} else {
		h.logger.WarnContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func currentPrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

func parsePage(r *http.Request) (offset, limit int, err error) {
	query := r.URL.Query()
	if offset, err = queryInt(query.Get("offset")); err != nil {
		return 0, 0, fmt.Errorf("%w: offset must be an integer", usecase.ErrInvalidInput)
	}
	if limit, err = queryInt(query.Get("limit")); err != nil {
		return 0, 0, fmt.Errorf("%w: limit must be an integer", usecase.ErrInvalidInput)
	}
	return offset, limit, nil
}

func queryInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
