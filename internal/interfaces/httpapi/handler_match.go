package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-league/internal/domain/match"
	"github.com/riskibarqy/tournament-league/internal/usecase"
)

// Scores are pointers so that an explicit 0 passes the required check.
type matchRequest struct {
	HomeID     int64 `json:"homeId" validate:"required,gt=0"`
	AwayID     int64 `json:"awayId" validate:"required,gt=0"`
	HomeScored *int  `json:"homeScored" validate:"required"`
	AwayScored *int  `json:"awayScored" validate:"required"`
}

func (req matchRequest) result() match.Result {
	return match.Result{HomeScored: *req.HomeScored, AwayScored: *req.AwayScored}
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.matchService.ListByTournament(ctx, tournamentID)
	if err != nil {
		h.fail(ctx, w, "list matches failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"matches": matchesToDTO(items)})
}

func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordMatch")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req matchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Record(ctx, usecase.RecordMatchInput{
		TournamentID: tournamentID,
		HomeTeamID:   req.HomeID,
		AwayTeamID:   req.AwayID,
		Result:       req.result(),
	})
	if err != nil {
		h.fail(ctx, w, "record match failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{"match": matchToDTO(item)})
}

func (h *Handler) ReviseMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReviseMatch")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req matchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.matchService.Revise(ctx, usecase.ReviseMatchInput{
		TournamentID: tournamentID,
		MatchID:      matchID,
		HomeTeamID:   req.HomeID,
		AwayTeamID:   req.AwayID,
		Result:       req.result(),
	})
	if err != nil {
		h.fail(ctx, w, "revise match failed", err, "tournament_id", tournamentID, "match_id", matchID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"match": matchToDTO(item)})
}
