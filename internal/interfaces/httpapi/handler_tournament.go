package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-league/internal/usecase"
)

type tournamentTitleRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

type joinTournamentRequest struct {
	ClubID int64 `json:"clubId" validate:"required,gt=0"`
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	offset, limit, err := parsePage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.tournamentService.List(ctx, offset, limit)
	if err != nil {
		h.fail(ctx, w, "list tournaments failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"tournaments": tournamentsToDTO(items)})
}

func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTournament")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	info, err := h.tournamentService.Info(ctx, tournamentID, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "get tournament failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"tournament": tournamentInfoToDTO(info)})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.tournamentService.Standings(ctx, tournamentID)
	if err != nil {
		h.fail(ctx, w, "get standings failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"standings": standingsToDTO(rows)})
}

func (h *Handler) ListAvailableClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailableClubs")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.tournamentService.AvailableClubs(ctx, tournamentID)
	if err != nil {
		h.fail(ctx, w, "list available clubs failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"clubs": clubsToDTO(items)})
}

func (h *Handler) JoinTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinTournament")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinTournamentRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.membershipService.Join(ctx, usecase.JoinTournamentInput{
		UserID:       principal.UserID,
		TournamentID: tournamentID,
		ClubID:       req.ClubID,
	})
	if err != nil {
		h.fail(ctx, w, "join tournament failed", err, "tournament_id", tournamentID, "club_id", req.ClubID)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{"team": teamToDTO(item)})
}

func (h *Handler) LeaveTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveTournament")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.membershipService.Leave(ctx, principal.UserID, tournamentID); err != nil {
		h.fail(ctx, w, "leave tournament failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTournament")
	defer span.End()

	var req tournamentTitleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Create(ctx, req.Title)
	if err != nil {
		h.fail(ctx, w, "create tournament failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{"tournament": tournamentToDTO(item)})
}

func (h *Handler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req tournamentTitleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.UpdateTitle(ctx, tournamentID, req.Title)
	if err != nil {
		h.fail(ctx, w, "update tournament failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"tournament": tournamentToDTO(item)})
}

func (h *Handler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.tournamentService.Delete(ctx, tournamentID); err != nil {
		h.fail(ctx, w, "delete tournament failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusNoContent, nil)
}

func (h *Handler) StartTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Start(ctx, tournamentID)
	if err != nil {
		h.fail(ctx, w, "start tournament failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"tournament": tournamentToDTO(item)})
}

func (h *Handler) StopTournament(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StopTournament")
	defer span.End()

	tournamentID, err := pathID(r, "tournamentID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.tournamentService.Stop(ctx, tournamentID)
	if err != nil {
		h.fail(ctx, w, "stop tournament failed", err, "tournament_id", tournamentID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"tournament": tournamentToDTO(item)})
}
