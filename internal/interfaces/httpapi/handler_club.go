package httpapi

import "net/http"

type clubRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	offset, limit, err := parsePage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.clubService.List(ctx, offset, limit)
	if err != nil {
		h.fail(ctx, w, "list clubs failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"clubs": clubsToDTO(items)})
}

func (h *Handler) CreateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateClub")
	defer span.End()

	var req clubRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.clubService.Create(ctx, req.Title)
	if err != nil {
		h.fail(ctx, w, "create club failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, map[string]any{"club": clubToDTO(item)})
}

func (h *Handler) UpdateClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateClub")
	defer span.End()

	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req clubRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.clubService.Update(ctx, clubID, req.Title)
	if err != nil {
		h.fail(ctx, w, "update club failed", err, "club_id", clubID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"club": clubToDTO(item)})
}

func (h *Handler) DeleteClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteClub")
	defer span.End()

	clubID, err := pathID(r, "clubID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.clubService.Delete(ctx, clubID); err != nil {
		h.fail(ctx, w, "delete club failed", err, "club_id", clubID)
		return
	}

	writeSuccess(ctx, w, http.StatusNoContent, nil)
}
