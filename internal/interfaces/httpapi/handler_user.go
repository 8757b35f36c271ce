package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/usecase"
)

type updateNameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type updateEmailRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

type updateUserRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
	Role  *int   `json:"role" validate:"required,min=0,max=2"`
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.Get(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "get current user failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"user": userToDTO(item)})
}

func (h *Handler) UpdateMyName(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyName")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateNameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.UpdateName(ctx, principal.UserID, req.Name)
	if err != nil {
		h.fail(ctx, w, "update name failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"user": userToDTO(item)})
}

func (h *Handler) UpdateMyEmail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyEmail")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateEmailRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.UpdateEmail(ctx, principal.UserID, req.Email, req.Password)
	if err != nil {
		h.fail(ctx, w, "update email failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"user": userToDTO(item)})
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyPassword")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updatePasswordRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.UpdatePassword(ctx, principal.UserID, req.OldPassword, req.NewPassword); err != nil {
		h.fail(ctx, w, "update password failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusNoContent, nil)
}

func (h *Handler) GetMyStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyStatistics")
	defer span.End()

	principal, err := currentPrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statisticsService.ForUser(ctx, principal.UserID)
	if err != nil {
		h.fail(ctx, w, "get statistics failed", err, "user_id", principal.UserID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"statistics": statisticsToDTO(stats)})
}

func (h *Handler) GetUserStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserStatistics")
	defer span.End()

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stats, err := h.statisticsService.ForUser(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "get statistics failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"statistics": statisticsToDTO(stats)})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	offset, limit, err := parsePage(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.userService.List(ctx, offset, limit)
	if err != nil {
		h.fail(ctx, w, "list users failed", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"users": usersToDTO(items)})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUser")
	defer span.End()

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.Get(ctx, userID)
	if err != nil {
		h.fail(ctx, w, "get user failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"user": userToDTO(item)})
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateUser")
	defer span.End()

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateUserRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.userService.Update(ctx, userID, usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  user.Role(*req.Role),
	})
	if err != nil {
		h.fail(ctx, w, "update user failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"user": userToDTO(item)})
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteUser")
	defer span.End()

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.userService.Delete(ctx, userID); err != nil {
		h.fail(ctx, w, "delete user failed", err, "user_id", userID)
		return
	}

	writeSuccess(ctx, w, http.StatusNoContent, nil)
}
