package httpapi

import (
	"context"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/tournament-league/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const internalErrorReason = "internal server error"

type errorBody struct {
	Reason string `json:"reason"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
}

var errorSentinels = []error{
	usecase.ErrInvalidInput,
	usecase.ErrNotFound,
	usecase.ErrInvalidState,
	usecase.ErrConflict,
	usecase.ErrUnauthorized,
	usecase.ErrForbidden,
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"reason":"` + internalErrorReason + `"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

// writeSuccess writes data as is; callers wrap resources under a named key.
func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, data)
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, mapped.Reason)
	}
	writeJSON(w, mapped.HTTPStatus, errorBody{Reason: mapped.Reason})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorBody{Reason: internalErrorReason})
}

func mapError(err error) mappedError {
	switch usecase.KindOf(err) {
	case usecase.KindValidation, usecase.KindConflict:
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: errorReason(err)}
	case usecase.KindNotFound:
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: errorReason(err)}
	case usecase.KindInvalidState:
		return mappedError{HTTPStatus: http.StatusConflict, Reason: errorReason(err)}
	case usecase.KindUnauthorized:
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: errorReason(err)}
	case usecase.KindForbidden:
		return mappedError{HTTPStatus: http.StatusForbidden, Reason: errorReason(err)}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: internalErrorReason}
	}
}

// errorReason drops the leading sentinel text so clients only see the message
// the use case attached, e.g. "the tournament not found".
func errorReason(err error) string {
	msg := err.Error()
	for _, sentinel := range errorSentinels {
		if trimmed, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return trimmed
		}
	}
	return msg
}
