package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/tournament-league/internal/domain/user"
	"github.com/riskibarqy/tournament-league/internal/usecase"
)

type stubVerifier map[string]user.Principal

func (v stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: invalid access token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := principalFromContext(r.Context()); !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	verifier := stubVerifier{"good": {UserID: 7, Role: user.RoleUser}}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good", want: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad", want: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer good", want: http.StatusOK},
		{name: "case insensitive scheme", header: "bearer good", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(verifier, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	verifier := stubVerifier{
		"user":      {UserID: 1, Role: user.RoleUser},
		"moderator": {UserID: 2, Role: user.RoleModerator},
		"admin":     {UserID: 3, Role: user.RoleAdmin},
	}

	tests := []struct {
		name  string
		token string
		min   user.Role
		want  int
	}{
		{name: "user on moderator route", token: "user", min: user.RoleModerator, want: http.StatusForbidden},
		{name: "moderator on moderator route", token: "moderator", min: user.RoleModerator, want: http.StatusOK},
		{name: "admin on moderator route", token: "admin", min: user.RoleModerator, want: http.StatusOK},
		{name: "moderator on admin route", token: "moderator", min: user.RoleAdmin, want: http.StatusForbidden},
		{name: "admin on admin route", token: "admin", min: user.RoleAdmin, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/tournaments", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			RequireAuth(verifier, RequireRole(tt.min, okHandler())).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestRequireRole_WithoutPrincipal(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()

	RequireRole(user.RoleUser, okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = requestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen == "" || rec.Header().Get(requestIDHeader) != seen {
		t.Fatalf("expected generated request id, got context=%q header=%q", seen, rec.Header().Get(requestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if seen != "abc-123" {
		t.Fatalf("expected caller request id to be kept, got %q", seen)
	}
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":     "abc",
		"  bearer  abc ": "abc",
		"Bearer":         "",
		"Bearer   ":      "",
		"Token abc":      "",
	}
	for header, want := range tests {
		got, err := bearerToken(header)
		if want == "" {
			if err == nil {
				t.Fatalf("bearerToken(%q): expected error", header)
			}
			continue
		}
		if err != nil || got != want {
			t.Fatalf("bearerToken(%q)=%q,%v want %q", header, got, err, want)
		}
	}
}
