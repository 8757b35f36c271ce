package httpapi

import (
	"net/http"

	"github.com/riskibarqy/tournament-league/internal/domain/user"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/registration", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
}

func registerAccountRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("PUT /v1/me/name", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyName)))
	mux.Handle("PUT /v1/me/password", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyPassword)))
	mux.Handle("PUT /v1/me/email", RequireAuth(verifier, http.HandlerFunc(handler.UpdateMyEmail)))
	mux.Handle("GET /v1/me/statistics", RequireAuth(verifier, http.HandlerFunc(handler.GetMyStatistics)))
	mux.Handle("GET /v1/users/{userID}/statistics", RequireAuth(verifier, http.HandlerFunc(handler.GetUserStatistics)))
}

func registerTournamentRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/tournaments", RequireAuth(verifier, http.HandlerFunc(handler.ListTournaments)))
	mux.Handle("GET /v1/tournaments/{tournamentID}", RequireAuth(verifier, http.HandlerFunc(handler.GetTournament)))
	mux.Handle("GET /v1/tournaments/{tournamentID}/standings", RequireAuth(verifier, http.HandlerFunc(handler.GetStandings)))
	mux.Handle("GET /v1/tournaments/{tournamentID}/clubs", RequireAuth(verifier, http.HandlerFunc(handler.ListAvailableClubs)))
	mux.Handle("GET /v1/tournaments/{tournamentID}/matches", RequireAuth(verifier, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinTournament)))
	mux.Handle("POST /v1/tournaments/{tournamentID}/leave", RequireAuth(verifier, http.HandlerFunc(handler.LeaveTournament)))
}

func registerModeratorRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/tournaments", requireRole(verifier, user.RoleModerator, handler.CreateTournament))
	mux.Handle("PUT /v1/admin/tournaments/{tournamentID}", requireRole(verifier, user.RoleModerator, handler.UpdateTournament))
	mux.Handle("DELETE /v1/admin/tournaments/{tournamentID}", requireRole(verifier, user.RoleModerator, handler.DeleteTournament))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/start", requireRole(verifier, user.RoleAdmin, handler.StartTournament))
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/stop", requireRole(verifier, user.RoleAdmin, handler.StopTournament))
	mux.Handle("POST /v1/admin/tournaments/{tournamentID}/matches", requireRole(verifier, user.RoleAdmin, handler.RecordMatch))
	mux.Handle("PUT /v1/admin/tournaments/{tournamentID}/matches/{matchID}", requireRole(verifier, user.RoleAdmin, handler.ReviseMatch))

	mux.Handle("GET /v1/admin/clubs", requireRole(verifier, user.RoleAdmin, handler.ListClubs))
	mux.Handle("POST /v1/admin/clubs", requireRole(verifier, user.RoleAdmin, handler.CreateClub))
	mux.Handle("PUT /v1/admin/clubs/{clubID}", requireRole(verifier, user.RoleAdmin, handler.UpdateClub))
	mux.Handle("DELETE /v1/admin/clubs/{clubID}", requireRole(verifier, user.RoleAdmin, handler.DeleteClub))

	mux.Handle("GET /v1/admin/users", requireRole(verifier, user.RoleAdmin, handler.ListUsers))
	mux.Handle("GET /v1/admin/users/{userID}", requireRole(verifier, user.RoleAdmin, handler.GetUser))
	mux.Handle("PUT /v1/admin/users/{userID}", requireRole(verifier, user.RoleAdmin, handler.UpdateUser))
	mux.Handle("DELETE /v1/admin/users/{userID}", requireRole(verifier, user.RoleAdmin, handler.DeleteUser))
}

func requireRole(verifier TokenVerifier, min user.Role, handler http.HandlerFunc) http.Handler {
	return RequireAuth(verifier, RequireRole(min, handler))
}
