package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/matches", handler.ListMatchesByLeague)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/import", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunImport)))
	mux.Handle("POST /v1/internal/import/all", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunAllImports)))
}
