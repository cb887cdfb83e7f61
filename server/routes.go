package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/christineastoria/custom-slide-annotation/config"
)

// SetupRoutes registers the API on a new router and wraps it with CORS and
// the request body cap.
func SetupRoutes(h *Handler) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	api.HandleFunc("/parse", h.Parse).Methods(http.MethodPost)
	api.HandleFunc("/save-presentation", h.SavePresentation).Methods(http.MethodPost)
	api.HandleFunc("/preview", h.Preview).Methods(http.MethodPost)

	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/tools/{name}", h.InvokeTool).Methods(http.MethodPost)

	return withCORS(h.cfg, limitBody(h.cfg.MaxBodyBytes, r))
}

func limitBody(max int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if max > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, max)
		}
		next.ServeHTTP(w, r)
	})
}

// withCORS answers preflight requests itself, since the router would
// reject OPTIONS on POST-only routes.
func withCORS(cfg config.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allow, ok := cfg.MatchOrigin(origin); origin != "" && ok {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", allow)
			// credentials only for explicitly listed origins
			if allow != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
