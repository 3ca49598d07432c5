package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/larsmk/riftline/internal/identity"
	"github.com/larsmk/riftline/internal/riot"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// DashboardHandler serves the composed dashboard for a summoner. The cache
// decides whether a remote refresh runs; 'refresh=true' forces one.
func (s *Server) DashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := summonerParam(r)
		forceRefresh := r.URL.Query().Get("refresh") == "true"

		data, fromCache, err := s.Aggregator.GetDashboard(r.Context(), name, forceRefresh)
		if err != nil {
			writeAggregationError(w, r, "dashboard", name, err)
			return
		}

		w.Header().Set("X-Cache", cacheHeader(fromCache))
		writeJSON(w, r, data)
	}
}

// MatchesHandler serves the stored match history without refreshing.
func (s *Server) MatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := summonerParam(r)
		views, err := s.Aggregator.GetMatchViews(r.Context(), name)
		if err != nil {
			writeAggregationError(w, r, "matches", name, err)
			return
		}
		writeJSON(w, r, struct {
			Matches any `json:"matches"`
		}{Matches: orEmpty(views)})
	}
}

// LiveGameHandler serves the stored live-game snapshot, if any.
func (s *Server) LiveGameHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := summonerParam(r)
		live, ok, err := s.Aggregator.GetLiveGame(r.Context(), name)
		if err != nil {
			writeAggregationError(w, r, "live game", name, err)
			return
		}
		if !ok {
			writeJSON(w, r, struct {
				InGame bool `json:"inGame"`
			}{InGame: false})
			return
		}
		writeJSON(w, r, struct {
			InGame bool `json:"inGame"`
			Game   any  `json:"game"`
		}{InGame: true, Game: live})
	}
}

// CountersHandler exposes the durable operational counters.
func (s *Server) CountersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := s.Counters.GetAll()
		if err != nil {
			log.Error("Failed to read counters", "error", err, "requestID", requestIDFromContext(r))
			http.Error(w, "Failed to read counters", http.StatusInternalServerError)
			return
		}
		writeJSON(w, r, counters)
	}
}

func summonerParam(r *http.Request) string {
	name := r.URL.Query().Get("summoner")
	if name == "" {
		return identity.ActivePlayer
	}
	return name
}

func cacheHeader(fromCache bool) string {
	if fromCache {
		return "HIT"
	}
	return "MISS"
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err, "requestID", requestIDFromContext(r))
	}
}

// writeAggregationError maps pipeline failures onto status codes: a remote
// rejection keeps its upstream status where that makes sense, everything else
// is a 500.
func writeAggregationError(w http.ResponseWriter, r *http.Request, what, name string, err error) {
	log.Error("Request failed", "what", what, "summoner", name, "error", err, "requestID", requestIDFromContext(r))

	var apiErr *riot.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		http.Error(w, fmt.Sprintf("Summoner %q not found", name), http.StatusNotFound)
		return
	}
	http.Error(w, fmt.Sprintf("Failed to load %s", what), http.StatusInternalServerError)
}
