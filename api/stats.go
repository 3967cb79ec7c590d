package api

import (
	"errors"
	"net/http"

	"github.com/garnizeh/flightlog/internal/stats"
	"github.com/garnizeh/flightlog/pkg/repository"
)

// StatsHandler serves the pilot detail view and location rankings.
type StatsHandler struct {
	engine       *stats.Engine
	pilotRepo    repository.PilotRepo
	topLocations int
}

func NewStatsHandler(engine *stats.Engine, pr repository.PilotRepo, topLocations int) *StatsHandler {
	return &StatsHandler{engine: engine, pilotRepo: pr, topLocations: topLocations}
}

// PilotStats answers GET /v1/pilots/{id}/stats. An unknown pilot is a 404;
// a pilot without flights gets an all-zero summary.
func (h *StatsHandler) PilotStats(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := pathID(w, r)
	if !ok {
		return
	}
	if !pilotExists(w, r, h.pilotRepo, pilotID) {
		return
	}

	summary, err := h.engine.Summarize(r.Context(), pilotID)
	if err != nil {
		storeError(w, r, "summarize", err)
		return
	}

	writeJSON(w, summary, http.StatusOK)
}

// PilotLocations answers GET /v1/pilots/{id}/locations?order=&limit=.
func (h *StatsHandler) PilotLocations(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := pathID(w, r)
	if !ok {
		return
	}

	order, err := stats.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "order must be launches or landings")
		return
	}
	limit := queryInt(r, "limit", h.topLocations, 1, stats.MaxTopLocations)

	if !pilotExists(w, r, h.pilotRepo, pilotID) {
		return
	}

	ranking, err := h.engine.TopLocations(r.Context(), pilotID, order, limit)
	if err != nil {
		if errors.Is(err, stats.ErrUnknownOrder) {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
			return
		}
		storeError(w, r, "rank locations", err)
		return
	}

	writeJSON(w, ranking, http.StatusOK)
}
