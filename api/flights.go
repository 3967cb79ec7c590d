package api

import (
	"math"
	"net/http"

	"github.com/garnizeh/flightlog/pkg/models"
	"github.com/garnizeh/flightlog/pkg/repository"
)

const (
	defaultFlightPage = 50
	maxFlightPage     = 500
)

type FlightsHandler struct {
	flightRepo   repository.FlightRepo
	pilotRepo    repository.PilotRepo
	aircraftRepo repository.AircraftRepo
}

func NewFlightsHandler(fr repository.FlightRepo, pr repository.PilotRepo, ar repository.AircraftRepo) *FlightsHandler {
	return &FlightsHandler{flightRepo: fr, pilotRepo: pr, aircraftRepo: ar}
}

type flightPage struct {
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Items  []models.Flight `json:"items"`
}

// ListFlights pages through a pilot's flights, newest first.
func (h *FlightsHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := queryID(w, r, "pilot_id")
	if !ok {
		return
	}
	if !pilotExists(w, r, h.pilotRepo, pilotID) {
		return
	}

	limit := queryInt(r, "limit", defaultFlightPage, 1, maxFlightPage)
	offset := queryInt(r, "offset", 0, 0, math.MaxInt)

	flights, err := h.flightRepo.ListFlightsByPilot(r.Context(), pilotID, limit, offset)
	if err != nil {
		storeError(w, r, "list flights", err)
		return
	}

	total, err := h.flightRepo.CountFlightsByPilot(r.Context(), pilotID)
	if err != nil {
		storeError(w, r, "count flights", err)
		return
	}

	if flights == nil {
		flights = []models.Flight{}
	}

	writeJSON(w, flightPage{Total: total, Limit: limit, Offset: offset, Items: flights}, http.StatusOK)
}

func (h *FlightsHandler) CreateFlight(w http.ResponseWriter, r *http.Request) {
	var f models.Flight
	if !decodeBody(w, r, &f) {
		return
	}
	if !h.checkAircraftOwner(w, r, &f) {
		return
	}

	id, err := h.flightRepo.CreateFlight(r.Context(), &f)
	if err != nil {
		storeError(w, r, "create flight", err)
		return
	}
	f.ID = id

	writeJSON(w, f, http.StatusCreated)
}

func (h *FlightsHandler) GetFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	f, err := h.flightRepo.GetFlight(r.Context(), id)
	if err != nil {
		storeError(w, r, "get flight", err)
		return
	}
	if f == nil {
		notFound(w, "flight", id)
		return
	}

	writeJSON(w, f, http.StatusOK)
}

func (h *FlightsHandler) UpdateFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.flightRepo.GetFlight(r.Context(), id)
	if err != nil {
		storeError(w, r, "get flight", err)
		return
	}
	if existing == nil {
		notFound(w, "flight", id)
		return
	}

	var f models.Flight
	if !decodeBody(w, r, &f) {
		return
	}
	f.ID = id
	f.Created = existing.Created
	if !h.checkAircraftOwner(w, r, &f) {
		return
	}

	if err := h.flightRepo.UpdateFlight(r.Context(), &f); err != nil {
		storeError(w, r, "update flight", err)
		return
	}

	writeJSON(w, f, http.StatusOK)
}

func (h *FlightsHandler) DeleteFlight(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.flightRepo.GetFlight(r.Context(), id)
	if err != nil {
		storeError(w, r, "get flight", err)
		return
	}
	if existing == nil {
		notFound(w, "flight", id)
		return
	}

	if err := h.flightRepo.DeleteFlight(r.Context(), id); err != nil {
		storeError(w, r, "delete flight", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type nextNumberResponse struct {
	Number int `json:"number"`
}

// NextFlightNumber suggests the number for the pilot's next flight: one past
// the highest number used so far, or 1.
func (h *FlightsHandler) NextFlightNumber(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := pathID(w, r)
	if !ok {
		return
	}
	if !pilotExists(w, r, h.pilotRepo, pilotID) {
		return
	}

	latest, err := h.flightRepo.LatestFlightNumber(r.Context(), pilotID)
	if err != nil {
		storeError(w, r, "latest flight number", err)
		return
	}

	next := 1
	if latest != nil {
		next = *latest + 1
	}

	writeJSON(w, nextNumberResponse{Number: next}, http.StatusOK)
}

// checkAircraftOwner rejects flights whose aircraft belongs to someone else.
// A missing aircraft is left to the store's foreign key.
func (h *FlightsHandler) checkAircraftOwner(w http.ResponseWriter, r *http.Request, f *models.Flight) bool {
	if f.AircraftID == nil {
		return true
	}

	a, err := h.aircraftRepo.GetAircraft(r.Context(), *f.AircraftID)
	if err != nil {
		storeError(w, r, "get aircraft", err)
		return false
	}
	if a != nil && a.PilotID != f.PilotID {
		writeError(w, http.StatusBadRequest, codeValidation, "aircraft_id must reference an aircraft of the pilot")
		return false
	}
	return true
}

// pilotExists writes a 404 (or the store failure) and returns false when the
// pilot is unknown.
func pilotExists(w http.ResponseWriter, r *http.Request, pr repository.PilotRepo, pilotID int64) bool {
	p, err := pr.GetPilot(r.Context(), pilotID)
	if err != nil {
		storeError(w, r, "get pilot", err)
		return false
	}
	if p == nil {
		notFound(w, "pilot", pilotID)
		return false
	}
	return true
}
