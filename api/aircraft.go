package api

import (
	"net/http"

	"github.com/garnizeh/flightlog/pkg/models"
	"github.com/garnizeh/flightlog/pkg/repository"
)

type AircraftHandler struct {
	aircraftRepo repository.AircraftRepo
	pilotRepo    repository.PilotRepo
}

func NewAircraftHandler(ar repository.AircraftRepo, pr repository.PilotRepo) *AircraftHandler {
	return &AircraftHandler{aircraftRepo: ar, pilotRepo: pr}
}

func (h *AircraftHandler) ListAircraft(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := queryID(w, r, "pilot_id")
	if !ok {
		return
	}

	if !pilotExists(w, r, h.pilotRepo, pilotID) {
		return
	}

	list, err := h.aircraftRepo.ListAircraftByPilot(r.Context(), pilotID)
	if err != nil {
		storeError(w, r, "list aircraft", err)
		return
	}
	if list == nil {
		list = []models.Aircraft{}
	}

	writeJSON(w, list, http.StatusOK)
}

// CreateAircraft stores a new aircraft. An unknown owner is a 409 from the
// store's foreign key.
func (h *AircraftHandler) CreateAircraft(w http.ResponseWriter, r *http.Request) {
	var a models.Aircraft
	if !decodeBody(w, r, &a) {
		return
	}

	id, err := h.aircraftRepo.CreateAircraft(r.Context(), &a)
	if err != nil {
		storeError(w, r, "create aircraft", err)
		return
	}
	a.ID = id

	writeJSON(w, a, http.StatusCreated)
}

func (h *AircraftHandler) GetAircraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	a, err := h.aircraftRepo.GetAircraft(r.Context(), id)
	if err != nil {
		storeError(w, r, "get aircraft", err)
		return
	}
	if a == nil {
		notFound(w, "aircraft", id)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

func (h *AircraftHandler) UpdateAircraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.aircraftRepo.GetAircraft(r.Context(), id)
	if err != nil {
		storeError(w, r, "get aircraft", err)
		return
	}
	if existing == nil {
		notFound(w, "aircraft", id)
		return
	}

	var a models.Aircraft
	if !decodeBody(w, r, &a) {
		return
	}
	a.ID = id
	// flights flown with the aircraft must keep pointing at their pilot's aircraft
	if a.PilotID != existing.PilotID {
		writeError(w, http.StatusBadRequest, codeValidation, "pilot_id of an aircraft cannot be changed")
		return
	}

	if err := h.aircraftRepo.UpdateAircraft(r.Context(), &a); err != nil {
		storeError(w, r, "update aircraft", err)
		return
	}

	writeJSON(w, a, http.StatusOK)
}

// DeleteAircraft keeps the flights flown with the aircraft; their aircraft
// reference becomes null.
func (h *AircraftHandler) DeleteAircraft(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.aircraftRepo.GetAircraft(r.Context(), id)
	if err != nil {
		storeError(w, r, "get aircraft", err)
		return
	}
	if existing == nil {
		notFound(w, "aircraft", id)
		return
	}

	if err := h.aircraftRepo.DeleteAircraft(r.Context(), id); err != nil {
		storeError(w, r, "delete aircraft", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
