package api

import (
	"net/http"

	"github.com/garnizeh/flightlog/pkg/models"
	"github.com/garnizeh/flightlog/pkg/repository"
)

type PilotsHandler struct {
	pilotRepo repository.PilotRepo
}

func NewPilotsHandler(pr repository.PilotRepo) *PilotsHandler {
	return &PilotsHandler{pilotRepo: pr}
}

func (h *PilotsHandler) ListPilots(w http.ResponseWriter, r *http.Request) {
	pilots, err := h.pilotRepo.ListPilots(r.Context())
	if err != nil {
		storeError(w, r, "list pilots", err)
		return
	}
	if pilots == nil {
		pilots = []models.Pilot{}
	}

	writeJSON(w, pilots, http.StatusOK)
}

func (h *PilotsHandler) CreatePilot(w http.ResponseWriter, r *http.Request) {
	var p models.Pilot
	if !decodeBody(w, r, &p) {
		return
	}

	id, err := h.pilotRepo.CreatePilot(r.Context(), &p)
	if err != nil {
		storeError(w, r, "create pilot", err)
		return
	}
	p.ID = id

	writeJSON(w, p, http.StatusCreated)
}

func (h *PilotsHandler) GetPilot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.pilotRepo.GetPilot(r.Context(), id)
	if err != nil {
		storeError(w, r, "get pilot", err)
		return
	}
	if p == nil {
		notFound(w, "pilot", id)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func (h *PilotsHandler) UpdatePilot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.pilotRepo.GetPilot(r.Context(), id)
	if err != nil {
		storeError(w, r, "get pilot", err)
		return
	}
	if existing == nil {
		notFound(w, "pilot", id)
		return
	}

	var p models.Pilot
	if !decodeBody(w, r, &p) {
		return
	}
	p.ID = id
	p.Created = existing.Created

	if err := h.pilotRepo.UpdatePilot(r.Context(), &p); err != nil {
		storeError(w, r, "update pilot", err)
		return
	}

	writeJSON(w, p, http.StatusOK)
}

// DeletePilot removes the pilot together with their aircraft and flights.
func (h *PilotsHandler) DeletePilot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.pilotRepo.GetPilot(r.Context(), id)
	if err != nil {
		storeError(w, r, "get pilot", err)
		return
	}
	if existing == nil {
		notFound(w, "pilot", id)
		return
	}

	if err := h.pilotRepo.DeletePilot(r.Context(), id); err != nil {
		storeError(w, r, "delete pilot", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
