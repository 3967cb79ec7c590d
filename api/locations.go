package api

import (
	"net/http"

	"github.com/garnizeh/flightlog/pkg/models"
	"github.com/garnizeh/flightlog/pkg/repository"
)

type LocationsHandler struct {
	locationRepo repository.LocationRepo
}

func NewLocationsHandler(lr repository.LocationRepo) *LocationsHandler {
	return &LocationsHandler{locationRepo: lr}
}

func (h *LocationsHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	list, err := h.locationRepo.ListLocations(r.Context())
	if err != nil {
		storeError(w, r, "list locations", err)
		return
	}
	if list == nil {
		list = []models.Location{}
	}

	writeJSON(w, list, http.StatusOK)
}

func (h *LocationsHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var l models.Location
	if !decodeBody(w, r, &l) {
		return
	}

	id, err := h.locationRepo.CreateLocation(r.Context(), &l)
	if err != nil {
		storeError(w, r, "create location", err)
		return
	}
	l.ID = id

	writeJSON(w, l, http.StatusCreated)
}

func (h *LocationsHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	l, err := h.locationRepo.GetLocation(r.Context(), id)
	if err != nil {
		storeError(w, r, "get location", err)
		return
	}
	if l == nil {
		notFound(w, "location", id)
		return
	}

	writeJSON(w, l, http.StatusOK)
}

func (h *LocationsHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.locationRepo.GetLocation(r.Context(), id)
	if err != nil {
		storeError(w, r, "get location", err)
		return
	}
	if existing == nil {
		notFound(w, "location", id)
		return
	}

	var l models.Location
	if !decodeBody(w, r, &l) {
		return
	}
	l.ID = id

	if err := h.locationRepo.UpdateLocation(r.Context(), &l); err != nil {
		storeError(w, r, "update location", err)
		return
	}

	writeJSON(w, l, http.StatusOK)
}

// DeleteLocation answers 409 while any flight launches or lands there.
func (h *LocationsHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	existing, err := h.locationRepo.GetLocation(r.Context(), id)
	if err != nil {
		storeError(w, r, "get location", err)
		return
	}
	if existing == nil {
		notFound(w, "location", id)
		return
	}

	if err := h.locationRepo.DeleteLocation(r.Context(), id); err != nil {
		storeError(w, r, "delete location", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
