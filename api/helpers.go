package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/garnizeh/flightlog/internal/validation"
	"github.com/garnizeh/flightlog/pkg/repository"
)

const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeNotFound       = "NOT_FOUND"
	codeConflict       = "CONFLICT"
	codeInternal       = "INTERNAL_ERROR"
	codeValidation     = "VALIDATION_ERROR"
)

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, validation.APIError{Code: code, Message: message}, status)
}

func writeValidationError(w http.ResponseWriter, verr *validation.RequestValidationError) {
	writeJSON(w, verr.ToAPIError(), http.StatusBadRequest)
}

func notFound(w http.ResponseWriter, what string, id int64) {
	writeError(w, http.StatusNotFound, codeNotFound, fmt.Sprintf("%s %d not found", what, id))
}

// storeError maps a repository failure onto a response. Constraint violations
// are the client's fault (409), anything else is ours.
func storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrUniqueViolation):
		writeError(w, http.StatusConflict, codeConflict, op+": record already exists")
	case errors.Is(err, repository.ErrReferenceViolation):
		writeError(w, http.StatusConflict, codeConflict, op+": record is referenced or references a missing record")
	default:
		logger.Error(op, slog.Any("err", err), slog.String("request_id", RequestID(r.Context())))
		writeError(w, http.StatusInternalServerError, codeInternal, op+" failed")
	}
}

// decodeBody decodes the JSON request body into v and validates it. It writes
// the 400 response itself and returns false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid request body: "+err.Error())
		return false
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		writeValidationError(w, verr)
		return false
	}
	return true
}

// pathID reads the {id} route variable.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, fmt.Sprintf("invalid id %q", raw))
		return 0, false
	}
	return id, true
}

// queryID reads a required positive integer query parameter.
func queryID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads an optional integer query parameter, keeping def when the
// value is absent or outside [lo, hi].
func queryInt(r *http.Request, name string, def, lo, hi int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return def
	}
	return v
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, codeInvalidRequest, r.Method+" not allowed on "+r.URL.Path)
}
