package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/garnizeh/flightlog/internal/importcsv"
	"github.com/garnizeh/flightlog/pkg/repository"
)

const defaultMaxImportBytes = 10 << 20

type ImportHandler struct {
	importer  *importcsv.Importer
	pilotRepo repository.PilotRepo
	maxBytes  int64
}

func NewImportHandler(im *importcsv.Importer, pr repository.PilotRepo, maxBytes int64) *ImportHandler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxImportBytes
	}
	return &ImportHandler{importer: im, pilotRepo: pr, maxBytes: maxBytes}
}

// ImportFlights answers POST /v1/pilots/{id}/flights/import?mode=analyze|import.
// The body is the raw CSV file. Analyze always answers 200 with the report;
// import answers 201 when the flights were stored and 422 when the report
// contains errors and nothing was written.
func (h *ImportHandler) ImportFlights(w http.ResponseWriter, r *http.Request) {
	pilotID, ok := pathID(w, r)
	if !ok {
		return
	}

	mode, err := importcsv.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "mode must be analyze or import")
		return
	}

	if !pilotExists(w, r, h.pilotRepo, pilotID) {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeInvalidRequest,
				fmt.Sprintf("CSV exceeds the upload limit of %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "failed to read CSV data")
		return
	}

	logger.Info("processing csv",
		slog.Int64("pilot_id", pilotID),
		slog.String("mode", string(mode)),
		slog.Int("bytes", len(body)),
		slog.String("request_id", RequestID(r.Context())),
	)

	res, err := h.importer.Run(r.Context(), pilotID, mode, bytes.NewReader(body))
	if err != nil {
		storeError(w, r, "import flights", err)
		return
	}

	status := http.StatusOK
	if mode == importcsv.ModeImport {
		status = http.StatusCreated
		if res.HasErrors() {
			status = http.StatusUnprocessableEntity
		}
	}

	writeJSON(w, res, status)
}
