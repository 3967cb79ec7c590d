// Package importcsv reads a pilot's flight book from CSV.
//
// Analyze resolves aircraft and locations against the store and reports
// what would be imported; Import does the same and then stores every flight
// in one transaction, but only when no row produced an error.
package importcsv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/garnizeh/flightlog/internal/metrics"
	"github.com/garnizeh/flightlog/pkg/models"
)

type Mode string

const (
	ModeAnalyze Mode = "analyze"
	ModeImport  Mode = "import"
)

var ErrInvalidMode = errors.New("invalid import mode")

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAnalyze, ModeImport:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Headers lists the columns the importer understands, in the canonical order.
var Headers = []string{
	"number",
	"date",
	"aircraft",
	"launch_site",
	"launch_time",
	"landing_site",
	"landing_time",
	"max_altitude",
	"track_distance",
	"xcontest_tracktype",
	"xcontest_distance",
	"xcontest_url",
	"comments",
	"video_url",
}

// Message is a warning or error. Row is the 1-based data row (the header is
// row 0 and not counted); zero means the message concerns the whole file.
type Message struct {
	Message string `json:"message"`
	Row     int    `json:"csv_row,omitempty"`
	Field   string `json:"field,omitempty"`
}

// Preview is one parsed row.
type Preview struct {
	Row    int           `json:"csv_row"`
	Flight models.Flight `json:"flight"`
}

type Result struct {
	Warnings []Message `json:"warnings"`
	Errors   []Message `json:"errors"`
	Flights  []Preview `json:"flights"`
	// Imported holds the ids of the stored flights, in row order.
	Imported []int64 `json:"imported,omitempty"`
}

// HasErrors reports whether the file must not be imported.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

func (r *Result) warn(row int, field, format string, args ...any) {
	r.Warnings = append(r.Warnings, Message{Message: fmt.Sprintf(format, args...), Row: row, Field: field})
}

func (r *Result) fail(row int, field, format string, args ...any) {
	r.Errors = append(r.Errors, Message{Message: fmt.Sprintf(format, args...), Row: row, Field: field})
}

// Store is what the importer needs from the flight record store.
type Store interface {
	ListAircraftByPilot(ctx context.Context, pilotID int64) ([]models.Aircraft, error)
	ListLocations(ctx context.Context) ([]models.Location, error)
	CreateFlights(ctx context.Context, fs []models.Flight) ([]int64, error)
}

type Importer struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{store: store, logger: logger}
}

// Run dispatches to Analyze or Import.
func (im *Importer) Run(ctx context.Context, pilotID int64, mode Mode, r io.Reader) (*Result, error) {
	switch mode {
	case ModeAnalyze:
		return im.Analyze(ctx, pilotID, r)
	case ModeImport:
		return im.Import(ctx, pilotID, r)
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}

// Analyze parses r for pilotID without storing anything. Problems with the
// data are reported in the Result; the error is reserved for store failures.
func (im *Importer) Analyze(ctx context.Context, pilotID int64, r io.Reader) (*Result, error) {
	aircraft, err := im.store.ListAircraftByPilot(ctx, pilotID)
	if err != nil {
		return nil, fmt.Errorf("load aircraft: %w", err)
	}
	locations, err := im.store.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}

	res := analyze(r, newResolver(aircraft, locations), pilotID)

	metrics.RecordImportRows("ok", len(res.Flights))
	metrics.RecordImportRows("warning", countRows(res.Warnings))
	metrics.RecordImportRows("error", countRows(res.Errors))
	im.logger.Info("csv analyzed",
		slog.Int64("pilot_id", pilotID),
		slog.Int("flights", len(res.Flights)),
		slog.Int("warnings", len(res.Warnings)),
		slog.Int("errors", len(res.Errors)),
	)

	return res, nil
}

// Import analyzes r and, when the analysis found no errors, stores all
// flights at once. A failed insert stores nothing.
func (im *Importer) Import(ctx context.Context, pilotID int64, r io.Reader) (*Result, error) {
	res, err := im.Analyze(ctx, pilotID, r)
	if err != nil {
		return nil, err
	}
	if res.HasErrors() {
		return res, nil
	}

	flights := make([]models.Flight, len(res.Flights))
	for i, p := range res.Flights {
		flights[i] = p.Flight
	}
	ids, err := im.store.CreateFlights(ctx, flights)
	if err != nil {
		return nil, fmt.Errorf("import flights: %w", err)
	}
	res.Imported = ids

	metrics.RecordImportRows("stored", len(ids))
	im.logger.Info("csv imported", slog.Int64("pilot_id", pilotID), slog.Int("flights", len(ids)))

	return res, nil
}

func analyze(r io.Reader, res *resolver, pilotID int64) *Result {
	out := &Result{Warnings: []Message{}, Errors: []Message{}, Flights: []Preview{}}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		out.fail(0, "", "CSV does not contain any columns")
		return out
	}
	if err != nil {
		out.fail(0, "", "Error while reading headers from CSV: %v", err)
		return out
	}

	columns, unknown := mapHeader(header)
	if len(columns) == 0 {
		out.fail(0, "", "CSV header fields (%s) don't contain any valid header", strings.Join(header, ","))
		return out
	}
	if len(unknown) > 0 {
		out.warn(0, "", "Some CSV header fields are unknown and will be ignored: %s", strings.Join(unknown, ","))
	}

	numbers := map[int]int{}
	row, seen := 0, 0
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			// the reader cannot resync after a quoting error
			out.fail(row, "", "Error while reading record from CSV: %v", err)
			break
		}
		if len(record) != len(header) {
			out.warn(row, "", "Row has %d fields, header has %d", len(record), len(header))
		}

		values := rowValues(columns, record)
		if len(values) == 0 {
			continue
		}
		seen++

		f, ok := parseRow(out, res, pilotID, row, values)
		if f.Number != nil {
			if first, dup := numbers[*f.Number]; dup {
				out.fail(row, "number", "Flight number %d is already used in row %d", *f.Number, first)
				ok = false
			} else {
				numbers[*f.Number] = row
			}
		}
		if ok {
			out.Flights = append(out.Flights, Preview{Row: row, Flight: f})
		}
	}

	if seen == 0 && !out.HasErrors() {
		out.fail(0, "", "CSV is empty")
	}

	return out
}

// mapHeader returns the column index of every known header and the sorted
// unknown headers. A repeated known header keeps its first column.
func mapHeader(header []string) (map[string]int, []string) {
	columns := map[string]int{}
	var unknown []string
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if !slices.Contains(Headers, h) {
			if h != "" && !slices.Contains(unknown, h) {
				unknown = append(unknown, h)
			}
			continue
		}
		if _, seen := columns[h]; !seen {
			columns[h] = i
		}
	}
	slices.Sort(unknown)
	return columns, unknown
}

// rowValues picks the non-empty known cells of record.
func rowValues(columns map[string]int, record []string) map[string]string {
	values := map[string]string{}
	for name, idx := range columns {
		if idx >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[idx]); v != "" {
			values[name] = v
		}
	}
	return values
}

func countRows(msgs []Message) int {
	rows := map[int]struct{}{}
	for _, m := range msgs {
		if m.Row > 0 {
			rows[m.Row] = struct{}{}
		}
	}
	return len(rows)
}
