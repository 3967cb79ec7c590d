package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garnizeh/flightlog/internal/config"
	"github.com/garnizeh/flightlog/internal/db"
	"github.com/garnizeh/flightlog/internal/importcsv"
	"github.com/garnizeh/flightlog/internal/repository/sqlite"
	"github.com/garnizeh/flightlog/internal/stats"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(MetricsMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository and services
	repo := sqlite.New(db, logger)
	engine := stats.NewEngine(repo, logger)
	importer := importcsv.New(repo, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	pilotsHandler := NewPilotsHandler(repo)
	aircraftHandler := NewAircraftHandler(repo, repo)
	locationsHandler := NewLocationsHandler(repo)
	flightsHandler := NewFlightsHandler(repo, repo, repo)
	statsHandler := NewStatsHandler(engine, repo, cfg.Stats.TopLocations)
	importHandler := NewImportHandler(importer, repo, cfg.MaxImportBytes)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// mux answers preflight requests through the method-mismatch path
	r.MethodNotAllowedHandler = CORSMiddleware(http.HandlerFunc(methodNotAllowed))

	apiV1 := r.PathPrefix("/v1").Subrouter()

	// Pilots and the pilot detail views
	apiV1.HandleFunc("/pilots", pilotsHandler.ListPilots).Methods("GET")
	apiV1.HandleFunc("/pilots", pilotsHandler.CreatePilot).Methods("POST")
	apiV1.HandleFunc("/pilots/{id:[0-9]+}", pilotsHandler.GetPilot).Methods("GET")
	apiV1.HandleFunc("/pilots/{id:[0-9]+}", pilotsHandler.UpdatePilot).Methods("PUT")
	apiV1.HandleFunc("/pilots/{id:[0-9]+}", pilotsHandler.DeletePilot).Methods("DELETE")
	apiV1.HandleFunc("/pilots/{id:[0-9]+}/stats", statsHandler.PilotStats).Methods("GET")
	apiV1.HandleFunc("/pilots/{id:[0-9]+}/locations", statsHandler.PilotLocations).Methods("GET")
	apiV1.HandleFunc("/pilots/{id:[0-9]+}/flights/next-number", flightsHandler.NextFlightNumber).Methods("GET")
	apiV1.HandleFunc("/pilots/{id:[0-9]+}/flights/import", importHandler.ImportFlights).Methods("POST")

	// Aircraft
	apiV1.HandleFunc("/aircraft", aircraftHandler.ListAircraft).Methods("GET")
	apiV1.HandleFunc("/aircraft", aircraftHandler.CreateAircraft).Methods("POST")
	apiV1.HandleFunc("/aircraft/{id:[0-9]+}", aircraftHandler.GetAircraft).Methods("GET")
	apiV1.HandleFunc("/aircraft/{id:[0-9]+}", aircraftHandler.UpdateAircraft).Methods("PUT")
	apiV1.HandleFunc("/aircraft/{id:[0-9]+}", aircraftHandler.DeleteAircraft).Methods("DELETE")

	// Locations
	apiV1.HandleFunc("/locations", locationsHandler.ListLocations).Methods("GET")
	apiV1.HandleFunc("/locations", locationsHandler.CreateLocation).Methods("POST")
	apiV1.HandleFunc("/locations/{id:[0-9]+}", locationsHandler.GetLocation).Methods("GET")
	apiV1.HandleFunc("/locations/{id:[0-9]+}", locationsHandler.UpdateLocation).Methods("PUT")
	apiV1.HandleFunc("/locations/{id:[0-9]+}", locationsHandler.DeleteLocation).Methods("DELETE")

	// Flights
	apiV1.HandleFunc("/flights", flightsHandler.ListFlights).Methods("GET")
	apiV1.HandleFunc("/flights", flightsHandler.CreateFlight).Methods("POST")
	apiV1.HandleFunc("/flights/{id:[0-9]+}", flightsHandler.GetFlight).Methods("GET")
	apiV1.HandleFunc("/flights/{id:[0-9]+}", flightsHandler.UpdateFlight).Methods("PUT")
	apiV1.HandleFunc("/flights/{id:[0-9]+}", flightsHandler.DeleteFlight).Methods("DELETE")

	return r
}
