package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Dates are stored as ISO strings (YYYY-MM-DD), times of day as HH:MM:SS.

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// TrackType is the XContest scoring shape of a flight.
type TrackType string

const (
	TrackFreeFlight   TrackType = "free_flight"
	TrackFlatTriangle TrackType = "flat_triangle"
	TrackFAITriangle  TrackType = "fai_triangle"
)

// Valid reports whether t is one of the known XContest track types.
func (t TrackType) Valid() bool {
	switch t {
	case TrackFreeFlight, TrackFlatTriangle, TrackFAITriangle:
		return true
	}
	return false
}


type Pilot struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name" validate:"required,max=150"`
	Email   string `json:"email,omitempty" db:"email" validate:"omitempty,email"`
	Created int64  `json:"created" db:"created"`
}

type Aircraft struct {
	ID      int64  `json:"id" db:"id"`
	PilotID int64  `json:"pilot_id" db:"pilot_id" validate:"required,gt=0"`
	Name    string `json:"name" db:"name" validate:"required,max=255"`
	Brand   string `json:"brand,omitempty" db:"brand" validate:"max=100"`
}

// DisplayName is "brand name", or just the name when no brand is set.
func (a Aircraft) DisplayName() string {
	if a.Brand == "" {
		return a.Name
	}
	return a.Brand + " " + a.Name
}

type Location struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name" validate:"required,max=255"`
	Country  string `json:"country" db:"country" validate:"required,iso3166_1_alpha2"`
	Altitude int    `json:"altitude" db:"altitude"`
}

type Flight struct {
	ID                 int64      `json:"id" db:"id"`
	PilotID            int64      `json:"pilot_id" db:"pilot_id" validate:"required,gt=0"`
	AircraftID         *int64     `json:"aircraft_id" db:"aircraft_id" validate:"omitempty,gt=0"`
	Number             *int       `json:"number" db:"number"`
	LaunchSiteID       int64      `json:"launch_site_id" db:"launch_site_id" validate:"required,gt=0"`
	LaunchDate         string     `json:"launch_date" db:"launch_date" validate:"required,datetime=2006-01-02"`
	LaunchTime         *string    `json:"launch_time" db:"launch_time" validate:"omitempty,datetime=15:04:05"`
	LandingSiteID      *int64     `json:"landing_site_id" db:"landing_site_id" validate:"omitempty,gt=0"`
	LandingTime        *string    `json:"landing_time" db:"landing_time" validate:"omitempty,datetime=15:04:05"`
	MaxAltitude        *int       `json:"max_altitude" db:"max_altitude"`
	TrackDistanceKm    *int       `json:"track_distance_km" db:"track_distance_km" validate:"omitempty,gte=0"`
	XContestTrackType  *TrackType `json:"xcontest_tracktype" db:"xcontest_tracktype" validate:"omitempty,oneof=free_flight flat_triangle fai_triangle"`
	XContestDistanceKm *float64   `json:"xcontest_distance_km" db:"xcontest_distance_km" validate:"omitempty,gte=0"`
	XContestURL        *string    `json:"xcontest_url" db:"xcontest_url" validate:"omitempty,url"`
	Comments           string     `json:"comments" db:"comments"`
	VideoURL           *string    `json:"video_url" db:"video_url" validate:"omitempty,url"`
	Created            int64      `json:"created" db:"created"`
}

// FlightFacts is the per-flight projection the statistics engine reads.
type FlightFacts struct {
	FlightID       int64
	LaunchDate     string
	LaunchTime     *string
	LandingTime    *string
	LaunchSiteID   int64
	LandingSiteID  *int64
	LandingCountry *string
}

// LocationOrder selects which kind of use a location ranking counts.
type LocationOrder string

const (
	OrderLaunches LocationOrder = "launches"
	OrderLandings LocationOrder = "landings"
)

// LocationWithCount is a location together with how often a pilot used it.
type LocationWithCount struct {
	Location
	Count int64 `json:"count"`
}
