package importcsv

import (
	"strconv"
	"strings"
	"time"

	"github.com/garnizeh/flightlog/internal/validation"
	"github.com/garnizeh/flightlog/pkg/models"
)

// resolver maps names from the file onto store ids.
type resolver struct {
	aircraft  map[string]int64
	locations map[string]int64
}

// newResolver indexes aircraft by name and by "brand name". On duplicate names
// the first entry wins; lists come sorted from the store so the pick is stable.
func newResolver(aircraft []models.Aircraft, locations []models.Location) *resolver {
	r := &resolver{aircraft: map[string]int64{}, locations: map[string]int64{}}
	for _, a := range aircraft {
		for _, name := range []string{a.DisplayName(), a.Name} {
			if _, ok := r.aircraft[name]; !ok {
				r.aircraft[name] = a.ID
			}
		}
	}
	for _, l := range locations {
		if _, ok := r.locations[l.Name]; !ok {
			r.locations[l.Name] = l.ID
		}
	}
	return r
}

// parseRow turns the non-empty cells of one row into a flight. ok is false
// when the row produced an error and must not be imported.
func parseRow(out *Result, res *resolver, pilotID int64, row int, v map[string]string) (models.Flight, bool) {
	f := models.Flight{PilotID: pilotID}
	ok := true

	if s, has := v["number"]; has {
		n, err := strconv.Atoi(s)
		if err != nil {
			out.warn(row, "number", "Invalid flight number: %s", s)
		} else {
			f.Number = &n
		}
	}

	if name, has := v["aircraft"]; has {
		if id, found := res.aircraft[name]; found {
			f.AircraftID = &id
		} else {
			out.warn(row, "aircraft", "Could not find aircraft with name %q in your list of aircraft", name)
		}
	}

	if name, has := v["launch_site"]; !has {
		out.fail(row, "launch_site", "Launch site is required")
		ok = false
	} else if id, found := res.locations[name]; found {
		f.LaunchSiteID = id
	} else {
		out.fail(row, "launch_site", "Could not find launch site with name %q in your list of locations", name)
		ok = false
	}

	if name, has := v["landing_site"]; has {
		if id, found := res.locations[name]; found {
			f.LandingSiteID = &id
		} else {
			out.warn(row, "landing_site", "Could not find landing site with name %q in your list of locations", name)
		}
	}

	if s, has := v["date"]; !has {
		out.fail(row, "date", "Launch date is required")
		ok = false
	} else if _, err := time.Parse(models.DateLayout, s); err != nil {
		out.fail(row, "date", "Invalid ISO date: %s", s)
		ok = false
	} else {
		f.LaunchDate = s
	}

	f.LaunchTime = parseTime(out, row, v, "launch_time", "launch")
	f.LandingTime = parseTime(out, row, v, "landing_time", "landing")

	f.MaxAltitude = parseInt(out, row, v, "max_altitude", "maximum altitude")
	f.TrackDistanceKm = parseInt(out, row, v, "track_distance", "track distance")
	if f.TrackDistanceKm != nil && *f.TrackDistanceKm < 0 {
		out.warn(row, "track_distance", "Track distance must not be negative")
		f.TrackDistanceKm = nil
	}

	if s, has := v["xcontest_tracktype"]; has {
		if tt := models.TrackType(s); tt.Valid() {
			f.XContestTrackType = &tt
		} else {
			out.warn(row, "xcontest_tracktype", "Invalid XContest tracktype: %s", s)
		}
	}

	if s, has := v["xcontest_distance"]; has {
		d, err := strconv.ParseFloat(s, 64)
		if err != nil || d < 0 {
			out.warn(row, "xcontest_distance", "Invalid XContest distance: %s", s)
		} else {
			f.XContestDistanceKm = &d
		}
	}

	if s, has := v["xcontest_url"]; has {
		switch {
		case strings.HasPrefix(s, "https://"):
			f.XContestURL = &s
		case strings.HasPrefix(s, "http://"):
			u := "https://" + strings.TrimPrefix(s, "http://")
			f.XContestURL = &u
		default:
			out.warn(row, "xcontest_url", "XContest URL must start with https:// or http://")
		}
	}

	f.Comments = v["comments"]

	if s, has := v["video_url"]; has {
		if err := validation.GetValidator().Var(s, "url"); err != nil {
			out.warn(row, "video_url", "Invalid video URL: %s", s)
		} else {
			f.VideoURL = &s
		}
	}

	return f, ok
}

func parseTime(out *Result, row int, v map[string]string, column, label string) *string {
	s, has := v[column]
	if !has {
		return nil
	}
	t, err := time.Parse(models.TimeLayout, s)
	if err != nil {
		out.warn(row, column, "Invalid %s time: %s", label, s)
		return nil
	}
	norm := t.Format(models.TimeLayout)
	return &norm
}

func parseInt(out *Result, row int, v map[string]string, column, label string) *int {
	s, has := v[column]
	if !has {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		out.warn(row, column, "Invalid %s: %s", label, s)
		return nil
	}
	return &n
}
