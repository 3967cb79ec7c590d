package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garnizeh/flightlog/pkg/models"
)

func strPtr(s string) *string { return &s }

func TestValidateStruct_Location(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		loc       models.Location
		wantField string
		wantTag   string
	}{
		{name: "valid", loc: models.Location{Name: "Fiesch", Country: "CH", Altitude: 2200}},
		{name: "missing name", loc: models.Location{Country: "CH"}, wantField: "name", wantTag: "required"},
		{name: "lowercase country", loc: models.Location{Name: "Annecy", Country: "fr"}, wantField: "country", wantTag: "iso3166_1_alpha2"},
		{name: "unknown country", loc: models.Location{Name: "Nowhere", Country: "XX"}, wantField: "country", wantTag: "iso3166_1_alpha2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.loc)
			if tt.wantField == "" {
				assert.Nil(t, verr)
				return
			}
			require.NotNil(t, verr)
			require.Len(t, verr.Errors(), 1)
			assert.Equal(t, tt.wantField, verr.Errors()[0].Field())
			assert.Equal(t, tt.wantTag, verr.Errors()[0].Tag())
		})
	}
}

func TestValidateStruct_Flight(t *testing.T) {
	t.Parallel()

	bad := models.TrackType("zigzag")
	f := models.Flight{
		PilotID:           1,
		LaunchSiteID:      1,
		LaunchDate:        "2020-13-01",
		LaunchTime:        strPtr("25:00:00"),
		XContestTrackType: &bad,
		VideoURL:          strPtr("not a url"),
	}

	verr := ValidateStruct(&f)
	require.NotNil(t, verr)

	tags := map[string]string{}
	for _, e := range verr.Errors() {
		tags[e.Field()] = e.Tag()
	}
	assert.Equal(t, "datetime", tags["launch_date"])
	assert.Equal(t, "datetime", tags["launch_time"])
	assert.Equal(t, "oneof", tags["xcontest_tracktype"])
	assert.Equal(t, "url", tags["video_url"])

	apiErr := verr.ToAPIError()
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Contains(t, apiErr.Message, "launch_date must match the layout 2006-01-02")
	assert.Contains(t, apiErr.Details, "fields")
}

func TestValidateStruct_FlightOptionalFieldsMayBeAbsent(t *testing.T) {
	t.Parallel()

	f := models.Flight{PilotID: 3, LaunchSiteID: 9, LaunchDate: "2019-07-14"}
	assert.Nil(t, ValidateStruct(&f))
}

func TestToAPIError_Single(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&models.Pilot{})
	require.NotNil(t, verr)

	apiErr := verr.ToAPIError()
	assert.Equal(t, "name is required", apiErr.Message)
	assert.Equal(t, "name", apiErr.Details["field"])
	assert.Equal(t, "name is required", verr.Error())
}
