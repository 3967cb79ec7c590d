package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/v1/pilots/{id}/stats", "200"))

	RecordAPIRequest("GET", "/v1/pilots/{id}/stats", "200", 15*time.Millisecond)
	RecordAPIRequest("GET", "/v1/pilots/{id}/stats", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/v1/pilots/{id}/stats", "200"))
	assert.InDelta(t, 2, after-before, 0.0001)
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	assert.InDelta(t, before+1, testutil.ToFloat64(APIActiveRequests), 0.0001)

	TrackActiveRequest(false)
	assert.InDelta(t, before, testutil.ToFloat64(APIActiveRequests), 0.0001)
}

func TestRecordStoreErrorAndSummary(t *testing.T) {
	beforeErr := testutil.ToFloat64(StoreErrors.WithLabelValues("delete_location"))
	RecordStoreError("delete_location")
	assert.InDelta(t, 1, testutil.ToFloat64(StoreErrors.WithLabelValues("delete_location"))-beforeErr, 0.0001)

	beforeSum := testutil.ToFloat64(SummariesComputed)
	RecordSummary(12)
	assert.InDelta(t, 1, testutil.ToFloat64(SummariesComputed)-beforeSum, 0.0001)
}

func TestRecordImportRows_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(ImportRows.WithLabelValues("stored"))
	RecordImportRows("stored", 0)
	RecordImportRows("stored", 3)
	assert.InDelta(t, 3, testutil.ToFloat64(ImportRows.WithLabelValues("stored"))-before, 0.0001)
}
