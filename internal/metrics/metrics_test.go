package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderText(t *testing.T) {
	m := New(func() uint64 { return 7 })

	m.ObserveDataLoadTime(250 * time.Millisecond)
	m.ObserveProcessingTime("pilot", 10*time.Millisecond)
	m.CountPilotOnline("GB", "EU")
	m.CountPilotOnline("GB", "EU")
	m.CountControllerOnline("US", "NA", "tower")
	m.SetDBCounts(12, 3456, 5*time.Millisecond)
	m.SetDataTimestamp(time.Now())

	text, err := m.RenderText()
	require.NoError(t, err)
	assert.Contains(t, text, "vatsim_data_load_time_sec 0.25")
	assert.Contains(t, text, `object_type="pilot"`)
	assert.Contains(t, text, `continent_code="EU"`)
	assert.Contains(t, text, `controller_type="tower"`)
	assert.Contains(t, text, `database_objects_count{object_type="track"} 12`)
	assert.Contains(t, text, `database_objects_count{object_type="trackpoint"} 3456`)
	assert.Contains(t, text, "weather_api_requests_total 7")
	assert.Contains(t, text, "uptime")
	assert.Contains(t, text, "vatsim_data_age_sec")
}

func TestResetObjectsOnline(t *testing.T) {
	m := New(nil)
	m.CountPilotOnline("GB", "EU")
	m.ResetObjectsOnline()

	text, err := m.RenderText()
	require.NoError(t, err)
	assert.NotContains(t, text, `country_code="GB"`)
}
