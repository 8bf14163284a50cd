// Package metrics collects the service gauges on a dedicated
// prometheus registry, exposed both as a scrape handler and as
// rendered text for the API.
package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Metrics owns every instrument of the service.
type Metrics struct {
	registry *prometheus.Registry

	dataLoadTime   prometheus.Gauge
	processingTime *prometheus.GaugeVec
	objectsOnline  *prometheus.GaugeVec
	dbObjectsCount *prometheus.GaugeVec
	dbFetchTime    prometheus.Gauge
	cleanupTime    prometheus.Gauge
	weatherCalls   prometheus.CounterFunc

	// unix millis of the latest processed snapshot, rendered as an
	// age so dashboards alert on staleness without clock juggling
	dataTimestamp atomic.Int64
}

// New builds the registry. weatherRequests reports the cumulative
// METAR API call count.
func New(weatherRequests func() uint64) *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	start := time.Now()

	m.dataLoadTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "vatsim_data_load_time_sec",
		Help: "Time spent downloading the latest network snapshot.",
	})
	m.processingTime = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "processing_time_sec",
		Help: "Time spent processing the latest snapshot, per object type.",
	}, []string{"object_type"})
	m.objectsOnline = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vatsim_objects_online",
		Help: "Objects currently online, by type, country and continent.",
	}, []string{"object_type", "country_code", "continent_code", "controller_type"})
	m.dbObjectsCount = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "database_objects_count",
		Help: "Persisted track database objects.",
	}, []string{"object_type"})
	m.dbFetchTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "database_objects_count_fetch_time_sec",
		Help: "Time spent counting the track database.",
	})
	m.cleanupTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "db_cleanup_time_sec",
		Help: "Time spent on the latest track retention pass.",
	})

	dataAge := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vatsim_data_age_sec",
		Help: "Age of the latest processed network snapshot.",
	}, func() float64 {
		ts := m.dataTimestamp.Load()
		if ts == 0 {
			return 0
		}
		return time.Since(time.UnixMilli(ts)).Seconds()
	})
	uptime := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "uptime",
		Help: "Service uptime in seconds.",
	}, func() float64 {
		return time.Since(start).Seconds()
	})
	m.weatherCalls = prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "weather_api_requests_total",
		Help: "Cumulative METAR API calls.",
	}, func() float64 {
		if weatherRequests == nil {
			return 0
		}
		return float64(weatherRequests())
	})

	m.registry.MustRegister(
		m.dataLoadTime, m.processingTime, m.objectsOnline,
		m.dbObjectsCount, m.dbFetchTime, m.cleanupTime,
		dataAge, uptime, m.weatherCalls,
	)
	return m
}

// ObserveDataLoadTime records the duration of a snapshot fetch.
func (m *Metrics) ObserveDataLoadTime(d time.Duration) {
	m.dataLoadTime.Set(d.Seconds())
}

// ObserveProcessingTime records per-object-type processing duration.
func (m *Metrics) ObserveProcessingTime(objectType string, d time.Duration) {
	m.processingTime.WithLabelValues(objectType).Set(d.Seconds())
}

// ResetObjectsOnline clears the online gauge before an ingest pass
// repopulates it; countries that emptied out since the last snapshot
// would otherwise keep their stale values.
func (m *Metrics) ResetObjectsOnline() {
	m.objectsOnline.Reset()
}

// CountPilotOnline bumps the online gauge for a pilot.
func (m *Metrics) CountPilotOnline(countryCode, continentCode string) {
	m.objectsOnline.WithLabelValues("pilot", countryCode, continentCode, "").Inc()
}

// CountControllerOnline bumps the online gauge for a controller.
func (m *Metrics) CountControllerOnline(countryCode, continentCode, controllerType string) {
	m.objectsOnline.WithLabelValues("controller", countryCode, continentCode, controllerType).Inc()
}

// SetDBCounts publishes the track store counters.
func (m *Metrics) SetDBCounts(tracks, points uint64, fetchTime time.Duration) {
	m.dbObjectsCount.WithLabelValues("track").Set(float64(tracks))
	m.dbObjectsCount.WithLabelValues("trackpoint").Set(float64(points))
	m.dbFetchTime.Set(fetchTime.Seconds())
}

// ObserveCleanupTime records the duration of a retention pass.
func (m *Metrics) ObserveCleanupTime(d time.Duration) {
	m.cleanupTime.Set(d.Seconds())
}

// SetDataTimestamp records when the latest processed snapshot was
// produced upstream.
func (m *Metrics) SetDataTimestamp(t time.Time) {
	m.dataTimestamp.Store(t.UnixMilli())
}

// Handler returns the scrape endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RenderText renders the registry in the text exposition format.
func (m *Metrics) RenderText() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}
	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return "", fmt.Errorf("encode metrics: %w", err)
		}
	}
	return buf.String(), nil
}
