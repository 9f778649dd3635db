package telemetry

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/prometheus/common/expfmt"
)

var (
	gaugeMetricMap   = map[string]prometheus.Gauge{}
	gaugeMetricMutex = sync.Mutex{}

	// MetricServer is the push gateway address, pushes are skipped when empty
	MetricServer string

	panicMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_panics_recovered_total",
	}, []string{"entity", "msg"})
)

const metricsPushJob = "folio_push"

func LogPanic(entity string, message string) {
	panicMetric.WithLabelValues(entity, message).Inc()
}

func getKey(metric string, labels map[string]string) string {
	key := metric
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, name := range names {
		key += "/" + name + ":" + labels[name]
	}
	return key
}

// NewGauge registers the gauge once per metric and label set
func NewGauge(metric string, labels map[string]string) prometheus.Gauge {
	metricKey := getKey(metric, labels)

	gaugeMetricMutex.Lock()
	defer gaugeMetricMutex.Unlock()

	if existingMetric, ok := gaugeMetricMap[metricKey]; ok {
		return existingMetric
	}
	newMetric := promauto.NewGauge(prometheus.GaugeOpts{Name: metric, ConstLabels: labels})
	gaugeMetricMap[metricKey] = newMetric
	return newMetric
}

// SetGaugeViaPush is for short lived commands which are gone before a scrape
func SetGaugeViaPush(name string, labels map[string]string, val float64) error {
	if MetricServer == "" {
		return nil
	}
	metric := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        name,
		ConstLabels: labels,
	})
	metric.Set(val)

	return push.New(MetricServer, metricsPushJob).
		Format(expfmt.FmtText).
		Collector(metric).
		Push()
}
