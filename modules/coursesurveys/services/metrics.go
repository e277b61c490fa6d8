package services

import (
	"github.com/go-faster/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the importer's counters on a private registry so a run can
// dump them to a node-exporter textfile when it finishes.
type Metrics struct {
	registry *prometheus.Registry

	rows  *prometheus.CounterVec
	cache *prometheus.CounterVec
	runs  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursesurveys",
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Total number of legacy rows processed broken down by table and outcome.",
		}, []string{"table", "outcome"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursesurveys",
			Subsystem: "import",
			Name:      "cache_total",
			Help:      "Total number of id-mapping cache operations broken down by table and result.",
		}, []string{"table", "result"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coursesurveys",
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Total number of import runs broken down by result.",
		}, []string{"result"}),
	}
	m.registry.MustRegister(m.rows, m.cache, m.runs)
	return m
}

// WriteTextfile writes all counters in the Prometheus text format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "write metrics %s", path)
	}
	return nil
}

func (m *Metrics) recordTable(res TableResult) {
	t := string(res.Table)
	m.rows.WithLabelValues(t, "read").Add(float64(res.Read))
	m.rows.WithLabelValues(t, "saved").Add(float64(res.Saved))
	m.rows.WithLabelValues(t, "failed").Add(float64(res.Failed))
}

func (m *Metrics) recordCache(t Table, result string) {
	m.cache.WithLabelValues(string(t), result).Inc()
}

func (m *Metrics) recordRun(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.runs.WithLabelValues(result).Inc()
}
