package metricsmanager

import (
	"net/http"
	"time"

	"github.com/kubescape/go-logger"
	"github.com/kubescape/go-logger/helpers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Wandalen/wProcessTreeWindows/pkg/metricsmanager"
)

const queryKindLabel = "query_kind"

var _ metricsmanager.MetricsManager = (*PrometheusMetric)(nil)

type PrometheusMetric struct {
	queryCounter           *prometheus.CounterVec
	queryDuration          *prometheus.HistogramVec
	snapshotFailureCounter prometheus.Counter
	cpuSampleMissCounter   prometheus.Counter
}

func NewPrometheusMetric() *PrometheusMetric {
	return &PrometheusMetric{
		queryCounter: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "process_tree_query_counter",
			Help: "The total number of process tree queries served, by query kind",
		}, []string{queryKindLabel}),
		queryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "process_tree_query_duration_seconds",
			Help:    "Time taken to serve a process tree query, by query kind",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to 512ms
		}, []string{queryKindLabel}),
		snapshotFailureCounter: promauto.NewCounter(prometheus.CounterOpts{
			Name: "process_tree_snapshot_failure_counter",
			Help: "The total number of failed snapshot acquisitions",
		}),
		cpuSampleMissCounter: promauto.NewCounter(prometheus.CounterOpts{
			Name: "process_tree_cpu_sample_miss_counter",
			Help: "The total number of processes that could not be sampled during CPU measurement",
		}),
	}
}

func (p *PrometheusMetric) Start() {
	// Start prometheus metrics server
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		logger.L().Info("prometheus metrics server started", helpers.Int("port", 8080), helpers.String("path", "/metrics"))
		logger.L().Fatal(http.ListenAndServe(":8080", nil).Error())
	}()
}

func (p *PrometheusMetric) Destroy() {
	prometheus.Unregister(p.queryCounter)
	prometheus.Unregister(p.queryDuration)
	prometheus.Unregister(p.snapshotFailureCounter)
	prometheus.Unregister(p.cpuSampleMissCounter)
}

func (p *PrometheusMetric) ReportQuery(kind metricsmanager.QueryKind) {
	p.queryCounter.With(prometheus.Labels{queryKindLabel: string(kind)}).Inc()
}

func (p *PrometheusMetric) ReportQueryDuration(kind metricsmanager.QueryKind, duration time.Duration) {
	p.queryDuration.With(prometheus.Labels{queryKindLabel: string(kind)}).Observe(duration.Seconds())
}

func (p *PrometheusMetric) ReportSnapshotFailure() {
	p.snapshotFailureCounter.Inc()
}

func (p *PrometheusMetric) ReportCpuSampleMiss() {
	p.cpuSampleMissCounter.Inc()
}
