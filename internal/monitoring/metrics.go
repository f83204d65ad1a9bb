package monitoring

import (
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Evaluation metrics
	pullsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evobandits_pulls_total",
			Help: "Total number of objective evaluations",
		},
		[]string{"study"},
	)

	// Maximizing studies pull negated values, so the sign is dropped
	pullMagnitude = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evobandits_pull_magnitude",
			Help:    "Distribution of the absolute sampled objective values",
			Buckets: prometheus.ExponentialBucketsRange(0.001, 1e6, 20),
		},
		[]string{"study"},
	)

	// Population metrics
	armsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evobandits_arms_created_total",
			Help: "Total number of distinct arms registered",
		},
		[]string{"study"},
	)

	duplicatesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evobandits_duplicates_dropped_total",
			Help: "Offspring discarded by mutation because they collided with a sibling",
		},
		[]string{"study"},
	)

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evobandits_generations_total",
			Help: "Total number of completed generations",
		},
		[]string{"study"},
	)

	bestMeanReward = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evobandits_best_mean_reward",
			Help: "Mean reward of the currently best ranked arm",
		},
		[]string{"study"},
	)

	budgetRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "evobandits_budget_remaining",
			Help: "Objective evaluations left in the current run",
		},
		[]string{"study"},
	)

	// Error metrics
	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evobandits_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	// Register metrics
	prometheus.MustRegister(pullsTotal)
	prometheus.MustRegister(pullMagnitude)
	prometheus.MustRegister(armsCreated)
	prometheus.MustRegister(duplicatesDropped)
	prometheus.MustRegister(generationsTotal)
	prometheus.MustRegister(bestMeanReward)
	prometheus.MustRegister(budgetRemaining)
	prometheus.MustRegister(errorsTotal)
}

// MetricsHandler handles Prometheus metrics endpoint
type MetricsHandler struct{}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

// ServeHTTP serves the Prometheus metrics endpoint
func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordPull records one objective evaluation
func RecordPull(study string, value float64) {
	pullsTotal.WithLabelValues(study).Inc()
	pullMagnitude.WithLabelValues(study).Observe(math.Abs(value))
}

// RecordArmCreated records a newly registered arm
func RecordArmCreated(study string) {
	armsCreated.WithLabelValues(study).Inc()
}

// RecordDuplicatesDropped records offspring lost to deduplication
func RecordDuplicatesDropped(study string, n int) {
	if n > 0 {
		duplicatesDropped.WithLabelValues(study).Add(float64(n))
	}
}

// RecordGeneration records a completed generation
func RecordGeneration(study string) {
	generationsTotal.WithLabelValues(study).Inc()
}

// UpdateBestMean updates the best mean reward metric
func UpdateBestMean(study string, mean float64) {
	bestMeanReward.WithLabelValues(study).Set(mean)
}

// UpdateBudgetRemaining updates the remaining budget metric
func UpdateBudgetRemaining(study string, remaining int) {
	budgetRemaining.WithLabelValues(study).Set(float64(remaining))
}

// RecordError records an error metric
func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
