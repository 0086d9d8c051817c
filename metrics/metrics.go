// Package metrics provides Prometheus observability metrics for the due-date calculator.
// It includes Critical and Important metrics for business and operational visibility.
package metrics

import (
	"errors"
	"time"

	customerrors "due-date-calculator/errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// CalculationsTotal counts calculations by outcome ("resolved" or "rejected").
var CalculationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calculator",
	Name:      "calculations_total",
	Help:      "Total due-date calculations by result",
}, []string{"result"})

// ValidationFailuresTotal counts rejected calculations by failure kind.
// A rising out_of_working_hours rate usually means a caller ignores the working window.
var ValidationFailuresTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "calculator",
	Name:      "validation_failures_total",
	Help:      "Rejected calculations by failure kind",
}, []string{"kind"})

// TurnaroundHours tracks the requested turnaround of resolved calculations.
var TurnaroundHours = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "calculator",
	Name:      "turnaround_hours",
	Help:      "Requested turnaround in hours for resolved calculations",
	Buckets:   []float64{1, 2, 4, 8, 16, 24, 48, 72, 120, 240},
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// CalculationDurationSeconds tracks time spent in a single calculation.
var CalculationDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "calculator",
	Name:      "duration_seconds",
	Help:      "Time taken to calculate a single resolution time",
	Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
})

// BatchDurationSeconds tracks time to calculate a whole batch.
var BatchDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "batch",
	Name:      "duration_seconds",
	Help:      "Time taken to calculate every request of a batch",
	Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
})

// ParserErrorsTotal tracks parse errors by error type.
var ParserErrorsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "errors_total",
	Help:      "Total parse errors by error type",
}, []string{"error_type"})

// ParserRecordsTotal tracks total records successfully parsed.
var ParserRecordsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "records_total",
	Help:      "Total CSV records successfully parsed",
})

// BatchSize tracks number of requests per batch run.
var BatchSize = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "batch",
	Name:      "requests",
	Help:      "Number of requests processed per batch run",
	Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ObserveCalculation records the outcome of one calculation.
func ObserveCalculation(turnaround time.Duration, err error) {
	if err != nil {
		CalculationsTotal.WithLabelValues("rejected").Inc()
		ValidationFailuresTotal.WithLabelValues(customerrors.Label(err)).Inc()
		return
	}
	CalculationsTotal.WithLabelValues("resolved").Inc()
	TurnaroundHours.Observe(turnaround.Hours())
}

// ObserveParseError records a failed parse of user input.
func ObserveParseError(err error) {
	ParserErrorsTotal.WithLabelValues(parseErrorType(err)).Inc()
}

func parseErrorType(err error) string {
	switch {
	case errors.Is(err, customerrors.ErrInvalidFieldCount):
		return "invalid_field_count"
	case errors.Is(err, customerrors.ErrEmptyRecord):
		return "empty_record"
	case errors.Is(err, customerrors.ErrInvalidSubmissionTime):
		return "invalid_submission_time"
	case errors.Is(err, customerrors.ErrInvalidTurnaroundFormat):
		return "invalid_turnaround_format"
	default:
		return "malformed_input"
	}
}
