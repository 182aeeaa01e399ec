// Package observability exposes Prometheus metrics for the registration
// engine.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels recorded on the attempt counters.
const (
	ResultAccepted  = "accepted"
	ResultRemoved   = "removed"
	ResultNotFound  = "not_found"
	ResultDuplicate = "duplicate"
	ResultFull      = "full"
)

var (
	signupCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signups",
		Subsystem: "engine",
		Name:      "signup_attempts_total",
		Help:      "Number of signup attempts grouped by outcome.",
	}, []string{"result"})

	removalCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activity_signups",
		Subsystem: "engine",
		Name:      "removal_attempts_total",
		Help:      "Number of roster removal attempts grouped by outcome.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(signupCounter, removalCounter)
}

// RecordSignup increments the signup attempt counter for the given outcome.
func RecordSignup(result string) {
	signupCounter.WithLabelValues(result).Inc()
}

// RecordRemoval increments the removal attempt counter for the given outcome.
func RecordRemoval(result string) {
	removalCounter.WithLabelValues(result).Inc()
}
