// Package metrics defines and registers all custom Prometheus metrics for the
// learning platform API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lms"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of user registrations.",
	},
)

// DeviceRejectionsTotal counts logins rejected by the active-device limit.
var DeviceRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "device_rejections_total",
		Help:      "Total number of logins rejected because the device limit was reached.",
	},
)

// CourseMutationsTotal counts course aggregate writes.
// Label:
//   - op: "create", "update", "delete", or "publish"
var CourseMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "course_mutations_total",
		Help:      "Total number of course aggregate mutations, by operation.",
	},
	[]string{"op"},
)

// EnrollmentsTotal counts successful course enrollments.
var EnrollmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of course enrollments.",
	},
)

// LessonsCompletedTotal counts recorded lesson completions (idempotent
// replays included).
var LessonsCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lessons_completed_total",
		Help:      "Total number of lesson completion records.",
	},
)

// SubscriptionsActivatedTotal counts verified payments that activated a plan.
// Label:
//   - plan: plan identifier (e.g. "monthly")
var SubscriptionsActivatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriptions_activated_total",
		Help:      "Total number of subscription activations, by plan.",
	},
	[]string{"plan"},
)
