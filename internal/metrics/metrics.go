package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlacedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_orders_placed_total",
		Help: "Total number of orders accepted from checkout.",
	})

	FulfillmentOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_dispatch_outcomes_total",
		Help: "Dispatch results by outcome: assigned, deferred or no_store.",
	},
		[]string{"outcome"},
	)

	AssignmentConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_assignment_conflicts_total",
		Help: "Agent reservations lost to a concurrent dispatch.",
	})

	OrderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_order_transitions_total",
		Help: "Committed order lifecycle transitions by target status.",
	},
		[]string{"status"},
	)

	NotificationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_notification_failures_total",
		Help: "Best-effort notifications that could not be delivered, by channel.",
	},
		[]string{"channel"},
	)

	EventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_events_dropped_total",
		Help: "Domain events dropped because the delivery queue was full or stopped.",
	})

	EventQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fulfillment_event_queue_depth",
		Help: "Current number of events waiting for delivery.",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	},
		[]string{"method", "route", "code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fulfillment_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	},
		[]string{"method", "route"},
	)

	PendingAssignmentsRetriedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_pending_assignments_retried_total",
		Help: "Agent assignment retries for waiting orders by result: assigned, waiting or failed.",
	},
		[]string{"result"},
	)
)
