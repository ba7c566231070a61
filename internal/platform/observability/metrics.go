package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by the counters below.
const (
	ResultPassed  = "passed"
	ResultBlocked = "blocked"
	ResultJoined  = "joined"
	ResultMissing = "missing"
	ResultError   = "error"

	StatusSent        = "sent"
	StatusUnreachable = "unreachable"
	StatusFailed      = "failed"
)

var (
	GateRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gate_requests_total",
		Help: "Content requests by subscription gate outcome",
	}, []string{"result"})

	GateChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gate_checks_total",
		Help: "Per-channel membership checks by result",
	}, []string{"result"})

	DeliveryParts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "delivery_parts_total",
		Help: "Content parts delivered to users by status",
	}, []string{"status"})

	BroadcastMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcast_messages_total",
		Help: "Broadcast forwards by status",
	}, []string{"status"})

	BroadcastDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "broadcast_duration_seconds",
		Help:    "Duration of a full broadcast run",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
	})

	StorageReconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storage_reconnects_total",
		Help: "Number of times the database pool was rebuilt",
	})

	DialogueTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dialogue_transitions_total",
		Help: "Dialogue steps handled, by flow",
	}, []string{"flow"})

	UpdatesHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "updates_handled_total",
		Help: "Inbound updates by classified intent",
	}, []string{"intent"})
)
