package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Process-wide collectors, exposed on /metrics.
var (
	BiodatasCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marrynow",
		Name:      "biodatas_created_total",
		Help:      "Biodatas created",
	})

	PaymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marrynow",
		Name:      "contact_payments_total",
		Help:      "Contact request charges by outcome",
	}, []string{"outcome"})

	ContactRequestsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "marrynow",
		Name:      "contact_requests_approved_total",
		Help:      "Contact request approvals",
	})

	CounterSyncRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "marrynow",
		Name:      "biodata_counter_sync_total",
		Help:      "Biodata id counter sync runs by result",
	}, []string{"result"})
)
