// Package metrics declares the Prometheus instruments for the posting engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// JournalsPosted counts journals that reached POSTED status.
var JournalsPosted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "payledger",
	Name:      "journals_posted_total",
	Help:      "Number of journals posted to the ledger.",
})

// PostingFailures counts rejected postings by failure reason.
var PostingFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "payledger",
	Name:      "posting_failures_total",
	Help:      "Number of postings rejected, partitioned by reason.",
}, []string{"reason"})

// RunsClosed counts payroll runs transitioned to CLOSED.
var RunsClosed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "payledger",
	Name:      "payroll_runs_closed_total",
	Help:      "Number of payroll runs closed against the ledger.",
})

// NotificationsEnqueued counts posting notifications handed to the queue.
var NotificationsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "payledger",
	Name:      "posting_notifications_enqueued_total",
	Help:      "Number of journal-posted notifications enqueued.",
})
