package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "whale_alert"
	subsystem = "bot"

	sourceLabel = "source"
)

// BotMetrics holds the counters exported on /metrics.
type BotMetrics struct {
	CyclesRun            prometheus.Counter
	CyclesSkipped        prometheus.Counter
	CycleErrors          prometheus.Counter
	SourceRequests       *prometheus.CounterVec
	SourceFailures       *prometheus.CounterVec
	TransactionsReceived *prometheus.CounterVec
	AlertsSent           *prometheus.CounterVec
	Mutex                sync.Mutex
}

// NewBotMetrics creates the counters and registers them with reg.
func NewBotMetrics(reg prometheus.Registerer) *BotMetrics {
	m := &BotMetrics{
		CyclesRun: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_run",
			Help:      "The total number of polling cycles run inside the active window",
		}),
		CyclesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_skipped",
			Help:      "The total number of cycles skipped outside the active window",
		}),
		CycleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycle_errors",
			Help:      "The total number of cycles aborted by an error or panic",
		}),
		SourceRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "source_requests",
				Help:      "The total number of requests sent per source",
			},
			[]string{sourceLabel},
		),
		SourceFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "source_failures",
				Help:      "The total number of failed requests per source",
			},
			[]string{sourceLabel},
		),
		TransactionsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_received",
				Help:      "The total number of transactions received per source",
			},
			[]string{sourceLabel},
		),
		AlertsSent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "alerts_sent",
				Help:      "The total number of alerts sent per source",
			},
			[]string{sourceLabel},
		),
	}

	reg.MustRegister(
		m.CyclesRun,
		m.CyclesSkipped,
		m.CycleErrors,
		m.SourceRequests,
		m.SourceFailures,
		m.TransactionsReceived,
		m.AlertsSent,
	)

	return m
}

func (m *BotMetrics) counters() map[string]prometheus.Counter {
	return map[string]prometheus.Counter{
		"cycles_run":     m.CyclesRun,
		"cycles_skipped": m.CyclesSkipped,
		"cycle_errors":   m.CycleErrors,
	}
}

func (m *BotMetrics) vectors() map[string]*prometheus.CounterVec {
	return map[string]*prometheus.CounterVec{
		"source_requests":       m.SourceRequests,
		"source_failures":       m.SourceFailures,
		"transactions_received": m.TransactionsReceived,
		"alerts_sent":           m.AlertsSent,
	}
}
