package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initializationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bbob",
		Subsystem: "server",
		Name:      "initializations_total",
		Help:      "Benchmark instances created, by benchmark name.",
	}, []string{"benchmark"})

	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bbob",
		Subsystem: "server",
		Name:      "evaluations_total",
		Help:      "Objective evaluations served, by benchmark name.",
	}, []string{"benchmark"})

	rpcErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bbob",
		Subsystem: "server",
		Name:      "rpc_errors_total",
		Help:      "JSON-RPC requests that ended in an error, by method.",
	}, []string{"method"})
)
