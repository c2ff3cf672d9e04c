package planner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK             = "ok"
	outcomeConfigError    = "config_error"
	outcomeTransportError = "transport_error"
	outcomeTimeout        = "timeout"
	outcomeEmpty          = "empty_response"
	outcomeMalformed      = "malformed_json"
	outcomeBadFormat      = "unexpected_format"
)

var aiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "travelbot",
	Subsystem: "ai",
	Name:      "requests_total",
	Help:      "Generation requests to the AI backend by outcome.",
}, []string{"outcome"})

var planningCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "travelbot",
	Subsystem: "planner",
	Name:      "cycles_total",
	Help:      "Completed planning rounds by request type.",
}, []string{"request_type"})
