package escrow

import (
	"github.com/prometheus/client_golang/prometheus"
)

var transitions = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "escrow",
	Name:      "transitions_total",
	Help:      "Number of escrows created, canceled and settled.",
}, []string{"transition"})

const (
	transitionCreated  = "created"
	transitionCanceled = "canceled"
	transitionSettled  = "settled"
)

// RegisterMetrics registers the escrow lifecycle counters.
func RegisterMetrics(reg prometheus.Registerer) error {
	return reg.Register(transitions)
}
