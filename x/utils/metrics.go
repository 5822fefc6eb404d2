package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/nftescrow"
	"github.com/iov-one/nftescrow/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures
// their processing time, labeled by the message path and the result code.
// It is a prometheus.Collector and must be registered to be exported.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var (
	_ nftescrow.Decorator  = (*Metrics)(nil)
	_ prometheus.Collector = (*Metrics)(nil)
)

// NewMetrics returns a metrics decorator with all metric names prefixed
// with given namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_total",
			Help:      "Number of processed transactions.",
		}, []string{"phase", "path", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transaction_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"phase", "path"}),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.txs.Describe(ch)
	m.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.txs.Collect(ch)
	m.duration.Collect(ch)
}

// Check records the result of the check phase.
func (m *Metrics) Check(ctx nftescrow.Context, store nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Checker) (*nftescrow.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	m.observe("check", tx, start, err)
	return res, err
}

// Deliver records the result of the deliver phase.
func (m *Metrics) Deliver(ctx nftescrow.Context, store nftescrow.KVStore, tx nftescrow.Tx, next nftescrow.Deliverer) (*nftescrow.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	m.observe("deliver", tx, start, err)
	return res, err
}

func (m *Metrics) observe(phase string, tx nftescrow.Tx, start time.Time, err error) {
	path := nftescrow.GetPath(tx)
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(phase, path, codeLabel(code)).Inc()
	m.duration.WithLabelValues(phase, path).Observe(time.Since(start).Seconds())
}

func codeLabel(code uint32) string {
	return strconv.FormatUint(uint64(code), 10)
}
