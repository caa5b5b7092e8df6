package utils

import (
	"time"

	"github.com/iov-one/bequest"
	"github.com/iov-one/bequest/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts every call and measures how long it
// took, grouped by the message path.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ bequest.Decorator = (*Metrics)(nil)

// NewMetrics creates the collectors and registers them with given
// registerer. A nil registerer leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bequest",
			Name:      "calls_total",
			Help:      "Number of processed calls partitioned by the message path and the result.",
		}, []string{"path", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bequest",
			Name:      "call_duration_seconds",
			Help:      "Time spent processing a call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	if reg == nil {
		return m, nil
	}
	if err := reg.Register(m.calls); err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := reg.Register(m.duration); err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return m, nil
}

// Check counts the call but does not measure it.
func (m *Metrics) Check(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Checker) (*bequest.CheckResult, error) {
	res, err := next.Check(ctx, db, tx)
	m.calls.WithLabelValues(bequest.GetPath(tx), "check_"+resultLabel(err)).Inc()
	return res, err
}

// Deliver counts and measures the call.
func (m *Metrics) Deliver(ctx bequest.Context, db bequest.KVStore, tx bequest.Tx, next bequest.Deliverer) (*bequest.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	path := bequest.GetPath(tx)
	m.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	m.calls.WithLabelValues(path, resultLabel(err)).Inc()
	return res, err
}

func resultLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
