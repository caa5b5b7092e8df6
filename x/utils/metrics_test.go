package utils

import (
	"context"
	"testing"

	"github.com/iov-one/bequest/bequesttest"
	"github.com/iov-one/bequest/bequesttest/assert"
	"github.com/iov-one/bequest/errors"
	"github.com/iov-one/bequest/store"
	"github.com/prometheus/client_golang/prometheus"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	assert.Nil(t, err)

	ctx := context.Background()
	db := store.MemStore()
	tx := &bequesttest.Tx{Msg: &bequesttest.Msg{RoutePath: "will/distribute"}}

	ok := bequesttest.Decorate(&bequesttest.Handler{}, m)
	fail := bequesttest.Decorate(&bequesttest.Handler{DeliverErr: errors.ErrHuman}, m)

	for i := 0; i < 3; i++ {
		_, err := ok.Deliver(ctx, db, tx)
		assert.Nil(t, err)
	}
	_, err = fail.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrHuman, err)
	_, err = ok.Check(ctx, db, tx)
	assert.Nil(t, err)

	families, err := reg.Gather()
	assert.Nil(t, err)

	counts := make(map[string]float64)
	var observed uint64
	for _, f := range families {
		for _, metric := range f.GetMetric() {
			switch f.GetName() {
			case "bequest_calls_total":
				var result string
				for _, l := range metric.GetLabel() {
					if l.GetName() == "result" {
						result = l.GetValue()
					}
				}
				counts[result] += metric.GetCounter().GetValue()
			case "bequest_call_duration_seconds":
				observed += metric.GetHistogram().GetSampleCount()
			}
		}
	}
	assert.Equal(t, map[string]float64{"success": 3, "failure": 1, "check_success": 1}, counts)
	assert.Equal(t, uint64(4), observed)

	// The same collectors cannot be registered twice.
	_, err = NewMetrics(reg)
	assert.IsErr(t, errors.ErrHuman, err)
}
