package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/legion/internal/metrics"
)

// Submitter is the slice of worker.Pool the dispatcher needs.
type Submitter interface {
	Submit(f func()) error
}

// Dispatcher publishes on a worker pool so request handlers never wait on
// the broker. Failures are logged and counted, never returned.
type Dispatcher struct {
	pub     Publisher
	pool    Submitter
	timeout time.Duration
	log     *slog.Logger
}

func NewDispatcher(pub Publisher, pool Submitter, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{pub: pub, pool: pool, timeout: 5 * time.Second, log: log}
}

func (d *Dispatcher) Emit(evs ...Event) {
	if len(evs) == 0 {
		return
	}
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.pub.Publish(ctx, evs...); err != nil {
			metrics.EventsPublished.WithLabelValues("error").Add(float64(len(evs)))
			d.log.Warn("publish events", "type", evs[0].Type, "count", len(evs), "err", err)
			return
		}
		metrics.EventsPublished.WithLabelValues("ok").Add(float64(len(evs)))
	})
	if err != nil {
		metrics.EventsPublished.WithLabelValues("dropped").Add(float64(len(evs)))
		d.log.Warn("drop events", "type", evs[0].Type, "count", len(evs), "err", err)
	}
}
