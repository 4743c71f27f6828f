package metrics

import (
	"sync/atomic"
	"time"
)

// Counter is a monotonically increasing count, safe for concurrent use.
type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
}

// DurationGauge holds the most recently observed duration.
type DurationGauge struct {
	nanos atomic.Int64
}

func (g *DurationGauge) Set(d time.Duration) {
	g.nanos.Store(int64(d))
}

func (g *DurationGauge) Load() time.Duration {
	return time.Duration(g.nanos.Load())
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveInto records the elapsed time on g and returns it.
func (t *Timer) ObserveInto(g *DurationGauge) time.Duration {
	d := t.Duration()
	g.Set(d)
	return d
}
