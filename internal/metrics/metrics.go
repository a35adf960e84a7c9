package metrics

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Counter is a named, monotonically increasing counter safe for concurrent use.
type Counter struct {
	name  string
	value atomic.Uint64
}

func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

func (c *Counter) Name() string {
	return c.name
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
}

// Fields renders counters as zap fields keyed by name.
func Fields(counters ...*Counter) []zap.Field {
	fields := make([]zap.Field, 0, len(counters))
	for _, c := range counters {
		fields = append(fields, zap.Uint64(c.Name(), c.Load()))
	}
	return fields
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
