package orders

import (
	"strconv"
	"sync"
	"time"
)

const idPrefix = "ORD-"

// IDGenerator hands out order ids built from the wall clock in milliseconds.
// Two calls within the same millisecond, or after the clock steps back, get
// the previous value plus one.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return idPrefix + strconv.FormatInt(ms, 10)
}
