package stats

import (
	"sync/atomic"
	"time"
)

// Counter32 counts events that fit comfortably in 32 bits, such as lines or objects.
type Counter32 struct {
	val uint32
}

func NewCounter32(name string) *Counter32 {
	return registry.getOrAdd(name, &Counter32{}).(*Counter32)
}

func (c *Counter32) Inc() {
	atomic.AddUint32(&c.val, 1)
}

func (c *Counter32) Add(n int) {
	atomic.AddUint32(&c.val, uint32(n))
}

func (c *Counter32) Peek() uint32 {
	return atomic.LoadUint32(&c.val)
}

func (c *Counter32) ReportGraphite(prefix, buf []byte, now time.Time) []byte {
	return appendLine(buf, prefix, "counter32", uint64(c.Peek()), now)
}

// Counter64 is used for byte counts, which overflow 32 bits on large files.
type Counter64 struct {
	val uint64
}

func NewCounter64(name string) *Counter64 {
	return registry.getOrAdd(name, &Counter64{}).(*Counter64)
}

func (c *Counter64) AddUint64(n uint64) {
	atomic.AddUint64(&c.val, n)
}

func (c *Counter64) Peek() uint64 {
	return atomic.LoadUint64(&c.val)
}

func (c *Counter64) ReportGraphite(prefix, buf []byte, now time.Time) []byte {
	return appendLine(buf, prefix, "counter64", c.Peek(), now)
}

// Gauge32 tracks a level that goes up and down, like the number of reads in flight.
// Negative levels are reported as 0.
type Gauge32 struct {
	val int32
}

func NewGauge32(name string) *Gauge32 {
	return registry.getOrAdd(name, &Gauge32{}).(*Gauge32)
}

func (g *Gauge32) Inc() {
	atomic.AddInt32(&g.val, 1)
}

func (g *Gauge32) Dec() {
	atomic.AddInt32(&g.val, -1)
}

func (g *Gauge32) Peek() int32 {
	return atomic.LoadInt32(&g.val)
}

func (g *Gauge32) ReportGraphite(prefix, buf []byte, now time.Time) []byte {
	v := g.Peek()
	if v < 0 {
		v = 0
	}
	return appendLine(buf, prefix, "gauge32", uint64(v), now)
}
