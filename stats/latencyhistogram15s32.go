package stats

import (
	"time"

	"github.com/Dieterbe/artisanalhistogram/hist15s"
)

// LatencyHistogram15s32 tracks durations up to 15s in 32 bit buckets.
// Reading one stream is one measurement.
type LatencyHistogram15s32 struct {
	hist hist15s.Hist15s
}

func NewLatencyHistogram15s32(name string) *LatencyHistogram15s32 {
	return registry.getOrAdd(name, &LatencyHistogram15s32{
		hist: hist15s.New(),
	}).(*LatencyHistogram15s32)
}

func (l *LatencyHistogram15s32) Value(t time.Duration) {
	l.hist.AddDuration(t)
}

// ReportGraphite reports summaries in milliseconds, and nothing when there were no measurements.
func (l *LatencyHistogram15s32) ReportGraphite(prefix, buf []byte, now time.Time) []byte {
	r, ok := l.hist.Report(l.hist.Snapshot())
	if !ok {
		return buf
	}
	summaries := []struct {
		key string
		val uint32
	}{
		{"min.gauge32", r.Min / 1000},
		{"mean.gauge32", r.Mean / 1000},
		{"median.gauge32", r.Median / 1000},
		{"p75.gauge32", r.P75 / 1000},
		{"p90.gauge32", r.P90 / 1000},
		{"max.gauge32", r.Max / 1000},
		{"values.count32", r.Count},
	}
	for _, s := range summaries {
		buf = appendLine(buf, prefix, s.key, uint64(s.val), now)
	}
	return buf
}
