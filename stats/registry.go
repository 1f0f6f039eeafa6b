// Package stats provides a small in-process instrumentation registry.
// Metrics register themselves by name and can be rendered in graphite plaintext format.
package stats

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"
)

var errFmtMetricExists = "fatal: metric %q already exists as type %T"

var registry = NewRegistry()

// GraphiteMetric is implemented by every metric type.
type GraphiteMetric interface {
	// ReportGraphite appends the measurements in graphite format to buf
	ReportGraphite(prefix []byte, buf []byte, now time.Time) []byte
}

// Registry tracks metrics by name.
type Registry struct {
	sync.Mutex
	metrics map[string]GraphiteMetric
}

func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]GraphiteMetric),
	}
}

// getOrAdd returns the metric registered under name, registering metric if there is none.
// Asking for an existing name with a different metric type panics.
func (r *Registry) getOrAdd(name string, metric GraphiteMetric) GraphiteMetric {
	r.Lock()
	defer r.Unlock()
	if existing, ok := r.metrics[name]; ok {
		if reflect.TypeOf(existing) == reflect.TypeOf(metric) {
			return existing
		}
		panic(fmt.Sprintf(errFmtMetricExists, name, existing))
	}
	r.metrics[name] = metric
	return metric
}

// names returns the registered names in sorted order.
func (r *Registry) names() []string {
	r.Lock()
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	r.Unlock()
	sort.Strings(names)
	return names
}

func (r *Registry) get(name string) GraphiteMetric {
	r.Lock()
	m := r.metrics[name]
	r.Unlock()
	return m
}

func (r *Registry) Clear() {
	r.Lock()
	r.metrics = make(map[string]GraphiteMetric)
	r.Unlock()
}
