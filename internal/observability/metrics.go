package observability

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Metrics keeps in-process counters for requests, errors and conversions.
// Counters are keyed by route so operators can spot hot or failing paths.
type Metrics struct {
	mu          sync.Mutex
	requests    map[string]int64
	errors      map[string]int64
	conversions int64
}

// NewMetrics returns an empty counter set.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, _ time.Duration) {
	if m == nil {
		return
	}
	key := counterKey(path, method, strconv.Itoa(status))
	m.mu.Lock()
	m.requests[key]++
	m.mu.Unlock()
}

// RecordError counts a request that ended in a domain error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := counterKey(path, method, code)
	m.mu.Lock()
	m.errors[key]++
	m.mu.Unlock()
}

// RecordConversion counts completed ticket conversions.
func (m *Metrics) RecordConversion() {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.conversions++
	m.mu.Unlock()
}

// Conversions reports the conversion count.
func (m *Metrics) Conversions() int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conversions
}

func counterKey(parts ...string) string {
	return strings.Join(parts, "|")
}
