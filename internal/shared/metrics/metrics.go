// Package metrics keeps process counters and histograms and renders them in the
// Prometheus text exposition format for /metrics.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

type collector interface {
	write(w io.Writer)
}

var durationBucketsMs = []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000}

var (
	relayRequests = &counter{name: "relay_requests_total", help: "Relay requests forwarded to the provider"}
	relayFailures = &counter{name: "relay_failures_total", help: "Relay requests answered with an error"}
	llmCalls      = &counter{name: "llm_calls_total", help: "In-process completions"}
	llmFailures   = &counter{name: "llm_failures_total", help: "Failed in-process completions"}
	relayDuration = newHistogram("relay_duration_ms", "Provider round trip for the relay in milliseconds", durationBucketsMs)
	llmDuration   = newHistogram("llm_duration_ms", "In-process completion time in milliseconds", durationBucketsMs)
	httpRequests  = newCounterVec("http_requests_total", "Completed HTTP requests", "method", "route", "status")

	registry = []collector{relayRequests, relayFailures, llmCalls, llmFailures, relayDuration, llmDuration, httpRequests}
)

func IncRelayRequest() { relayRequests.inc() }
func IncRelayFailure() { relayFailures.inc() }
func IncLLMCall()      { llmCalls.inc() }
func IncLLMFailure()   { llmFailures.inc() }

// ObserveRelayDurationMs records a provider round trip. Negative values count as zero.
func ObserveRelayDurationMs(ms float64) { relayDuration.observe(ms) }

func ObserveLLMDurationMs(ms float64) { llmDuration.observe(ms) }

// ObserveRequest counts a finished request. Unmatched routes are grouped as "unmatched".
func ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.inc(method, route, strconv.Itoa(status))
}

// Handler serves Render.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

func Render() string {
	var b strings.Builder
	for _, c := range registry {
		c.write(&b)
	}
	return b.String()
}

// SinceMillis returns the elapsed time since start in milliseconds.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

type counter struct {
	name, help string
	v          atomic.Uint64
}

func (c *counter) inc() { c.v.Add(1) }

func (c *counter) write(w io.Writer) {
	header(w, c.name, c.help, "counter")
	fmt.Fprintf(w, "%s %d\n", c.name, c.v.Load())
}

type counterVec struct {
	name, help string
	labels     []string

	mu     sync.Mutex
	series map[string]uint64
}

func newCounterVec(name, help string, labels ...string) *counterVec {
	return &counterVec{name: name, help: help, labels: labels, series: make(map[string]uint64)}
}

func (c *counterVec) inc(values ...string) {
	pairs := make([]string, len(c.labels))
	for i, l := range c.labels {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		pairs[i] = fmt.Sprintf("%s=%q", l, v)
	}
	key := strings.Join(pairs, ",")
	c.mu.Lock()
	c.series[key]++
	c.mu.Unlock()
}

func (c *counterVec) write(w io.Writer) {
	c.mu.Lock()
	keys := make([]string, 0, len(c.series))
	for k := range c.series {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]uint64, len(keys))
	for i, k := range keys {
		values[i] = c.series[k]
	}
	c.mu.Unlock()

	header(w, c.name, c.help, "counter")
	for i, k := range keys {
		fmt.Fprintf(w, "%s{%s} %d\n", c.name, k, values[i])
	}
}

// histogram stores per-bucket counts; cumulative totals are computed on write.
type histogram struct {
	name, help string
	bounds     []float64

	mu     sync.Mutex
	counts []uint64
	sum    float64
	count  uint64
}

func newHistogram(name, help string, bounds []float64) *histogram {
	return &histogram{name: name, help: help, bounds: bounds, counts: make([]uint64, len(bounds))}
}

func (h *histogram) observe(v float64) {
	if v < 0 {
		v = 0
	}
	i := sort.SearchFloat64s(h.bounds, v)
	h.mu.Lock()
	if i < len(h.counts) {
		h.counts[i]++
	}
	h.sum += v
	h.count++
	h.mu.Unlock()
}

func (h *histogram) write(w io.Writer) {
	h.mu.Lock()
	counts := append([]uint64(nil), h.counts...)
	sum, count := h.sum, h.count
	h.mu.Unlock()

	header(w, h.name, h.help, "histogram")
	var cumulative uint64
	for i, bound := range h.bounds {
		cumulative += counts[i]
		fmt.Fprintf(w, "%s_bucket{le=%q} %d\n", h.name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(w, "%s_bucket{le=\"+Inf\"} %d\n", h.name, count)
	fmt.Fprintf(w, "%s_sum %s\n", h.name, formatFloat(sum))
	fmt.Fprintf(w, "%s_count %d\n", h.name, count)
}

func header(w io.Writer, name, help, kind string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
