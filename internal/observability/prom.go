package observability

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"
)

const (
	kindCounter = "counter"
	kindGauge   = "gauge"
)

// family is a named set of float series keyed by label values, written in
// the Prometheus text format. An unlabelled family has a single series that
// is always exported, zero included.
type family struct {
	name   string
	help   string
	kind   string
	labels []string

	mu     sync.Mutex
	series map[string]float64
}

func newFamily(kind, name, help string, labels ...string) *family {
	f := &family{name: name, help: help, kind: kind, labels: labels, series: map[string]float64{}}
	if len(labels) == 0 {
		f.series[""] = 0
	}
	return f
}

func (f *family) add(delta float64, values ...string) {
	key := labelKey(f.labels, values)
	f.mu.Lock()
	f.series[key] += delta
	f.mu.Unlock()
}

func (f *family) set(v float64, values ...string) {
	key := labelKey(f.labels, values)
	f.mu.Lock()
	f.series[key] = v
	f.mu.Unlock()
}

func (f *family) value(values ...string) float64 {
	key := labelKey(f.labels, values)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.series[key]
}

func (f *family) WritePrometheus(w io.Writer) error {
	if err := writeMeta(w, f.name, f.help, f.kind); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range sortedKeys(f.series) {
		if _, err := fmt.Fprintf(w, "%s%s %f\n", f.name, key, f.series[key]); err != nil {
			return err
		}
	}
	return nil
}

type histogramFamily struct {
	name    string
	help    string
	labels  []string
	buckets []float64

	mu     sync.Mutex
	series map[string]*histogramSeries
}

type histogramSeries struct {
	// counts[i] holds observations <= buckets[i]; the last slot is +Inf.
	counts []uint64
	sum    float64
}

func newHistogramFamily(name, help string, buckets []float64, labels ...string) *histogramFamily {
	return &histogramFamily{name: name, help: help, labels: labels, buckets: buckets, series: map[string]*histogramSeries{}}
}

func (h *histogramFamily) observe(v float64, values ...string) {
	key := labelKey(h.labels, values)
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.series[key]
	if s == nil {
		s = &histogramSeries{counts: make([]uint64, len(h.buckets)+1)}
		h.series[key] = s
	}
	s.sum += v
	for i, upper := range h.buckets {
		if v <= upper {
			s.counts[i]++
		}
	}
	s.counts[len(h.buckets)]++
}

func (h *histogramFamily) WritePrometheus(w io.Writer) error {
	if err := writeMeta(w, h.name, h.help, "histogram"); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, key := range sortedKeys(h.series) {
		s := h.series[key]
		for i, upper := range h.buckets {
			le := strconv.FormatFloat(upper, 'g', -1, 64)
			if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n", h.name, appendLe(key, le), s.counts[i]); err != nil {
				return err
			}
		}
		total := s.counts[len(h.buckets)]
		if _, err := fmt.Fprintf(w, "%s_bucket%s %d\n%s_sum%s %f\n%s_count%s %d\n",
			h.name, appendLe(key, "+Inf"), total,
			h.name, key, s.sum,
			h.name, key, total); err != nil {
			return err
		}
	}
	return nil
}

func writeMeta(w io.Writer, name, help, kind string) error {
	_, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// labelKey renders {a="x",b="y"}. Missing values are filled with "unknown".
func labelKey(names, values []string) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, name := range names {
		val := "unknown"
		if i < len(values) {
			val = values[i]
		}
		parts[i] = name + `="` + escapeLabel(val) + `"`
	}
	return "{" + strings.Join(parts, ",") + "}"
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escapeLabel(v string) string { return labelEscaper.Replace(v) }

func appendLe(key, le string) string {
	if key == "" {
		return `{le="` + le + `"}`
	}
	return strings.TrimSuffix(key, "}") + `,le="` + le + `"}`
}
