package observability

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yungbote/addressbook-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests      *family
	apiLatency       *histogramFamily
	apiInflight      *family
	contactsSaved    *family
	contactsRejected *family
	contactsListed   *histogramFamily
	storeUp          *family
	storePing        *family
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Current() *Metrics {
	return instance
}

// Init builds the process wide metrics set once. It returns nil when
// metrics are disabled so callers can pass the result around unchecked.
func Init(log *logger.Logger, enabled bool) *Metrics {
	if !enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

func New() *Metrics {
	apiLabels := []string{"method", "route", "status"}
	return &Metrics{
		apiRequests: newFamily(kindCounter, "ab_api_requests_total", "Total HTTP requests by method/route/status.", apiLabels...),
		apiLatency: newHistogramFamily("ab_api_request_duration_seconds", "HTTP request latency in seconds by method/route/status.",
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5}, apiLabels...),
		apiInflight:      newFamily(kindGauge, "ab_api_inflight_requests", "In-flight HTTP requests."),
		contactsSaved:    newFamily(kindCounter, "ab_contacts_saved_total", "Contacts persisted."),
		contactsRejected: newFamily(kindCounter, "ab_contacts_rejected_total", "Contact submissions rejected by validation, by field.", "field"),
		contactsListed:   newHistogramFamily("ab_contacts_listed", "Contacts returned per list window.", []float64{0, 1, 2, 5, 8, 10}),
		storeUp:          newFamily(kindGauge, "ab_store_up", "Contact store connectivity (1=up, 0=down).", "backend"),
		storePing:        newFamily(kindGauge, "ab_store_ping_seconds", "Contact store ping latency in seconds.", "backend"),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) error {
	if m == nil {
		return nil
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	if log != nil {
		log.Info("metrics server listening", "addr", addr)
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, pw := range []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.contactsSaved,
		m.contactsRejected,
		m.contactsListed,
		m.storeUp,
		m.storePing,
	} {
		if err := pw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.add(1, method, route, status)
	m.apiLatency.observe(dur.Seconds(), method, route, status)
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.add(1)
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.add(-1)
}

func (m *Metrics) IncContactSaved() {
	if m == nil {
		return
	}
	m.contactsSaved.add(1)
}

func (m *Metrics) IncContactRejected(field string) {
	if m == nil {
		return
	}
	m.contactsRejected.add(1, field)
}

func (m *Metrics) ObserveContactsListed(n int) {
	if m == nil {
		return
	}
	m.contactsListed.observe(float64(n))
}

// Pinger is satisfied by every contact store backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StartStoreCollector pings the store every interval until ctx ends.
func (m *Metrics) StartStoreCollector(ctx context.Context, log *logger.Logger, backend string, store Pinger, interval time.Duration) {
	if m == nil || store == nil {
		return
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probeStore(ctx, log, backend, store)
			}
		}
	}()
}

func (m *Metrics) probeStore(ctx context.Context, log *logger.Logger, backend string, store Pinger) {
	start := time.Now()
	if err := store.Ping(ctx); err != nil {
		m.storeUp.set(0, backend)
		if log != nil {
			log.Warn("metrics: store ping failed", "backend", backend, "error", err)
		}
		return
	}
	m.storeUp.set(1, backend)
	m.storePing.set(time.Since(start).Seconds(), backend)
}
