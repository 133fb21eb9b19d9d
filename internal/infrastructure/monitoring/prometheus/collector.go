// Package prometheus wraps metric registration behind small interfaces so
// the application layer never touches the client library directly and tests
// can count observations without a registry.
package prometheus

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/turtacn/AtomSense/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AtomSense/pkg/errors"
)

// Collector registers metric families on a private registry.  Registration
// never fails outward: a name collision logs an error and hands back a
// no-op metric, because losing one gauge must not take the process down.
type Collector interface {
	RegisterCounter(name, help string, labels ...string) CounterVec
	RegisterGauge(name, help string, labels ...string) GaugeVec
	RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec
	Handler() http.Handler
}

// CounterVec resolves label values to a Counter.
type CounterVec interface {
	WithLabelValues(lvs ...string) Counter
}

// Counter is a monotonically increasing value.
type Counter interface {
	Inc()
	Add(delta float64)
}

// GaugeVec resolves label values to a Gauge.
type GaugeVec interface {
	WithLabelValues(lvs ...string) Gauge
}

// Gauge is a value that moves both ways.
type Gauge interface {
	Set(value float64)
	Inc()
	Dec()
}

// HistogramVec resolves label values to a Histogram.
type HistogramVec interface {
	WithLabelValues(lvs ...string) Histogram
}

// Histogram accumulates observations into buckets.
type Histogram interface {
	Observe(value float64)
}

// CollectorConfig names the metric namespace and selects the runtime
// collectors.
type CollectorConfig struct {
	Namespace            string
	Subsystem            string
	EnableProcessMetrics bool
	EnableGoMetrics      bool
	ConstLabels          map[string]string
}

type collector struct {
	registry   *prometheus.Registry
	cfg        CollectorConfig
	registered map[string]prometheus.Collector
	mu         sync.Mutex
	log        logging.Logger
}

// NewCollector builds a collector over a fresh registry.
func NewCollector(cfg CollectorConfig, log logging.Logger) (Collector, error) {
	if cfg.Namespace == "" {
		return nil, errors.InvalidParam("metric namespace is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	registry := prometheus.NewRegistry()
	if cfg.EnableProcessMetrics {
		registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{
			Namespace: cfg.Namespace,
		}))
	}
	if cfg.EnableGoMetrics {
		registry.MustRegister(prometheus.NewGoCollector())
	}

	return &collector{
		registry:   registry,
		cfg:        cfg,
		registered: make(map[string]prometheus.Collector),
		log:        log,
	}, nil
}

func (c *collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// register is idempotent per metric name, so handlers re-created during
// tests reuse the family instead of colliding.
func (c *collector) register(name string, fresh prometheus.Collector) (prometheus.Collector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fqName := prometheus.BuildFQName(c.cfg.Namespace, c.cfg.Subsystem, name)
	if existing, ok := c.registered[fqName]; ok {
		return existing, nil
	}
	if err := c.registry.Register(fresh); err != nil {
		return nil, err
	}
	c.registered[fqName] = fresh
	return fresh, nil
}

func (c *collector) RegisterCounter(name, help string, labels ...string) CounterVec {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   c.cfg.Namespace,
		Subsystem:   c.cfg.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: c.cfg.ConstLabels,
	}, labels)

	registered, err := c.register(name, vec)
	if err != nil {
		c.log.Error("register counter", logging.String("name", name), logging.Err(err))
		return noopCounterVec{}
	}
	if v, ok := registered.(*prometheus.CounterVec); ok {
		return &promCounterVec{vec: v}
	}
	c.log.Warn("metric registered under another type", logging.String("name", name))
	return noopCounterVec{}
}

func (c *collector) RegisterGauge(name, help string, labels ...string) GaugeVec {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   c.cfg.Namespace,
		Subsystem:   c.cfg.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: c.cfg.ConstLabels,
	}, labels)

	registered, err := c.register(name, vec)
	if err != nil {
		c.log.Error("register gauge", logging.String("name", name), logging.Err(err))
		return noopGaugeVec{}
	}
	if v, ok := registered.(*prometheus.GaugeVec); ok {
		return &promGaugeVec{vec: v}
	}
	c.log.Warn("metric registered under another type", logging.String("name", name))
	return noopGaugeVec{}
}

func (c *collector) RegisterHistogram(name, help string, buckets []float64, labels ...string) HistogramVec {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   c.cfg.Namespace,
		Subsystem:   c.cfg.Subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: c.cfg.ConstLabels,
		Buckets:     buckets,
	}, labels)

	registered, err := c.register(name, vec)
	if err != nil {
		c.log.Error("register histogram", logging.String("name", name), logging.Err(err))
		return noopHistogramVec{}
	}
	if v, ok := registered.(*prometheus.HistogramVec); ok {
		return &promHistogramVec{vec: v}
	}
	c.log.Warn("metric registered under another type", logging.String("name", name))
	return noopHistogramVec{}
}

// ─────────────────────────────────────────────────────────────────────────────
// Library-backed metrics
// ─────────────────────────────────────────────────────────────────────────────

type promCounterVec struct{ vec *prometheus.CounterVec }

func (v *promCounterVec) WithLabelValues(lvs ...string) Counter {
	return v.vec.WithLabelValues(lvs...)
}

type promGaugeVec struct{ vec *prometheus.GaugeVec }

func (v *promGaugeVec) WithLabelValues(lvs ...string) Gauge {
	return v.vec.WithLabelValues(lvs...)
}

type promHistogramVec struct{ vec *prometheus.HistogramVec }

func (v *promHistogramVec) WithLabelValues(lvs ...string) Histogram {
	return v.vec.WithLabelValues(lvs...)
}

// ─────────────────────────────────────────────────────────────────────────────
// No-op metrics
// ─────────────────────────────────────────────────────────────────────────────

type noopCounterVec struct{}

func (noopCounterVec) WithLabelValues(...string) Counter { return noopCounter{} }

type noopCounter struct{}

func (noopCounter) Inc()        {}
func (noopCounter) Add(float64) {}

type noopGaugeVec struct{}

func (noopGaugeVec) WithLabelValues(...string) Gauge { return noopGauge{} }

type noopGauge struct{}

func (noopGauge) Set(float64) {}
func (noopGauge) Inc()        {}
func (noopGauge) Dec()        {}

type noopHistogramVec struct{}

func (noopHistogramVec) WithLabelValues(...string) Histogram { return noopHistogram{} }

type noopHistogram struct{}

func (noopHistogram) Observe(float64) {}

// ─────────────────────────────────────────────────────────────────────────────
// Timer
// ─────────────────────────────────────────────────────────────────────────────

// Timer observes an elapsed duration into a histogram in seconds.
type Timer struct {
	h     Histogram
	start time.Time
}

// NewTimer starts the clock.
func NewTimer(h Histogram) *Timer {
	return &Timer{h: h, start: time.Now()}
}

// ObserveDuration records the time since NewTimer.
func (t *Timer) ObserveDuration() {
	if t.h == nil {
		return
	}
	t.h.Observe(time.Since(t.start).Seconds())
}
