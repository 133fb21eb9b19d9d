package prometheus

// Metrics holds every metric family AtomSense emits.  Families are grouped
// by the layer that feeds them; the perception group is the one dashboards
// live on.
type Metrics struct {
	// HTTP surface.
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Perception engine.
	PerceptionsTotal     CounterVec
	PerceptionDuration   HistogramVec
	AtomsClassifiedTotal CounterVec
	UnmatchedAtomsTotal  CounterVec
	DictionaryTypes      GaugeVec

	// Result side effects.
	SideEffectsTotal     CounterVec
	SideEffectDuration   HistogramVec
	ResultCacheHits      CounterVec
	ResultCacheMisses    CounterVec
	EventsPublishedTotal CounterVec

	// Infrastructure.
	DBQueryDuration HistogramVec
	ErrorsTotal     CounterVec
}

var (
	// DefaultHTTPDurationBuckets covers interactive request latencies.
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

	// DefaultPerceptionBuckets covers single molecules up to whole SD
	// files.
	DefaultPerceptionBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5}

	// DefaultDBDurationBuckets covers round trips to the stores.
	DefaultDBDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
)

// NewMetrics registers all families on the collector.
func NewMetrics(c Collector) *Metrics {
	m := &Metrics{}

	m.HTTPRequestsTotal = c.RegisterCounter("http_requests_total",
		"HTTP requests by method, path and status", "method", "path", "status")
	m.HTTPRequestDuration = c.RegisterHistogram("http_request_duration_seconds",
		"HTTP request latency", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = c.RegisterGauge("http_active_requests",
		"In-flight HTTP requests", "method")

	m.PerceptionsTotal = c.RegisterCounter("perceptions_total",
		"Molecule classifications by mode and outcome", "mode", "outcome")
	m.PerceptionDuration = c.RegisterHistogram("perception_duration_seconds",
		"Whole-molecule classification latency", DefaultPerceptionBuckets, "mode")
	m.AtomsClassifiedTotal = c.RegisterCounter("atoms_classified_total",
		"Atoms classified by element", "element")
	m.UnmatchedAtomsTotal = c.RegisterCounter("unmatched_atoms_total",
		"Atoms that received the placeholder type", "element")
	m.DictionaryTypes = c.RegisterGauge("dictionary_types",
		"Entries in the loaded atom type dictionary", "dictionary")

	m.SideEffectsTotal = c.RegisterCounter("side_effects_total",
		"Result side effects by sink and status", "sink", "status")
	m.SideEffectDuration = c.RegisterHistogram("side_effect_duration_seconds",
		"Result side effect latency", DefaultDBDurationBuckets, "sink")
	m.ResultCacheHits = c.RegisterCounter("result_cache_hits_total",
		"Perception results served from cache", "cache")
	m.ResultCacheMisses = c.RegisterCounter("result_cache_misses_total",
		"Perception results computed on cache miss", "cache")
	m.EventsPublishedTotal = c.RegisterCounter("events_published_total",
		"Events published by topic and status", "topic", "status")

	m.DBQueryDuration = c.RegisterHistogram("db_query_duration_seconds",
		"Store query latency", DefaultDBDurationBuckets, "store", "operation")
	m.ErrorsTotal = c.RegisterCounter("errors_total",
		"Errors by component and code", "component", "code")

	return m
}
