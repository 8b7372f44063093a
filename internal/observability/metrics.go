package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BuildCollector bundles Prometheus metrics for the galaxy model build
// pipeline and provides a ready-to-serve /metrics handler.
type BuildCollector struct {
	gatherer prometheus.Gatherer

	GalaxiesBuilt  *prometheus.CounterVec
	SourcesSkipped prometheus.Counter
	BuildErrors    *prometheus.CounterVec
	BuildDuration  prometheus.Histogram

	CatalogEntries prometheus.Gauge
}

// NewBuildCollector registers build-pipeline Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewBuildCollector(reg prometheus.Registerer) (*BuildCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	built := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "galaxies_built_total",
		Help: "Galaxy models built successfully, labeled by filter band.",
	}, []string{"band"})
	built, err := registerCounterVec(reg, built, "galaxies_built_total")
	if err != nil {
		return nil, err
	}

	skipped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sources_not_visible_total",
		Help: "Catalog rows skipped because no component carried flux under the current configuration.",
	}), "sources_not_visible_total")
	if err != nil {
		return nil, err
	}

	buildErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "build_errors_total",
		Help: "Per-row build failures, labeled by reason.",
	}, []string{"reason"})
	buildErrors, err = registerCounterVec(reg, buildErrors, "build_errors_total")
	if err != nil {
		return nil, err
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "build_duration_seconds",
		Help:    "Wall-clock time to build one galaxy model.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
	}), "build_duration_seconds")
	if err != nil {
		return nil, err
	}

	entries, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_entries",
		Help: "Number of rows in the loaded catalog.",
	}), "catalog_entries")
	if err != nil {
		return nil, err
	}

	return &BuildCollector{
		gatherer:       gatherer,
		GalaxiesBuilt:  built,
		SourcesSkipped: skipped,
		BuildErrors:    buildErrors,
		BuildDuration:  duration,
		CatalogEntries: entries,
	}, nil
}

// Handler exposes a ready-to-use /metrics handler.
func (c *BuildCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveBuilt records one successful build in the given band.
func (c *BuildCollector) ObserveBuilt(band string, seconds float64) {
	if c == nil {
		return
	}
	if c.GalaxiesBuilt != nil {
		c.GalaxiesBuilt.WithLabelValues(band).Inc()
	}
	if c.BuildDuration != nil {
		c.BuildDuration.Observe(seconds)
	}
}

// ObserveNotVisible records one row skipped as not visible.
func (c *BuildCollector) ObserveNotVisible() {
	if c == nil || c.SourcesSkipped == nil {
		return
	}
	c.SourcesSkipped.Inc()
}

// ObserveError records one per-row build failure under the given reason.
func (c *BuildCollector) ObserveError(reason string) {
	if c == nil || c.BuildErrors == nil {
		return
	}
	c.BuildErrors.WithLabelValues(reason).Inc()
}

// SetCatalogSize drives the catalog-size gauge.
func (c *BuildCollector) SetCatalogSize(n int) {
	if c == nil || c.CatalogEntries == nil {
		return
	}
	c.CatalogEntries.Set(float64(n))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
