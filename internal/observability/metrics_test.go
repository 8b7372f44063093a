package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestBuildCollectorRecordsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewBuildCollector(reg)
	if err != nil {
		t.Fatalf("NewBuildCollector: %v", err)
	}

	collector.ObserveBuilt("i", 0.002)
	collector.ObserveBuilt("i", 0.004)
	collector.ObserveBuilt("r", 0.001)
	collector.ObserveNotVisible()
	collector.ObserveError("missing_magnitude")
	collector.SetCatalogSize(12)

	if got := testutil.ToFloat64(collector.GalaxiesBuilt.WithLabelValues("i")); got != 2 {
		t.Errorf("galaxies_built_total{band=i} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.GalaxiesBuilt.WithLabelValues("r")); got != 1 {
		t.Errorf("galaxies_built_total{band=r} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.SourcesSkipped); got != 1 {
		t.Errorf("sources_not_visible_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.BuildErrors.WithLabelValues("missing_magnitude")); got != 1 {
		t.Errorf("build_errors_total{reason=missing_magnitude} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.CatalogEntries); got != 12 {
		t.Errorf("catalog_entries = %v, want 12", got)
	}

	if count := histogramSampleCount(t, reg, "build_duration_seconds"); count != 3 {
		t.Errorf("build_duration_seconds sample_count = %d, want 3", count)
	}
}

func TestBuildCollectorReregistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewBuildCollector(reg)
	if err != nil {
		t.Fatalf("NewBuildCollector: %v", err)
	}
	second, err := NewBuildCollector(reg)
	if err != nil {
		t.Fatalf("NewBuildCollector on same registry: %v", err)
	}

	first.ObserveNotVisible()
	second.ObserveNotVisible()

	if got := testutil.ToFloat64(second.SourcesSkipped); got != 2 {
		t.Errorf("sources_not_visible_total = %v, want 2 (shared counter)", got)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewBuildCollector(reg)
	if err != nil {
		t.Fatalf("NewBuildCollector: %v", err)
	}
	collector.ObserveBuilt("z", 0.001)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}
	if !strings.Contains(string(body), "galaxies_built_total") {
		t.Errorf("metrics output missing galaxies_built_total:\n%s", body)
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string) uint64 {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			return histogramCount(m)
		}
	}
	return 0
}

func histogramCount(m *dto.Metric) uint64 {
	if h := m.GetHistogram(); h != nil {
		return h.GetSampleCount()
	}
	return 0
}
