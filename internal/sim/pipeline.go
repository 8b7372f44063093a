package sim

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/darkfieldworks/lensing-simulator/core"
	"github.com/darkfieldworks/lensing-simulator/internal/logging"
	"github.com/darkfieldworks/lensing-simulator/internal/observability"
	"github.com/darkfieldworks/lensing-simulator/model"
)

const tracerName = "github.com/darkfieldworks/lensing-simulator/internal/sim"

// Pipeline runs one GalaxyBuilder over a batch of catalog rows. Per-row
// data errors are contained: the failing row is recorded and the batch
// continues, since a corrupt row says nothing about its neighbours.
type Pipeline struct {
	Builder *core.GalaxyBuilder
	Band    model.FilterBand

	// Offsets resolves a row's centroid offset from the image center in
	// arcseconds. Nil places every source at the center.
	Offsets func(e *model.CatalogEntry) (dxArcsecs, dyArcsecs float64)

	Log     logging.Logger
	Metrics *observability.BuildCollector
}

// Summary is the outcome of one batch run.
type Summary struct {
	Galaxies   []*core.Galaxy
	NotVisible int
	Failed     int
}

// NewPipeline constructs a pipeline with no metrics and a noop logger;
// callers may set the exported fields before Run.
func NewPipeline(builder *core.GalaxyBuilder, band model.FilterBand) *Pipeline {
	return &Pipeline{
		Builder: builder,
		Band:    band,
		Log:     logging.Noop(),
	}
}

// Run builds a galaxy model for every entry, in order. It returns the
// built models plus counts of not-visible and failed rows.
func (p *Pipeline) Run(ctx context.Context, entries []*model.CatalogEntry) *Summary {
	log := p.Log
	if log == nil {
		log = logging.Noop()
	}

	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "catalog_build", trace.WithAttributes(
		attribute.String("band", string(p.Band)),
		attribute.Int("entries", len(entries)),
	))
	defer span.End()

	p.Metrics.SetCatalogSize(len(entries))

	summary := &Summary{}
	for _, entry := range entries {
		var dx, dy float64
		if p.Offsets != nil {
			dx, dy = p.Offsets(entry)
		}

		entryCtx, entrySpan := tracer.Start(ctx, "build_galaxy", trace.WithAttributes(
			attribute.Int64("catalog.id", entry.ID),
		))

		start := time.Now()
		galaxy, visible, err := p.Builder.FromCatalog(entryCtx, entry, dx, dy, p.Band)
		elapsed := time.Since(start)

		switch {
		case err != nil:
			entrySpan.SetAttributes(attribute.String("outcome", "error"))
			entrySpan.End()
			p.Metrics.ObserveError(errorReason(err))
			log.Warn(entryCtx, "skipping catalog row",
				logging.Int64("id", entry.ID),
				logging.String("error", err.Error()),
			)
			summary.Failed++
		case !visible:
			entrySpan.SetAttributes(attribute.String("outcome", "not_visible"))
			entrySpan.End()
			p.Metrics.ObserveNotVisible()
			summary.NotVisible++
		default:
			entrySpan.SetAttributes(attribute.String("outcome", "built"))
			entrySpan.End()
			p.Metrics.ObserveBuilt(string(p.Band), elapsed.Seconds())
			summary.Galaxies = append(summary.Galaxies, galaxy)
		}
	}

	span.SetAttributes(
		attribute.Int("built", len(summary.Galaxies)),
		attribute.Int("not_visible", summary.NotVisible),
		attribute.Int("failed", summary.Failed),
	)
	return summary
}

// errorReason buckets per-row errors into stable metric labels.
func errorReason(err error) string {
	switch {
	case errors.Is(err, core.ErrMissingMagnitude):
		return "missing_magnitude"
	case errors.Is(err, core.ErrPositionAngleMismatch):
		return "position_angle_mismatch"
	default:
		return "other"
	}
}
