package core

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/darkfieldworks/lensing-simulator/internal/logging"
	"github.com/darkfieldworks/lensing-simulator/model"
)

var (
	// ErrNoComponents rejects a builder configured to suppress every
	// component: nothing it built could ever be visible.
	ErrNoComponents = errors.New("all galaxy components are suppressed")

	// ErrMissingMagnitude reports a catalog row without an AB magnitude
	// measurement in the requested band.
	ErrMissingMagnitude = errors.New("catalog entry is missing AB magnitude")

	// ErrPositionAngleMismatch reports a row whose disk and bulge
	// position angles disagree while both components carry flux. The
	// extended components are assumed coaligned; a mismatch means the
	// row is corrupt.
	ErrPositionAngleMismatch = errors.New("disk and bulge position angles disagree")
)

// BuilderConfig selects which catalog components a GalaxyBuilder includes
// and whether it reports each model it builds. Flag names on the CLI are
// these field names with hyphens (-disable-disk, -disable-bulge,
// -disable-nucleus, -verbose).
type BuilderConfig struct {
	// DisableDisk drops any Sersic n=1 component present in the catalog.
	DisableDisk bool
	// DisableBulge drops any Sersic n=4 component present in the catalog.
	DisableBulge bool
	// DisableNucleus drops any point-like component present in the catalog.
	DisableNucleus bool
	// Verbose logs a per-galaxy model summary while building.
	Verbose bool
}

// GalaxyBuilder builds Galaxy models from catalog rows. Its configuration
// is fixed at construction, so one builder may serve many rows and may be
// shared between goroutines as long as the calibrator allows concurrent
// reads.
type GalaxyBuilder struct {
	survey FluxCalibrator
	cfg    BuilderConfig
	log    logging.Logger
}

// NewGalaxyBuilder validates the configuration and returns a builder that
// normalizes fluxes through the given calibrator. A nil logger disables
// the verbose report regardless of cfg.Verbose.
func NewGalaxyBuilder(survey FluxCalibrator, cfg BuilderConfig, log logging.Logger) (*GalaxyBuilder, error) {
	if cfg.DisableDisk && cfg.DisableBulge && cfg.DisableNucleus {
		return nil, fmt.Errorf("%w: must build at least one component", ErrNoComponents)
	}
	if log == nil {
		log = logging.Noop()
	}
	return &GalaxyBuilder{survey: survey, cfg: cfg, log: log}, nil
}

// FromCatalog builds a Galaxy from one catalog row.
//
// The row's total flux in the requested band is split between the disk,
// bulge, and AGN components in proportion to their fluxnorm fractions,
// assuming all components share one spectral energy distribution (the
// proportions are then band-independent). Components suppressed by the
// builder configuration receive zero flux.
//
// The second return value distinguishes the not-visible outcome: when
// suppression and catalog fractions leave no flux at all, FromCatalog
// returns (nil, false, nil) and the caller is expected to skip the row.
// Errors are per-row data errors (missing magnitude, inconsistent
// position angles) and never yield a partial Galaxy.
func (b *GalaxyBuilder) FromCatalog(ctx context.Context, entry *model.CatalogEntry, dxArcsecs, dyArcsecs float64, band model.FilterBand) (*Galaxy, bool, error) {
	abMagnitude, ok := entry.ABMagnitude(band)
	if !ok {
		return nil, false, fmt.Errorf("%w: id=%d band=%s", ErrMissingMagnitude, entry.ID, band)
	}
	totalFlux := b.survey.MagnitudeToFlux(abMagnitude)

	// Split the total flux between components. A row with no
	// normalization at all has nothing to distribute and is treated the
	// same as a fully suppressed one.
	totalFluxnorm := entry.FluxnormDisk + entry.FluxnormBulge + entry.FluxnormAGN
	if totalFluxnorm == 0 {
		return nil, false, nil
	}
	var diskFlux, bulgeFlux, agnFlux float64
	if !b.cfg.DisableDisk {
		diskFlux = entry.FluxnormDisk / totalFluxnorm * totalFlux
	}
	if !b.cfg.DisableBulge {
		bulgeFlux = entry.FluxnormBulge / totalFluxnorm * totalFlux
	}
	if !b.cfg.DisableNucleus {
		agnFlux = entry.FluxnormAGN / totalFluxnorm * totalFlux
	}

	// Is there any flux to simulate?
	if diskFlux+bulgeFlux+agnFlux == 0 {
		return nil, false, nil
	}

	// Resolve the shared position angle of the extended components.
	var betaRadians float64
	switch {
	case diskFlux > 0:
		if bulgeFlux > 0 && entry.PADisk != entry.PABulge {
			return nil, false, fmt.Errorf("%w: id=%d pa_disk=%g pa_bulge=%g",
				ErrPositionAngleMismatch, entry.ID, entry.PADisk, entry.PABulge)
		}
		betaRadians = degreesToRadians(entry.PADisk)
	case bulgeFlux > 0:
		betaRadians = degreesToRadians(entry.PABulge)
	default:
		// AGN-only model; the angle stays unused.
	}

	// Derive shapes hlr = sqrt(a*b) and q = b/a. Skipped entirely for
	// zero-flux components so that excluded rows may carry missing or
	// garbage axis fields.
	var diskHLR, diskQ float64
	if diskFlux > 0 {
		diskHLR, diskQ = shapeFromAxes(entry.ADisk, entry.BDisk)
		b.flagAxisRatio(ctx, entry.ID, "disk", diskQ)
	}
	var bulgeHLR, bulgeQ float64
	if bulgeFlux > 0 {
		bulgeHLR, bulgeQ = shapeFromAxes(entry.ABulge, entry.BBulge)
		b.flagAxisRatio(ctx, entry.ID, "bulge", bulgeQ)
	}

	if b.cfg.Verbose {
		b.reportModel(ctx, entry, band, abMagnitude, totalFlux,
			dxArcsecs, dyArcsecs, betaRadians,
			diskFlux, diskHLR, diskQ, bulgeFlux, bulgeHLR, bulgeQ, agnFlux)
	}

	galaxy := NewGalaxy(GalaxyParams{
		Identifier:      entry.ID,
		Redshift:        entry.Redshift,
		DxArcsecs:       dxArcsecs,
		DyArcsecs:       dyArcsecs,
		BetaRadians:     betaRadians,
		DiskFlux:        diskFlux,
		DiskHLRArcsecs:  diskHLR,
		DiskQ:           diskQ,
		BulgeFlux:       bulgeFlux,
		BulgeHLRArcsecs: bulgeHLR,
		BulgeQ:          bulgeQ,
		AGNFlux:         agnFlux,
	})
	return galaxy, true, nil
}

// shapeFromAxes circularizes the 50% isophote: hlr is the geometric mean
// of the semi-axes, q the minor/major ratio.
func shapeFromAxes(a, b float64) (hlr, q float64) {
	return math.Sqrt(a * b), b / a
}

// flagAxisRatio reports q > 1 as a data-quality problem. The model is
// still built; q > 1 just means the catalog swapped the semi-axes.
func (b *GalaxyBuilder) flagAxisRatio(ctx context.Context, id int64, component string, q float64) {
	if q > 1 {
		b.log.Warn(ctx, "axis ratio exceeds 1, catalog semi-axes look swapped",
			logging.Int64("id", id),
			logging.String("component", component),
			logging.Float64("q", q),
		)
	}
}

func (b *GalaxyBuilder) reportModel(ctx context.Context, entry *model.CatalogEntry, band model.FilterBand, abMagnitude, totalFlux, dxArcsecs, dyArcsecs, betaRadians, diskFlux, diskHLR, diskQ, bulgeFlux, bulgeHLR, bulgeQ, agnFlux float64) {
	fields := []logging.Field{
		logging.Int64("id", entry.ID),
		logging.Float64("redshift", entry.Redshift),
		logging.Float64("total_flux_electrons", totalFlux),
		logging.String("band", string(band)),
		logging.Float64("ab_magnitude", abMagnitude),
		logging.Float64("dx_arcsecs", dxArcsecs),
		logging.Float64("dy_arcsecs", dyArcsecs),
		logging.Float64("beta_radians", betaRadians),
	}
	if diskFlux > 0 {
		fields = append(fields,
			logging.Float64("disk_frac", diskFlux/totalFlux),
			logging.Float64("disk_hlr_arcsecs", diskHLR),
			logging.Float64("disk_q", diskQ),
		)
	}
	if bulgeFlux > 0 {
		fields = append(fields,
			logging.Float64("bulge_frac", bulgeFlux/totalFlux),
			logging.Float64("bulge_hlr_arcsecs", bulgeHLR),
			logging.Float64("bulge_q", bulgeQ),
		)
	}
	if agnFlux > 0 {
		fields = append(fields, logging.Float64("agn_frac", agnFlux/totalFlux))
	}
	b.log.Info(ctx, "building galaxy model", fields...)
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
