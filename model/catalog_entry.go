package model

// CatalogEntry is a single row of a galaxy survey catalog.
//
// Magnitudes are stored per band and are optional: a survey does not
// necessarily measure every object in every band. Pointers distinguish
// "not measured" (nil) from a measured value of zero.
//
// Position angles are catalog values in degrees; semi-axis lengths are
// the 50% isophote semi-major (a) and semi-minor (b) extents in
// arcseconds, stored separately for the disk and bulge components.
type CatalogEntry struct {
	ID       int64   `json:"id"`
	Redshift float64 `json:"redshift"`

	UAB *float64 `json:"u_ab,omitempty"`
	GAB *float64 `json:"g_ab,omitempty"`
	RAB *float64 `json:"r_ab,omitempty"`
	IAB *float64 `json:"i_ab,omitempty"`
	ZAB *float64 `json:"z_ab,omitempty"`
	YAB *float64 `json:"y_ab,omitempty"`

	// Flux normalization fractions for the three possible components.
	// Only their ratios matter; the builder rescales by the sum.
	FluxnormDisk  float64 `json:"fluxnorm_disk"`
	FluxnormBulge float64 `json:"fluxnorm_bulge"`
	FluxnormAGN   float64 `json:"fluxnorm_agn"`

	// Position angles of the extended components in degrees. The catalog
	// stores them per component but a consistent row has equal values.
	PADisk  float64 `json:"pa_disk"`
	PABulge float64 `json:"pa_bulge"`

	// 50% isophote semi-axes in arcseconds.
	ADisk  float64 `json:"a_d"`
	BDisk  float64 `json:"b_d"`
	ABulge float64 `json:"a_b"`
	BBulge float64 `json:"b_b"`
}

// ABMagnitude returns the AB magnitude measured in the given band, with
// ok=false when the row carries no measurement for that band.
func (e *CatalogEntry) ABMagnitude(band FilterBand) (float64, bool) {
	var m *float64
	switch band {
	case BandU:
		m = e.UAB
	case BandG:
		m = e.GAB
	case BandR:
		m = e.RAB
	case BandI:
		m = e.IAB
	case BandZ:
		m = e.ZAB
	case BandY:
		m = e.YAB
	}
	if m == nil {
		return 0, false
	}
	return *m, true
}
