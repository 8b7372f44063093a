package core

import (
	"github.com/darkfieldworks/lensing-simulator/model"
)

// GalaxyParams are fully-resolved physical parameters for one galaxy.
// Shape fields of a component are ignored when its flux is zero or
// negative, so callers may leave them unset for excluded components.
type GalaxyParams struct {
	Identifier int64
	Redshift   float64

	// Centroid offset from the image center, arcseconds.
	DxArcsecs float64
	DyArcsecs float64

	// BetaRadians is the shared position angle of the extended
	// components, counter-clockwise from the positive x-axis. Unused
	// when neither the disk nor the bulge carries flux.
	BetaRadians float64

	DiskFlux       float64
	DiskHLRArcsecs float64
	DiskQ          float64

	BulgeFlux       float64
	BulgeHLRArcsecs float64
	BulgeQ          float64

	AGNFlux float64
}

// Galaxy is an immutable composite light-profile description for one
// catalog object. Up to three components contribute: a disk (Sersic n=1),
// a bulge (Sersic n=4), and a point-like AGN. All components share one
// centroid, and the extended components share one position angle.
//
// Galaxy trusts its inputs; consistency checks belong to GalaxyBuilder.
type Galaxy struct {
	Identifier int64
	Redshift   float64
	DxArcsecs  float64
	DyArcsecs  float64
	Profile    model.Profile
}

// NewGalaxy assembles the composite profile from resolved parameters,
// including each component with positive flux in disk, bulge, AGN order
// and translating the sum by the centroid offset.
func NewGalaxy(p GalaxyParams) *Galaxy {
	var components []model.ProfileComponent
	if p.DiskFlux > 0 {
		components = append(components, model.DiskComponent{
			FluxElectrons: p.DiskFlux,
			HLRArcsecs:    p.DiskHLRArcsecs,
			AxisRatio:     p.DiskQ,
			BetaRadians:   p.BetaRadians,
		})
	}
	if p.BulgeFlux > 0 {
		components = append(components, model.BulgeComponent{
			FluxElectrons: p.BulgeFlux,
			HLRArcsecs:    p.BulgeHLRArcsecs,
			AxisRatio:     p.BulgeQ,
			BetaRadians:   p.BetaRadians,
		})
	}
	if p.AGNFlux > 0 {
		components = append(components, model.NucleusComponent{
			FluxElectrons: p.AGNFlux,
		})
	}
	return &Galaxy{
		Identifier: p.Identifier,
		Redshift:   p.Redshift,
		DxArcsecs:  p.DxArcsecs,
		DyArcsecs:  p.DyArcsecs,
		Profile: model.Profile{
			Components: components,
			DxArcsecs:  p.DxArcsecs,
			DyArcsecs:  p.DyArcsecs,
		},
	}
}

// TotalFlux returns the summed flux of all profile components in
// detected electrons.
func (g *Galaxy) TotalFlux() float64 {
	return g.Profile.TotalFlux()
}
