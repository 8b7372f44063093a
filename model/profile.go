package model

// NucleusSigmaArcsecs approximates the unresolved AGN component as a very
// narrow Gaussian, since the rendering engine provides no delta-function
// primitive.
const NucleusSigmaArcsecs = 1e-8

// PrimitiveFamily names the radial brightness laws understood by the
// rendering engine.
type PrimitiveFamily int

const (
	FamilyExponential   PrimitiveFamily = iota // Sersic n=1
	FamilyDeVaucouleurs                        // Sersic n=4
	FamilyGaussian                             // point-like, narrow sigma
)

// String returns the family name used in logs and render requests.
func (f PrimitiveFamily) String() string {
	switch f {
	case FamilyExponential:
		return "exponential"
	case FamilyDeVaucouleurs:
		return "devaucouleurs"
	case FamilyGaussian:
		return "gaussian"
	}
	return "unknown"
}

// ProfileComponent is one weighted component of a composite light profile.
// The concrete variants are DiskComponent, BulgeComponent, and
// NucleusComponent.
type ProfileComponent interface {
	// Flux returns the component's total flux in detected electrons.
	Flux() float64
	// Primitive maps the component onto the rendering engine's
	// primitive vocabulary.
	Primitive() Primitive
}

// DiskComponent is a Sersic n=1 (exponential) component.
type DiskComponent struct {
	FluxElectrons float64
	// HLRArcsecs is the circularized half-light radius sqrt(a*b).
	HLRArcsecs float64
	// AxisRatio is q = b/a of the 50% isophote, in (0, 1].
	AxisRatio float64
	// BetaRadians is the major-axis position angle, counter-clockwise
	// from the positive x-axis.
	BetaRadians float64
}

func (c DiskComponent) Flux() float64 { return c.FluxElectrons }

func (c DiskComponent) Primitive() Primitive {
	return Primitive{
		Family:      FamilyExponential,
		Flux:        c.FluxElectrons,
		HLRArcsecs:  c.HLRArcsecs,
		Sheared:     true,
		AxisRatio:   c.AxisRatio,
		BetaRadians: c.BetaRadians,
	}
}

// BulgeComponent is a Sersic n=4 (de Vaucouleurs) component.
type BulgeComponent struct {
	FluxElectrons float64
	HLRArcsecs    float64
	AxisRatio     float64
	BetaRadians   float64
}

func (c BulgeComponent) Flux() float64 { return c.FluxElectrons }

func (c BulgeComponent) Primitive() Primitive {
	return Primitive{
		Family:      FamilyDeVaucouleurs,
		Flux:        c.FluxElectrons,
		HLRArcsecs:  c.HLRArcsecs,
		Sheared:     true,
		AxisRatio:   c.AxisRatio,
		BetaRadians: c.BetaRadians,
	}
}

// NucleusComponent is a point-like AGN component. It carries flux only;
// its extent is degenerate.
type NucleusComponent struct {
	FluxElectrons float64
}

func (c NucleusComponent) Flux() float64 { return c.FluxElectrons }

func (c NucleusComponent) Primitive() Primitive {
	return Primitive{
		Family:       FamilyGaussian,
		Flux:         c.FluxElectrons,
		SigmaArcsecs: NucleusSigmaArcsecs,
	}
}

// Primitive is a single shape in the rendering engine's vocabulary: a
// radial brightness law, optionally sheared to an ellipse.
type Primitive struct {
	Family PrimitiveFamily
	Flux   float64

	// HLRArcsecs sizes the extended families; SigmaArcsecs sizes the
	// Gaussian family. The unused one is zero.
	HLRArcsecs   float64
	SigmaArcsecs float64

	// Shear parameters, meaningful only when Sheared is set.
	Sheared     bool
	AxisRatio   float64
	BetaRadians float64
}

// Profile is the composite light profile handed to the rendering engine:
// an ordered sum of components translated by a common centroid shift in
// arcseconds relative to the image center.
type Profile struct {
	Components []ProfileComponent
	DxArcsecs  float64
	DyArcsecs  float64
}

// TotalFlux sums the flux of all components.
func (p Profile) TotalFlux() float64 {
	var total float64
	for _, c := range p.Components {
		total += c.Flux()
	}
	return total
}

// Primitives maps the composite onto the render vocabulary, preserving
// component order.
func (p Profile) Primitives() []Primitive {
	prims := make([]Primitive, 0, len(p.Components))
	for _, c := range p.Components {
		prims = append(prims, c.Primitive())
	}
	return prims
}
