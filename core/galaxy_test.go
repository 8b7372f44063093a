package core

import (
	"math"
	"testing"

	"github.com/darkfieldworks/lensing-simulator/model"
)

func TestNewGalaxy_AllComponents(t *testing.T) {
	g := NewGalaxy(GalaxyParams{
		Identifier:      42,
		Redshift:        0.5,
		DxArcsecs:       1.25,
		DyArcsecs:       -0.75,
		BetaRadians:     0.6,
		DiskFlux:        600,
		DiskHLRArcsecs:  0.98,
		DiskQ:           0.67,
		BulgeFlux:       300,
		BulgeHLRArcsecs: 0.45,
		BulgeQ:          0.8,
		AGNFlux:         100,
	})

	if g.Identifier != 42 || g.Redshift != 0.5 {
		t.Fatalf("metadata = (%d, %g), want (42, 0.5)", g.Identifier, g.Redshift)
	}
	if len(g.Profile.Components) != 3 {
		t.Fatalf("components = %d, want 3", len(g.Profile.Components))
	}
	if g.Profile.DxArcsecs != 1.25 || g.Profile.DyArcsecs != -0.75 {
		t.Errorf("profile shift = (%g, %g), want (1.25, -0.75)",
			g.Profile.DxArcsecs, g.Profile.DyArcsecs)
	}

	disk, ok := g.Profile.Components[0].(model.DiskComponent)
	if !ok {
		t.Fatalf("component 0 is %T, want DiskComponent", g.Profile.Components[0])
	}
	if disk.FluxElectrons != 600 || disk.HLRArcsecs != 0.98 || disk.AxisRatio != 0.67 {
		t.Errorf("disk = %+v, want flux=600 hlr=0.98 q=0.67", disk)
	}
	if disk.BetaRadians != 0.6 {
		t.Errorf("disk beta = %g, want 0.6", disk.BetaRadians)
	}

	bulge, ok := g.Profile.Components[1].(model.BulgeComponent)
	if !ok {
		t.Fatalf("component 1 is %T, want BulgeComponent", g.Profile.Components[1])
	}
	if bulge.BetaRadians != disk.BetaRadians {
		t.Errorf("bulge beta = %g, want the disk's %g", bulge.BetaRadians, disk.BetaRadians)
	}

	if _, ok := g.Profile.Components[2].(model.NucleusComponent); !ok {
		t.Fatalf("component 2 is %T, want NucleusComponent", g.Profile.Components[2])
	}

	if total := g.TotalFlux(); total != 1000 {
		t.Errorf("TotalFlux = %g, want 1000", total)
	}
}

func TestNewGalaxy_OmitsZeroFluxComponents(t *testing.T) {
	cases := []struct {
		name       string
		disk, agn  float64
		bulge      float64
		wantCounts int
	}{
		{name: "disk only", disk: 10, wantCounts: 1},
		{name: "bulge only", bulge: 10, wantCounts: 1},
		{name: "agn only", agn: 10, wantCounts: 1},
		{name: "disk and agn", disk: 10, agn: 5, wantCounts: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGalaxy(GalaxyParams{
				Identifier: 1,
				DiskFlux:   tc.disk,
				BulgeFlux:  tc.bulge,
				AGNFlux:    tc.agn,
			})
			if len(g.Profile.Components) != tc.wantCounts {
				t.Fatalf("components = %d, want %d", len(g.Profile.Components), tc.wantCounts)
			}
		})
	}
}

func TestNewGalaxy_NucleusPrimitiveIsNarrowGaussian(t *testing.T) {
	g := NewGalaxy(GalaxyParams{Identifier: 7, AGNFlux: 55})

	prims := g.Profile.Primitives()
	if len(prims) != 1 {
		t.Fatalf("primitives = %d, want 1", len(prims))
	}
	p := prims[0]
	if p.Family != model.FamilyGaussian {
		t.Errorf("family = %v, want gaussian", p.Family)
	}
	if p.Sheared {
		t.Errorf("nucleus primitive must not be sheared")
	}
	if p.SigmaArcsecs != model.NucleusSigmaArcsecs {
		t.Errorf("sigma = %g, want %g", p.SigmaArcsecs, model.NucleusSigmaArcsecs)
	}
	if p.Flux != 55 {
		t.Errorf("flux = %g, want 55", p.Flux)
	}
}

func TestNewGalaxy_ExtendedPrimitivesCarryShear(t *testing.T) {
	g := NewGalaxy(GalaxyParams{
		Identifier:      3,
		BetaRadians:     math.Pi / 4,
		DiskFlux:        100,
		DiskHLRArcsecs:  1.5,
		DiskQ:           0.5,
		BulgeFlux:       50,
		BulgeHLRArcsecs: 0.7,
		BulgeQ:          0.9,
	})

	prims := g.Profile.Primitives()
	if len(prims) != 2 {
		t.Fatalf("primitives = %d, want 2", len(prims))
	}
	if prims[0].Family != model.FamilyExponential || prims[1].Family != model.FamilyDeVaucouleurs {
		t.Fatalf("families = %v,%v, want exponential,devaucouleurs", prims[0].Family, prims[1].Family)
	}
	for i, p := range prims {
		if !p.Sheared {
			t.Errorf("primitive %d: extended component must be sheared", i)
		}
		if p.BetaRadians != math.Pi/4 {
			t.Errorf("primitive %d: beta = %g, want pi/4", i, p.BetaRadians)
		}
	}
}
