package model

import "fmt"

// FilterBand is one of the survey's photometric filter bands.
type FilterBand string

const (
	BandU FilterBand = "u"
	BandG FilterBand = "g"
	BandR FilterBand = "r"
	BandI FilterBand = "i"
	BandZ FilterBand = "z"
	BandY FilterBand = "y"
)

// FilterBands lists the supported bands in wavelength order.
var FilterBands = []FilterBand{BandU, BandG, BandR, BandI, BandZ, BandY}

// ParseFilterBand validates a band code read from flags or config.
func ParseFilterBand(s string) (FilterBand, error) {
	for _, b := range FilterBands {
		if s == string(b) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unsupported filter band %q (want one of u,g,r,i,z,y)", s)
}

// MagnitudeField returns the catalog column holding this band's AB
// magnitude, e.g. "i_ab" for the i band.
func (b FilterBand) MagnitudeField() string {
	return string(b) + "_ab"
}
