package core

// FluxCalibrator converts an AB magnitude into a total flux in detected
// electrons for one survey configuration. Implementations live with the
// survey definition (exposure, zero point, etc.); this package only
// consumes the conversion and assumes it is pure.
//
// A calibrator must be safe for concurrent reads when a GalaxyBuilder is
// shared between goroutines.
type FluxCalibrator interface {
	MagnitudeToFlux(abMagnitude float64) float64
}
