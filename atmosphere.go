package deorbit

import "math"

// Atmosphere is an empirical double exponential density profile:
// ρ(h) = ρ0 * exp(-(h/K1 + (h/K2)^1.5)) for an altitude h above the surface.
type Atmosphere struct {
	SurfaceDensity float64 // ρ0 in kg/m^3
	K1             float64 // in meters
	K2             float64 // in meters
}

// Density returns the air density at the provided altitude (in meters). Zero at or below the surface.
func (a Atmosphere) Density(altitude float64) float64 {
	if altitude <= 0 {
		return 0
	}
	return a.SurfaceDensity * math.Exp(-(altitude/a.K1 + math.Pow(altitude/a.K2, 1.5)))
}

// EarthAtmosphere is the density profile used for Earth.
var EarthAtmosphere = Atmosphere{SurfaceDensity: 1.225, K1: 1.2e4, K2: 2.2e4}
