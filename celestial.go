package deorbit

import "math"

// CelestialObject defines the central body of the simulation.
// Distances are in meters and μ in m^3/s^2.
type CelestialObject struct {
	Name       string
	Radius     float64
	μ          float64
	Atmosphere *Atmosphere // May be nil for bodies without an atmosphere.
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// AirDensity returns the air density in kg/m^3 at a distance r from the center of the body.
// There is no atmosphere at or below the surface.
func (c CelestialObject) AirDensity(r float64) float64 {
	if c.Atmosphere == nil || r <= c.Radius {
		return 0
	}
	return c.Atmosphere.Density(r - c.Radius)
}

// CircularVelocity returns the speed of a circular orbit of radius r.
func (c CelestialObject) CircularVelocity(r float64) float64 {
	return math.Sqrt(c.μ / r)
}

// Period returns the period in seconds of a circular orbit of radius r.
func (c CelestialObject) Period(r float64) float64 {
	return 2 * math.Pi * math.Sqrt(r*r*r/c.μ)
}

/* Definitions */

// Earth is home.
var Earth = CelestialObject{"Earth", 6.378e6, 3.987e14, &EarthAtmosphere}
