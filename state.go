package deorbit

import "fmt"

// State is the planar position (in m) and velocity (in m/s) of the satellite.
type State struct {
	X, Y, VX, VY float64
}

// NewCircularState returns the state of a circular orbit at the provided altitude (in meters)
// above the body: on the positive x-axis with a purely tangential velocity.
func NewCircularState(o CelestialObject, altitude float64) State {
	r0 := o.Radius + altitude
	return State{X: r0, Y: 0, VX: 0, VY: o.CircularVelocity(r0)}
}

// StateFromVector returns the State from a [x, y, vx, vy] vector.
func StateFromVector(s []float64) State {
	if len(s) != 4 {
		panic(fmt.Errorf("state vector must be of length 4, got %d", len(s)))
	}
	return State{s[0], s[1], s[2], s[3]}
}

// Vector returns the state as a [x, y, vx, vy] vector.
func (s State) Vector() []float64 {
	return []float64{s.X, s.Y, s.VX, s.VY}
}

// R returns the position vector.
func (s State) R() []float64 {
	return []float64{s.X, s.Y}
}

// V returns the velocity vector.
func (s State) V() []float64 {
	return []float64{s.VX, s.VY}
}

// RNorm returns the distance to the center of the body.
func (s State) RNorm() float64 {
	return norm(s.R())
}

// Speed returns the norm of the velocity.
func (s State) Speed() float64 {
	return norm(s.V())
}

// Polar returns the radius and normalized angle of the position.
func (s State) Polar() (r, a float64) {
	return Polar(s.X, s.Y)
}

// Energyξ returns the specific mechanical energy about a body of gravitational parameter μ.
func (s State) Energyξ(μ float64) float64 {
	v := s.V()
	return dot(v, v)/2 - μ/s.RNorm()
}

// Momentum returns the specific angular momentum (positive counterclockwise).
func (s State) Momentum() float64 {
	return cross2(s.R(), s.V())
}

// String implements the Stringer interface.
func (s State) String() string {
	return fmt.Sprintf("r=(%.3f, %.3f) m v=(%.4f, %.4f) m/s", s.X, s.Y, s.VX, s.VY)
}
