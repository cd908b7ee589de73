package deorbit

import (
	"fmt"
	"math"

	"github.com/deorbit/deorbit/integrator"
)

// Forces is the planar force model: central gravity, atmospheric drag and braking thrust.
type Forces struct {
	Origin          CelestialObject
	DragCoefficient float64
	Thruster        RetroThruster
}

// NewForces returns the force model of the provided satellite about the origin, where the
// rocket motor fires during the first thrustDuration seconds.
func NewForces(origin CelestialObject, sat Satellite, thrustDuration float64) Forces {
	return Forces{origin, sat.DragCoefficient, RetroThruster{sat.Deceleration, thrustDuration}}
}

// Accel returns the acceleration at position (x, y) with velocity (vx, vy) at time t.
// The position must not be the center of the body.
func (f Forces) Accel(x, y, vx, vy, t float64) (ax, ay float64) {
	r := norm2(x, y)
	if r == 0 {
		panic(fmt.Errorf("gravity undefined at the center of %s @ t=%f", f.Origin, t))
	}
	v2 := vx*vx + vy*vy
	v := math.Sqrt(v2)

	// Gravity
	r3 := 1 / (r * r * r)
	ax = -f.Origin.μ * x * r3
	ay = -f.Origin.μ * y * r3

	// Air drag
	if v > speedε && f.DragCoefficient != 0 {
		ad := f.DragCoefficient * f.Origin.AirDensity(r) * v2
		ax -= ad * vx / v
		ay -= ad * vy / v
	}

	// Braking
	tx, ty := f.Thruster.Accel(t, vx, vy)
	ax += tx
	ay += ty
	return
}

// Func implements integrator.Func on a [x, y, vx, vy] vector.
func (f Forces) Func(t float64, s []float64) (fDot []float64) {
	fDot = make([]float64, 4)
	// d\vec{R}/dt
	fDot[0] = s[2]
	fDot[1] = s[3]
	// d\vec{V}/dt
	fDot[2], fDot[3] = f.Accel(s[0], s[1], s[2], s[3], t)
	for i := 0; i < 4; i++ {
		if math.IsNaN(fDot[i]) {
			panic(fmt.Errorf("fDot[%d]=NaN @ t=%f\nstate=%+v", i, t, s))
		}
	}
	return
}

// Step advances the state by one RK4 step of h seconds from time t.
func (f Forces) Step(s State, t, h float64) State {
	return StateFromVector(integrator.Step(f.Func, t, h, s.Vector()))
}
