package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// decay1D integrates dy/dt = -k*y, whose solution is y0*exp(-k*t).
type decay1D struct {
	k     float64
	state []float64 // Note that we don't have a state history here.
	stop  uint64
	iters []uint64
}

func (d *decay1D) GetState() []float64 {
	return d.state
}

func (d *decay1D) SetState(i uint64, s []float64) {
	d.iters = append(d.iters, i)
	d.state = s
}

func (d *decay1D) Stop(i uint64) bool {
	return i >= d.stop
}

func (d *decay1D) Func(t float64, s []float64) []float64 {
	return []float64{-d.k * s[0]}
}

func TestRK4Decay(t *testing.T) {
	d := &decay1D{k: 0.5, state: []float64{1200}, stop: 40}
	iterNum, xi, err := NewRK4(0, 0.25, d).Solve()
	if err != nil {
		t.Fatalf("err: %+v", err)
	}
	if iterNum != 40 {
		t.Fatalf("expected 40 iterations, got %d", iterNum)
	}
	if !scalar.EqualWithinAbs(xi, 10, 1e-12) {
		t.Fatalf("expected to end at t=10, got %f", xi)
	}
	exp := 1200 * math.Exp(-0.5*10)
	if !scalar.EqualWithinRel(d.state[0], exp, 5e-5) {
		t.Fatalf("final state %.10f != %.10f", d.state[0], exp)
	}
	for i, iter := range d.iters {
		if iter != uint64(i) {
			t.Fatalf("SetState called out of order: %v", d.iters)
		}
	}
}

func TestRK4StopImmediately(t *testing.T) {
	d := &decay1D{k: 1, state: []float64{1}, stop: 0}
	iterNum, xi, _ := NewRK4(3, 1, d).Solve()
	if iterNum != 0 || xi != 3 || len(d.iters) != 0 {
		t.Fatalf("integrator stepped although Stop(0) is true: %d %f %v", iterNum, xi, d.iters)
	}
}

func TestNewRK4Panics(t *testing.T) {
	for _, step := range []float64{0, -1} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Fatalf("step size %f did not panic", step)
				}
			}()
			NewRK4(0, step, &decay1D{})
		}()
	}
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("nil integrable did not panic")
		}
	}()
	NewRK4(0, 1, nil)
}

func TestStepStages(t *testing.T) {
	var times []float64
	f := func(t float64, s []float64) []float64 {
		times = append(times, t)
		return []float64{1, 2}
	}
	s := []float64{3, 4}
	next := Step(f, 10, 2, s)
	if !floats.Equal(times, []float64{10, 11, 11, 12}) {
		t.Fatalf("unexpected stage times: %v", times)
	}
	if !floats.Equal(s, []float64{3, 4}) {
		t.Fatalf("Step modified its input: %v", s)
	}
	if !floats.EqualApprox(next, []float64{5, 8}, 1e-12) {
		t.Fatalf("constant derivative should be integrated exactly: %v", next)
	}
}

func TestStepCoupledOscillator(t *testing.T) {
	// x'' = -x as [x, v]: the position stages must use the intermediate velocities.
	f := func(t float64, s []float64) []float64 {
		return []float64{s[1], -s[0]}
	}
	errAt := func(h float64) float64 {
		next := Step(f, 0, h, []float64{1, 0})
		return math.Hypot(next[0]-math.Cos(h), next[1]+math.Sin(h))
	}
	e1, e2 := errAt(0.2), errAt(0.1)
	if e1 == 0 || e2 == 0 {
		t.Fatal("single step should not be exact")
	}
	// Local truncation error is O(h^5).
	if ratio := e1 / e2; ratio < 24 || ratio > 40 {
		t.Fatalf("halving the step changed the error by %.2f, expected ~32", ratio)
	}
}

func TestStepPolynomial(t *testing.T) {
	// RK4 is exact for quartic solutions of y' = 4t^3.
	f := func(t float64, s []float64) []float64 {
		return []float64{4 * t * t * t}
	}
	next := Step(f, 1, 0.5, []float64{1})
	if !scalar.EqualWithinAbs(next[0], math.Pow(1.5, 4), 1e-12) {
		t.Fatalf("got %f instead of %f", next[0], math.Pow(1.5, 4))
	}
}
