package integrator

const (
	half     = 1 / 2.0
	oneSixth = 1 / 6.0
	oneThird = 1 / 3.0
)

// RK4 defines a fixed step classical Runge-Kutta integrator.
type RK4 struct {
	X0         float64    // The initial x0.
	StepSize   float64    // The step size.
	Integrator Integrable // What is to be integrated.
}

// NewRK4 returns a new RK4 integrator instance.
func NewRK4(x0 float64, stepSize float64, inte Integrable) (r *RK4) {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if inte == nil {
		panic("config Integrator may not be nil")
	}
	r = &RK4{X0: x0, StepSize: stepSize, Integrator: inte}
	return
}

// Solve solves the configured RK4.
// Returns the number of iterations performed and the last X_i, or an error.
func (r *RK4) Solve() (uint64, float64, error) {
	iterNum := uint64(0)
	xi := r.X0
	for !r.Integrator.Stop(iterNum) {
		r.Integrator.SetState(iterNum, Step(r.Integrator.Func, xi, r.StepSize, r.Integrator.GetState()))
		iterNum++ // Don't forget to increment the number of iterations.
		// Multiply instead of accumulating to avoid drift over long runs.
		xi = r.X0 + float64(iterNum)*r.StepSize
	}
	return iterNum, xi, nil
}

// Step performs a single RK4 step of size h from state s at time t and returns the new state.
// The whole vector is advanced at once, so coupled components (e.g. position and velocity)
// feed each other's intermediate stages. The provided state is left untouched.
func Step(f Func, t, h float64, s []float64) []float64 {
	n := len(s)
	k1 := make([]float64, n)
	//k2, k3, k4 are used as buffers AND result variables.
	k2 := make([]float64, n)
	k3 := make([]float64, n)
	k4 := make([]float64, n)
	tState := make([]float64, n)
	newState := make([]float64, n)

	// Compute the k's.
	for i, y := range f(t, s) {
		k1[i] = y * h
		tState[i] = s[i] + k1[i]*half
	}
	for i, y := range f(t+h*half, tState) {
		k2[i] = y * h
		tState[i] = s[i] + k2[i]*half
	}
	for i, y := range f(t+h*half, tState) {
		k3[i] = y * h
		tState[i] = s[i] + k3[i]
	}
	for i, y := range f(t+h, tState) {
		k4[i] = y * h
		newState[i] = s[i] + oneSixth*(k1[i]+k4[i]) + oneThird*(k2[i]+k3[i])
	}
	return newState
}
