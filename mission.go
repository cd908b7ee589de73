package deorbit

import (
	"errors"
	"os"
	"time"

	"github.com/deorbit/deorbit/integrator"
	"github.com/deorbit/deorbit/metrics"
	kitlog "github.com/go-kit/kit/log"
	"github.com/soniakeys/meeus/v3/julian"
)

// Status is the state of a Mission.
type Status uint8

const (
	// Running is the status of a mission which has not terminated yet.
	Running Status = iota + 1
	// Crashed is the terminal status when the satellite reached the surface.
	Crashed
	// TimeExpired is the terminal status when the step budget was exhausted first.
	TimeExpired
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Crashed:
		return "crashed"
	case TimeExpired:
		return "did not crash"
	}
	return "unknown"
}

// Outcome summarizes a finished propagation.
type Outcome struct {
	Status  Status
	Steps   uint64    // Number of integration steps performed.
	Records uint64    // Number of exported observations.
	Elapsed float64   // Simulated time at termination, in seconds.
	Final   State     // Last state.
	EndDT   time.Time // Date at termination, zero if the mission has no epoch.
}

// Mission propagates a satellite until it crashes or the time budget is exhausted.
// The force model is read on every step, so changes to Forces before Propagate take effect.
// The simulation configuration is fixed by NewMission.
type Mission struct {
	Satellite Satellite
	Forces    Forces
	State     State     // Only changed by the integrator.
	Status    Status    // Running until Propagate terminates.
	Epoch     time.Time // Optional date of t=0.
	conf      SimulationConfig
	records   uint64
	exporter  Exporter
	logger    kitlog.Logger
	err       error
}

// NewMission returns a new Mission of the satellite about the origin, starting on a circular
// orbit at the configured altitude. The configuration is validated before anything else.
// A nil logger disables logging.
func NewMission(conf SimulationConfig, origin CelestialObject, sat Satellite, logger kitlog.Logger) (*Mission, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Mission{
		Satellite: sat,
		Forces:    NewForces(origin, sat, conf.ThrustDuration),
		State:     NewCircularState(origin, conf.InitialAltitude),
		Status:    Running,
		conf:      conf,
		logger:    kitlog.With(logger, "mission", sat.Name),
	}, nil
}

// Config returns the validated configuration of this mission.
func (m *Mission) Config() SimulationConfig {
	return m.conf
}

// NewLogger returns the default logfmt logger on stdout.
func NewLogger() kitlog.Logger {
	return kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
}

// LogStatus logs the current state of the propagation.
func (m *Mission) LogStatus() {
	r := m.State.RNorm()
	m.logger.Log("level", "info", "subsys", "astro", "alt(km)", (r-m.Forces.Origin.Radius)/1e3, "speed(m/s)", m.State.Speed(), "ξ", m.State.Energyξ(m.Forces.Origin.GM()), "h", m.State.Momentum())
}

// Propagate runs the simulation until termination and streams the observations to exp.
// exp is closed on every exit path. A nil exp discards the observations.
// Reaching the end of the time budget is not an error.
func (m *Mission) Propagate(exp Exporter) (out Outcome, err error) {
	if exp == nil {
		exp = nopExporter{}
	}
	defer func() {
		if cerr := exp.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	if m.Status != Running {
		return Outcome{}, errors.New("mission already propagated")
	}
	m.exporter = exp
	m.LogStatus()
	steps, _, _ := integrator.NewRK4(0, m.conf.TimeStep, m).Solve() // Blocking.
	metrics.AddSteps(m.Satellite.Name, steps)

	elapsed := m.time(steps)
	out = Outcome{Status: m.Status, Steps: steps, Records: m.records, Elapsed: elapsed, Final: m.State}
	if !m.Epoch.IsZero() {
		out.EndDT = m.Epoch.Add(time.Duration(elapsed * float64(time.Second)))
	}
	if m.err != nil {
		m.logger.Log("level", "critical", "subsys", "export", "err", m.err, "t(s)", elapsed)
		return out, m.err
	}
	metrics.RecordOutcome(m.Satellite.Name, m.Status.String())
	kv := []interface{}{"level", "notice", "subsys", "astro", "status", m.Status, "steps", steps, "t(s)", elapsed, "records", m.records}
	if !out.EndDT.IsZero() {
		kv = append(kv, "date", out.EndDT, "jde", julian.TimeToJD(out.EndDT))
	}
	m.logger.Log(kv...)
	if m.Status == TimeExpired {
		m.LogStatus()
	}
	return out, nil
}

func (m *Mission) time(i uint64) float64 {
	return float64(i) * m.conf.TimeStep
}

// Stop implements the stop call of the integrator: it checks for the time budget and for
// the impact, and exports the observation of iteration i before it is integrated.
func (m *Mission) Stop(i uint64) bool {
	if i > m.conf.Steps() {
		m.Status = TimeExpired
		return true
	}
	r, a := m.State.Polar()
	if r <= m.Forces.Origin.Radius {
		m.Status = Crashed
		m.logger.Log("level", "notice", "subsys", "astro", "collided", m.Forces.Origin.Name, "t(s)", m.time(i), "r", r, "radius", m.Forces.Origin.Radius)
		return true
	}
	if i%m.conf.OutputStride == 0 {
		obs := Observation{Time: m.time(i), Angle: a, Altitude: r - m.Forces.Origin.Radius, Speed: m.State.Speed()}
		if err := m.exporter.Export(obs); err != nil {
			m.err = err
			return true
		}
		m.records++
		metrics.ObserveState(m.Satellite.Name, obs.Altitude, obs.Speed, obs.Angle, m.Forces.Origin.AirDensity(r))
	}
	return false
}

// GetState implements the Integrable interface.
func (m *Mission) GetState() []float64 {
	return m.State.Vector()
}

// SetState implements the Integrable interface.
func (m *Mission) SetState(i uint64, s []float64) {
	m.State = StateFromVector(s)
}

// Func implements the Integrable interface.
func (m *Mission) Func(t float64, s []float64) []float64 {
	return m.Forces.Func(t, s)
}
