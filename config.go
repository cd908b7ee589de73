package deorbit

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned (wrapped) for any invalid simulation configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// SimulationConfig is the configuration of one simulation run, in SI units.
type SimulationConfig struct {
	InitialAltitude float64 // Altitude above the surface at t=0, in meters.
	ThrustDuration  float64 // Braking thrust is available from t=0 for this many seconds.
	TimeStep        float64 // Fixed integration step, in seconds.
	OutputStride    uint64  // Every Nth step is exported.
	MaxTime         float64 // Maximum simulated duration, in seconds.
}

// NewSimulationConfig returns a configuration from the user units: the altitude in km,
// the thrust duration and time step in seconds, and the maximum duration in hours.
func NewSimulationConfig(altitudeKm, thrustDuration, timeStep float64, stride uint64, maxHours float64) SimulationConfig {
	return SimulationConfig{
		InitialAltitude: altitudeKm * 1e3,
		ThrustDuration:  thrustDuration,
		TimeStep:        timeStep,
		OutputStride:    stride,
		MaxTime:         maxHours * 3600,
	}
}

// Validate returns an error wrapping ErrInvalidConfig if the configuration cannot be simulated.
func (c SimulationConfig) Validate() error {
	for _, f := range []struct {
		name string
		val  float64
	}{{"altitude", c.InitialAltitude}, {"thrust duration", c.ThrustDuration}, {"time step", c.TimeStep}, {"max time", c.MaxTime}} {
		if math.IsNaN(f.val) || math.IsInf(f.val, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("%w: time step must be positive (got %f)", ErrInvalidConfig, c.TimeStep)
	}
	if c.MaxTime <= 0 {
		return fmt.Errorf("%w: max time must be positive (got %f)", ErrInvalidConfig, c.MaxTime)
	}
	if c.OutputStride == 0 {
		return fmt.Errorf("%w: output stride must be positive", ErrInvalidConfig)
	}
	if c.InitialAltitude < 0 {
		return fmt.Errorf("%w: altitude may not be negative (got %f)", ErrInvalidConfig, c.InitialAltitude)
	}
	if c.ThrustDuration < 0 {
		return fmt.Errorf("%w: thrust duration may not be negative (got %f)", ErrInvalidConfig, c.ThrustDuration)
	}
	return nil
}

// Steps returns the step budget, floor(MaxTime/TimeStep). At most Steps()+1 integration steps are performed.
func (c SimulationConfig) Steps() uint64 {
	return uint64(math.Floor(c.MaxTime / c.TimeStep))
}

// Scenario is everything needed to run a simulation from a scenario file.
type Scenario struct {
	Simulation SimulationConfig
	Satellite  Satellite
	Export     ExportConfig
	Epoch      time.Time // Zero if not set.
}

// ReadScenario reads the provided TOML scenario file.
func ReadScenario(path string) (Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("simulation.thrust", 0.0)
	v.SetDefault("simulation.step", 1.0)
	v.SetDefault("simulation.stride", 1)
	v.SetDefault("satellite.name", DefaultSatellite.Name)
	v.SetDefault("export.filename", DefaultSatellite.Name)
	v.SetDefault("export.dir", ".")
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	for _, key := range []string{"simulation.altitude", "simulation.duration"} {
		if !v.IsSet(key) {
			return Scenario{}, fmt.Errorf("%w: %s: missing `%s`", ErrInvalidConfig, path, key)
		}
	}
	stride, err := confReadStride(v, "simulation.stride")
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	sc := Scenario{
		Simulation: NewSimulationConfig(
			v.GetFloat64("simulation.altitude"),
			v.GetFloat64("simulation.thrust"),
			v.GetFloat64("simulation.step"),
			stride,
			v.GetFloat64("simulation.duration")),
		Satellite: NewSatellite(v.GetString("satellite.name")),
		Export: ExportConfig{
			Filename:  v.GetString("export.filename"),
			Dir:       v.GetString("export.dir"),
			Timestamp: v.GetBool("export.timestamp"),
		},
	}
	if v.IsSet("simulation.epoch") {
		if sc.Epoch, err = confReadJDEorTime(v, "simulation.epoch"); err != nil {
			return Scenario{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	return sc, sc.Simulation.Validate()
}

// confReadStride reads a strictly positive whole number. Fractional values are rejected
// instead of being truncated.
func confReadStride(v *viper.Viper, key string) (uint64, error) {
	f, err := cast.ToFloat64E(v.Get(key))
	if err != nil {
		return 0, fmt.Errorf("%w: `%s`: %s", ErrInvalidConfig, key, err)
	}
	if f <= 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, fmt.Errorf("%w: `%s` must be a positive integer (got %v)", ErrInvalidConfig, key, v.Get(key))
	}
	return uint64(f), nil
}

// confReadJDEorTime reads a date either as a Julian date or as a time.
func confReadJDEorTime(v *viper.Viper, key string) (time.Time, error) {
	raw := v.Get(key)
	if _, isBool := raw.(bool); !isBool {
		if jde, err := cast.ToFloat64E(raw); err == nil {
			if jde <= 0 || math.IsNaN(jde) || math.IsInf(jde, 0) {
				return time.Time{}, fmt.Errorf("%w: `%s` is not a valid Julian date (got %v)", ErrInvalidConfig, key, raw)
			}
			return julian.JDToTime(jde).UTC(), nil
		}
	}
	dt, err := cast.ToTimeE(raw)
	if err != nil || dt.IsZero() {
		return time.Time{}, fmt.Errorf("%w: `%s` is neither a Julian date nor a date (got %v)", ErrInvalidConfig, key, raw)
	}
	return dt.UTC(), nil
}
