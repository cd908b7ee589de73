package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	altitudeGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "deorbit_altitude_meters",
			Help: "Altitude above the surface at the last exported step.",
		},
		[]string{"satellite"},
	)
	speedGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "deorbit_speed_mps",
			Help: "Speed at the last exported step.",
		},
		[]string{"satellite"},
	)
	angleGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "deorbit_polar_angle",
			Help: "Normalized polar angle in [0, 1) at the last exported step.",
		},
		[]string{"satellite"},
	)
	airDensityGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "deorbit_air_density_kg_per_m3",
			Help: "Air density at the last exported step.",
		},
		[]string{"satellite"},
	)
	stepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deorbit_steps_total",
			Help: "Total number of integration steps.",
		},
		[]string{"satellite"},
	)
	outcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deorbit_outcomes_total",
			Help: "Number of finished simulations by outcome.",
		},
		[]string{"satellite", "status"},
	)
)

func init() {
	prometheus.MustRegister(altitudeGauge, speedGauge, angleGauge, airDensityGauge, stepsTotal, outcomesTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveState records the state of an exported step.
func ObserveState(satellite string, altitude, speed, angle, airDensity float64) {
	altitudeGauge.WithLabelValues(satellite).Set(altitude)
	speedGauge.WithLabelValues(satellite).Set(speed)
	angleGauge.WithLabelValues(satellite).Set(angle)
	airDensityGauge.WithLabelValues(satellite).Set(airDensity)
}

// AddSteps records integration steps.
func AddSteps(satellite string, n uint64) {
	stepsTotal.WithLabelValues(satellite).Add(float64(n))
}

// RecordOutcome records the terminal status of a simulation.
func RecordOutcome(satellite, status string) {
	outcomesTotal.WithLabelValues(satellite, status).Inc()
}
