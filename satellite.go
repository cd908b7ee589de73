package deorbit

// Satellite defines the vehicle being propagated.
type Satellite struct {
	Name            string
	DragCoefficient float64 // Drag deceleration is DragCoefficient*ρ*v² (in 1/m per kg/m^3).
	Deceleration    float64 // Braking thrust deceleration in m/s^2.
}

// NewSatellite returns a satellite with the default drag and braking characteristics.
func NewSatellite(name string) Satellite {
	sat := DefaultSatellite
	sat.Name = name
	return sat
}

// DefaultSatellite carries the reference drag coefficient and rocket motor deceleration.
var DefaultSatellite = Satellite{Name: "sat", DragCoefficient: 8e-4, Deceleration: 5.0}
