package deorbit

// RetroThruster is a braking motor which always thrusts against the current velocity
// and only fires during the first Duration seconds of the simulation.
type RetroThruster struct {
	Deceleration float64 // in m/s^2
	Duration     float64 // in seconds, from t=0
}

// Firing returns whether the thruster is active at time t for the provided speed.
// The thruster is off at (near) zero speed since the thrust direction is undefined.
func (th RetroThruster) Firing(t, speed float64) bool {
	return th.Deceleration != 0 && t < th.Duration && speed > speedε
}

// Accel returns the acceleration provided by the thruster at time t for the velocity (vx, vy).
func (th RetroThruster) Accel(t, vx, vy float64) (ax, ay float64) {
	v := norm2(vx, vy)
	if !th.Firing(t, v) {
		return 0, 0
	}
	return -th.Deceleration * vx / v, -th.Deceleration * vy / v
}
