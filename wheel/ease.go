package wheel

import "time"

// easing maps elapsed spin time to rotation progress in [0,1] using a
// trapezoidal velocity profile: speed ramps up linearly over the
// accelerate phase, holds through the cruise phase, and ramps down to
// zero over the decelerate phase. Progress is continuous and monotone
// with progress(0)=0 and progress(total)=1.
type easing struct {
	accel  time.Duration
	cruise time.Duration
	decel  time.Duration
	total  time.Duration
	peak   float64 // peak speed in progress units per second
}

func newEasing(accel, cruise, decel time.Duration) easing {
	a := accel.Seconds()
	c := cruise.Seconds()
	d := decel.Seconds()
	// Area under the velocity trapezoid must equal 1.
	peak := 1 / (a/2 + c + d/2)
	return easing{
		accel:  accel,
		cruise: cruise,
		decel:  decel,
		total:  accel + cruise + decel,
		peak:   peak,
	}
}

func (e easing) progress(t time.Duration) float64 {
	if t <= 0 {
		return 0
	}
	if t >= e.total {
		return 1
	}
	a := e.accel.Seconds()
	c := e.cruise.Seconds()
	ts := t.Seconds()

	switch {
	case t < e.accel:
		return e.peak * ts * ts / (2 * a)
	case t < e.accel+e.cruise:
		return e.peak * (a/2 + (ts - a))
	default:
		d := e.decel.Seconds()
		td := ts - a - c
		return e.peak * (a/2 + c + td - td*td/(2*d))
	}
}
