package wheel

import (
	"sync"
	"time"

	"github.com/fogleman/gg"

	"prizewheel/output"
	"prizewheel/render"
)

// Animator samples eased wheel rotations at the configured frame rate
// and paints each frame into an output sink. One playback at a time;
// overlapping requests are dropped, mirroring the wheel's own re-entry
// guard.
type Animator struct {
	mu      sync.Mutex
	playing bool

	w    *Wheel
	sink output.Sink
}

func NewAnimator(w *Wheel, sink output.Sink) *Animator {
	return &Animator{w: w, sink: sink}
}

// Still renders a single frame at the current resting angle.
func (a *Animator) Still() error {
	start, _ := a.w.Angles()
	return a.frame(start, 0)
}

// PlayInitial renders the first-mount settle: an animation from zero to
// the starting segment's angle, or a single pre-rotated frame when the
// initial animation is disabled.
func (a *Animator) PlayInitial() error {
	opts := a.w.Options()
	start, _ := a.w.Angles()
	if opts.DisableInitialAnimation || start == 0 {
		return a.Still()
	}
	_, _, decel := opts.SpinTimes()
	return a.play(0, start, newEasing(0, 0, decel))
}

// PlaySpin renders the spin most recently accepted by the wheel, from
// the resting angle to the computed target. Call it right after Spin or
// HandleTrigger reports true.
func (a *Animator) PlaySpin() error {
	opts := a.w.Options()
	accel, cruise, decel := opts.SpinTimes()
	start, target := a.w.Angles()
	return a.play(start, target, newEasing(accel, cruise, decel))
}

func (a *Animator) play(start, target float64, e easing) error {
	a.mu.Lock()
	if a.playing {
		a.mu.Unlock()
		return nil
	}
	a.playing = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.playing = false
		a.mu.Unlock()
	}()

	opts := a.w.Options()
	frameDur := time.Second / time.Duration(opts.FPS)
	for t := time.Duration(0); t < e.total; t += frameDur {
		angle := start + (target-start)*e.progress(t)
		if err := a.frame(angle, frameDur); err != nil {
			return err
		}
	}
	// Final frame rests exactly on the target.
	return a.frame(target, frameDur)
}

func (a *Animator) frame(rotation float64, delay time.Duration) error {
	opts := a.w.Options()
	snap := a.w.Snapshot(rotation)
	dc := gg.NewContext(opts.Size, opts.Size)
	render.Draw(dc, snap)
	return a.sink.Frame(dc.Image(), delay)
}
