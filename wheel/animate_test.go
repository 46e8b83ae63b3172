package wheel

import (
	"image"
	"testing"
	"time"
)

// countingSink records delivered frames.
type countingSink struct {
	frames int
	bounds image.Rectangle
}

func (s *countingSink) Frame(img image.Image, delay time.Duration) error {
	s.frames++
	s.bounds = img.Bounds()
	return nil
}

func (s *countingSink) Close() error { return nil }

func TestAnimatorStill(t *testing.T) {
	w := newTestWheel(t, Options{Segments: testSegments(), Size: 120}, nil)
	sink := &countingSink{}
	a := NewAnimator(w, sink)

	if err := a.Still(); err != nil {
		t.Fatal(err)
	}
	if sink.frames != 1 {
		t.Errorf("%d frames, want 1", sink.frames)
	}
	if sink.bounds.Dx() != 120 || sink.bounds.Dy() != 120 {
		t.Errorf("frame bounds %v, want 120x120", sink.bounds)
	}
}

func TestAnimatorPlaySpinFrameCount(t *testing.T) {
	w := newTestWheel(t, Options{Segments: testSegments(), Size: 80, FPS: 30}, nil)
	sink := &countingSink{}
	a := NewAnimator(w, sink)

	if !w.Spin(1) {
		t.Fatal("spin rejected")
	}
	if err := a.PlaySpin(); err != nil {
		t.Fatal(err)
	}

	// total/frame sampled frames plus the final resting frame.
	total := w.SpinTotal()
	frame := time.Second / 30
	want := int(total/frame) + 1
	if sink.frames < want || sink.frames > want+1 {
		t.Errorf("%d frames for %v at 30fps, want about %d", sink.frames, total, want)
	}
}

func TestAnimatorInitialDisabled(t *testing.T) {
	w := newTestWheel(t, Options{
		Segments:                testSegments(),
		Size:                    80,
		StartingSegment:         1,
		DisableInitialAnimation: true,
	}, nil)
	sink := &countingSink{}
	a := NewAnimator(w, sink)

	if err := a.PlayInitial(); err != nil {
		t.Fatal(err)
	}
	if sink.frames != 1 {
		t.Errorf("%d frames with initial animation disabled, want 1", sink.frames)
	}
}

func TestAnimatorInitialSettle(t *testing.T) {
	w := newTestWheel(t, Options{Segments: testSegments(), Size: 80, StartingSegment: 2, FPS: 30}, nil)
	sink := &countingSink{}
	a := NewAnimator(w, sink)

	if err := a.PlayInitial(); err != nil {
		t.Fatal(err)
	}
	if sink.frames < 2 {
		t.Errorf("%d frames for the initial settle, want an animation", sink.frames)
	}
}
