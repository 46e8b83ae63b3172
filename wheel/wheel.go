// Package wheel implements an animated prize wheel: weighted segment
// geometry, an edge-triggered spin state machine, and frame timing for
// the eased settle animation. Drawing lives in package render; the
// wheel only owns state.
package wheel

import (
	"image"
	"log"
	"math/rand"
	"sync"
	"time"

	"prizewheel/assets"
	"prizewheel/render"
)

// Phase is the spin lifecycle state. Exactly one phase holds at a time;
// "spinning" and "stopped" can never both be true.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpinning
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSpinning:
		return "Spinning"
	case PhaseSettled:
		return "Settled"
	}
	return "Unknown"
}

type eventKind int

const (
	evImage eventKind = iota
	evPointer
	evFonts
)

// assetEvent is posted by image/font loaders and drained by the
// wheel's event loop. Per-index records keep loader goroutines from
// sharing any mutable state with each other.
type assetEvent struct {
	kind  eventKind
	index int
	seq   uint64
	img   image.Image
}

// Deps are the wheel's collaborators. Images and Fonts may be nil when
// the segments reference no images or custom fonts.
type Deps struct {
	Images *assets.ImageLoader
	Fonts  *assets.FontRegistry

	// Rand drives slot choice and landing jitter. nil seeds one from
	// the clock; tests inject a fixed seed.
	Rand *rand.Rand

	// OnStop is invoked exactly once per completed spin, with no
	// payload. The host already knows which prize it requested.
	OnStop func()

	// Redraw is invoked whenever something visual changed outside a
	// spin: an image finished loading, fonts became active, or the
	// wheel became visible.
	Redraw func()
}

// Wheel owns all widget state. All mutation happens under mu; loader
// goroutines only post events.
type Wheel struct {
	mu   sync.Mutex
	opts Options

	segments []segmentState
	slotMap  [][]int
	total    int

	phase       Phase
	prevToken   bool
	startAngle  float64
	targetAngle float64
	spinSeq     uint64
	ease        easing

	imagesWanted   int
	imagesLoaded   int
	loadSeq        uint64
	fontsActive    bool
	shown          bool
	pointerImg     image.Image
	pointerPending bool

	rng    *rand.Rand
	images *assets.ImageLoader
	fonts  *assets.FontRegistry
	onStop func()
	redraw func()

	events chan assetEvent
	done   chan struct{}
}

// New builds a wheel from options, normalizes the segments, begins
// loading any referenced images and fonts, and pre-rotates to the
// starting segment. Close must be called when the wheel is discarded.
func New(opts Options, deps Deps) *Wheel {
	w := &Wheel{
		opts:   opts.withDefaults(),
		rng:    deps.Rand,
		images: deps.Images,
		fonts:  deps.Fonts,
		onStop: deps.OnStop,
		redraw: deps.Redraw,
		events: make(chan assetEvent, 16),
		done:   make(chan struct{}),
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w.mu.Lock()
	w.normalizeLocked(w.opts.Segments)
	if w.total > 0 {
		if slot, ok := SlotForPrize(w.slotMap, w.opts.StartingSegment, nil); ok {
			w.startAngle = RotationForSlot(slot, w.total, nil)
		}
	}
	w.mu.Unlock()

	go w.run()
	return w
}

// Close stops the asset event loop. Loader callbacks arriving after
// Close are dropped.
func (w *Wheel) Close() {
	close(w.done)
}

func (w *Wheel) run() {
	for {
		select {
		case ev := <-w.events:
			w.apply(ev)
		case <-w.done:
			return
		}
	}
}

func (w *Wheel) post(ev assetEvent) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}

func (w *Wheel) apply(ev assetEvent) {
	w.mu.Lock()
	switch ev.kind {
	case evImage:
		if ev.index >= 0 && ev.index < len(w.segments) {
			s := &w.segments[ev.index]
			// Only the segment's current pending load counts. A load
			// superseded by SetSegments already gave its slot back in
			// normalizeLocked; its late completion is dropped here.
			if s.imagePending && s.loadSeq == ev.seq {
				s.imageLoaded = true
				s.imagePending = false
				if s.image != nil {
					s.image.Handle = ev.img
				}
				w.imagesLoaded++
			}
		}
	case evPointer:
		w.pointerImg = ev.img
		w.imagesLoaded++
	case evFonts:
		w.fontsActive = true
	}
	w.updateShownLocked()
	redraw := w.redraw
	w.mu.Unlock()

	if redraw != nil {
		redraw()
	}
}

// SetSegments replaces the segment set and reruns normalization.
// Spin state is untouched; a spin already in flight settles on the
// angle it computed from the old data.
func (w *Wheel) SetSegments(segments []Segment) {
	w.mu.Lock()
	w.opts.Segments = segments
	w.normalizeLocked(segments)
	w.mu.Unlock()
}

// SetPalettes replaces the fallback color palettes and reruns
// normalization. Empty slices keep the current palettes.
func (w *Wheel) SetPalettes(background, text []string) {
	w.mu.Lock()
	if len(background) > 0 {
		w.opts.BackgroundColors = background
	}
	if len(text) > 0 {
		w.opts.TextColors = text
	}
	w.normalizeLocked(w.opts.Segments)
	w.mu.Unlock()
}

// normalizeLocked resolves every segment's style through the fallback
// chain, rebuilds the slot map, and schedules loads for images and
// fonts not yet ready. Must be called with mu held.
func (w *Wheel) normalizeLocked(segments []Segment) {
	old := w.segments
	w.segments = make([]segmentState, len(segments))

	families := map[string]bool{}
	if w.opts.FontFamily != "" {
		families[w.opts.FontFamily] = true
	}

	for i, seg := range segments {
		s := segmentState{
			label:      seg.Label,
			weight:     seg.Weight,
			background: seg.Style.BackgroundColor,
			textColor:  seg.Style.TextColor,
			fontFamily: seg.Style.FontFamily,
			fontSize:   seg.Style.FontSize,
			fontWeight: seg.Style.FontWeight,
			fontStyle:  seg.Style.FontStyle,
			image:      seg.Image,
		}
		if s.weight < 1 {
			s.weight = 1
		}
		if s.background == "" {
			s.background = w.opts.BackgroundColors[i%len(w.opts.BackgroundColors)]
		}
		if s.textColor == "" {
			s.textColor = w.opts.TextColors[i%len(w.opts.TextColors)]
		}
		if s.fontFamily == "" {
			s.fontFamily = w.opts.FontFamily
		} else {
			families[s.fontFamily] = true
		}
		if s.fontSize <= 0 {
			s.fontSize = w.opts.FontSize
		}
		if s.fontWeight == "" {
			s.fontWeight = w.opts.FontWeight
		}
		if s.fontStyle == "" {
			s.fontStyle = w.opts.FontStyle
		}

		// Carry load state across renormalization of the same set.
		if i < len(old) && old[i].image == seg.Image && seg.Image != nil {
			s.imageLoaded = old[i].imageLoaded
			s.imagePending = old[i].imagePending
			s.loadSeq = old[i].loadSeq
		}
		if seg.Image != nil && seg.Image.Handle != nil {
			s.imageLoaded = true
		}
		w.segments[i] = s
	}

	// Loads still in flight for images that did not carry over are
	// superseded. Give their slots back so the counters can converge;
	// their completions arrive with a stale sequence and are dropped.
	for i := range old {
		if !old[i].imagePending {
			continue
		}
		if i < len(w.segments) && w.segments[i].image == old[i].image {
			continue
		}
		w.imagesWanted--
	}

	w.slotMap = BuildSlotMap(segments)
	w.total = 0
	if t, err := TotalSlots(w.slotMap); err == nil {
		w.total = t
	}

	// Kick off image loads for anything new.
	for i := range w.segments {
		s := &w.segments[i]
		if s.image == nil || s.imageLoaded || s.imagePending {
			continue
		}
		s.imagePending = true
		w.loadSeq++
		s.loadSeq = w.loadSeq
		w.imagesWanted++
		w.loadImage(i, s.loadSeq, s.image.URI, evImage)
	}
	if w.opts.PointerImage != "" && w.pointerImg == nil && !w.pointerPending {
		w.pointerPending = true
		w.imagesWanted++
		w.loadImage(0, 0, w.opts.PointerImage, evPointer)
	}

	if len(families) == 0 {
		w.fontsActive = true
	} else if !w.fontsActive {
		w.activateFonts(families)
	}
	w.updateShownLocked()
}

func (w *Wheel) loadImage(index int, seq uint64, uri string, kind eventKind) {
	if w.images == nil {
		// No loader configured; resolve immediately so visibility
		// cannot wedge on a missing collaborator.
		go w.post(assetEvent{kind: kind, index: index, seq: seq})
		return
	}
	w.images.Load(uri, func(img image.Image, err error) {
		if err != nil {
			log.Printf("Wheel: image %s: %v", uri, err)
		}
		w.post(assetEvent{kind: kind, index: index, seq: seq, img: img})
	})
}

func (w *Wheel) activateFonts(families map[string]bool) {
	if w.fonts == nil {
		w.fontsActive = true
		return
	}
	list := make([]string, 0, len(families))
	for f := range families {
		list = append(list, f)
	}
	w.fonts.Activate(list, func(err error) {
		if err != nil {
			log.Printf("Wheel: font activation: %v", err)
		}
		// Proceed as ready either way rather than hang hidden forever.
		w.post(assetEvent{kind: evFonts})
	})
}

// HandleTrigger feeds the host's spin trigger token. A spin starts only
// on a false→true edge while no spin is in progress; re-supplying the
// same token is a no-op. Reports whether a spin was started.
func (w *Wheel) HandleTrigger(token bool, prize int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	rising := token && !w.prevToken
	w.prevToken = token
	if !rising {
		return false
	}
	return w.startSpinLocked(prize)
}

// Spin starts a spin toward the given prize index, as a single
// synthetic trigger edge. Reports whether the spin was accepted.
func (w *Wheel) Spin(prize int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.startSpinLocked(prize)
}

func (w *Wheel) startSpinLocked(prize int) bool {
	if w.phase == PhaseSpinning {
		return false
	}
	total, err := TotalSlots(w.slotMap)
	if err != nil {
		// Bad weights; treated as "not ready", never an error to the host.
		log.Printf("Wheel: spin skipped: %v", err)
		return false
	}
	slot, ok := SlotForPrize(w.slotMap, prize, w.rng)
	if !ok {
		log.Printf("Wheel: spin skipped: prize index %d out of range", prize)
		return false
	}

	w.targetAngle = RotationForSlot(slot, total, w.rng)
	w.phase = PhaseSpinning
	w.spinSeq++
	seq := w.spinSeq

	accel, cruise, decel := w.opts.SpinTimes()
	w.ease = newEasing(accel, cruise, decel)

	time.AfterFunc(accel+cruise+decel, func() {
		w.completeSpin(seq)
	})
	return true
}

// completeSpin is the armed timer callback. A stale sequence number
// means a newer spin replaced this one and the fire is ignored.
func (w *Wheel) completeSpin(seq uint64) {
	w.mu.Lock()
	if seq != w.spinSeq || w.phase != PhaseSpinning {
		w.mu.Unlock()
		return
	}
	w.phase = PhaseSettled
	// Fold the target back so the next spin starts from the settled
	// position with no jump.
	w.startAngle = w.targetAngle
	cb := w.onStop
	w.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Phase returns the current spin lifecycle state.
func (w *Wheel) Phase() Phase {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.phase
}

// Angles returns the resting angle and the in-flight target angle, in
// degrees. Outside a spin both are the resting angle.
func (w *Wheel) Angles() (start, target float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseSpinning {
		return w.startAngle, w.startAngle
	}
	return w.startAngle, w.targetAngle
}

// AngleAt returns the wheel rotation at the given elapsed time since
// the current spin began. Outside a spin it is the resting angle.
func (w *Wheel) AngleAt(elapsed time.Duration) float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.phase != PhaseSpinning {
		return w.startAngle
	}
	p := w.ease.progress(elapsed)
	return w.startAngle + (w.targetAngle-w.startAngle)*p
}

// SpinTotal returns the total animation time of a spin under the
// current options.
func (w *Wheel) SpinTotal() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	accel, cruise, decel := w.opts.SpinTimes()
	return accel + cruise + decel
}

// Visible reports whether the wheel may be shown: every image loaded
// and custom fonts active. Until then the wheel is painted suppressed
// (blank frames) rather than omitted. Suppression applies only to the
// first mount; once shown, later asset churn never hides the wheel
// again.
func (w *Wheel) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shown
}

func (w *Wheel) updateShownLocked() {
	if w.imagesLoaded >= w.imagesWanted && w.fontsActive {
		w.shown = true
	}
}

// Options returns the resolved options the wheel was built with.
func (w *Wheel) Options() Options {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opts
}

// Snapshot assembles an immutable drawing snapshot at the given
// rotation. The renderer owns no state; everything it needs is here.
func (w *Wheel) Snapshot(rotation float64) render.Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	segs := make([]render.Segment, len(w.segments))
	for i, s := range w.segments {
		rs := render.Segment{
			Label:      s.label,
			Slots:      s.weight,
			Background: s.background,
			TextColor:  s.textColor,
		}
		if w.fonts != nil {
			rs.Face = w.fonts.Face(assets.FaceName(s.fontFamily, s.fontWeight, s.fontStyle), s.fontSize)
		}
		if s.image != nil && s.image.Handle != nil {
			rs.Image = s.image.Handle
			rs.ImageOffsetX = s.image.OffsetX
			rs.ImageOffsetY = s.image.OffsetY
			rs.ImageScale = s.image.SizeMultiplier
			rs.Landscape = s.image.Landscape
		}
		segs[i] = rs
	}

	return render.Snapshot{
		Segments:   segs,
		TotalSlots: w.total,
		Rotation:   rotation,
		Visible:    w.shown,
		Pointer:    w.pointerImg,
		Style: render.Style{
			OuterBorderColor:  w.opts.OuterBorderColor,
			OuterBorderWidth:  w.opts.OuterBorderWidth,
			InnerRadius:       w.opts.InnerRadius,
			InnerBorderColor:  w.opts.InnerBorderColor,
			InnerBorderWidth:  w.opts.InnerBorderWidth,
			RadiusLineColor:   w.opts.RadiusLineColor,
			RadiusLineWidth:   w.opts.RadiusLineWidth,
			TextDistance:      w.opts.TextDistance,
			PerpendicularText: w.opts.PerpendicularText,
			PointerScale:      w.opts.PointerScale,
			PointerOffsetX:    w.opts.PointerOffsetX,
			PointerOffsetY:    w.opts.PointerOffsetY,
		},
	}
}
