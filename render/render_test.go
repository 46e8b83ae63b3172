package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/fogleman/gg"
)

const testSize = 240

func testStyle() Style {
	return Style{
		OuterBorderColor: "#202225",
		OuterBorderWidth: 4,
		InnerRadius:      0.2,
		InnerBorderColor: "#202225",
		InnerBorderWidth: 2,
		RadiusLineColor:  "#202225",
		RadiusLineWidth:  2,
		TextDistance:     0.6,
	}
}

func fourColorSnapshot(rotation float64) Snapshot {
	colors := []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00"}
	segs := make([]Segment, 4)
	for i := range segs {
		segs[i] = Segment{Slots: 1, Background: colors[i], TextColor: "#000000"}
	}
	return Snapshot{
		Segments:   segs,
		TotalSlots: 4,
		Rotation:   rotation,
		Visible:    true,
		Style:      testStyle(),
	}
}

// sampleAt reads the pixel at polar position (angle degrees from the
// top, fraction of the outer radius) on a rendered frame.
func sampleAt(img *image.RGBA, angleDeg, radiusFrac float64) color.RGBA {
	cx, cy := float64(testSize)/2, float64(testSize)/2
	outer := float64(testSize)/2 - pointerSize
	rad := gg.Radians(angleDeg - 90)
	x := int(cx + math.Cos(rad)*radiusFrac*outer)
	y := int(cy + math.Sin(rad)*radiusFrac*outer)
	return img.RGBAAt(x, y)
}

func renderSnapshot(t *testing.T, snap Snapshot) *image.RGBA {
	t.Helper()
	dc := gg.NewContext(testSize, testSize)
	Draw(dc, snap)
	img, ok := dc.Image().(*image.RGBA)
	if !ok {
		t.Fatal("context image is not RGBA")
	}
	return img
}

func TestDrawWedgeColors(t *testing.T) {
	img := renderSnapshot(t, fourColorSnapshot(0))

	// With zero rotation, slot i spans [i*90°, (i+1)*90°) clockwise
	// from the pointer. Sample each wedge at its mid-angle.
	wants := []color.RGBA{
		{R: 255},
		{G: 255},
		{B: 255},
		{R: 255, G: 255},
	}
	for i, want := range wants {
		got := sampleAt(img, float64(i)*90+45, 0.6)
		if got.R != want.R || got.G != want.G || got.B != want.B {
			t.Errorf("wedge %d: got %v, want %v", i, got, want)
		}
	}
}

func TestRotationBringsSlotUnderPointer(t *testing.T) {
	// Rotating to slot 2's centered angle (2*90+45) must place its
	// wedge under the fixed pointer at 12 o'clock.
	img := renderSnapshot(t, fourColorSnapshot(225))

	got := sampleAt(img, 0, 0.7)
	if got.B != 255 || got.R != 0 {
		t.Errorf("pixel under pointer %v, want blue wedge", got)
	}
}

func TestWeightedWedgeSpansItsSlots(t *testing.T) {
	snap := Snapshot{
		Segments: []Segment{
			{Slots: 1, Background: "#ff0000", TextColor: "#000000"},
			{Slots: 3, Background: "#00ff00", TextColor: "#000000"},
		},
		TotalSlots: 4,
		Visible:    true,
		Style:      testStyle(),
	}
	img := renderSnapshot(t, snap)

	if got := sampleAt(img, 45, 0.6); got.R != 255 || got.G != 0 {
		t.Errorf("slot 0: %v, want red", got)
	}
	// Slots 1..3 all belong to the weight-3 segment.
	for _, mid := range []float64{135, 225, 315} {
		if got := sampleAt(img, mid, 0.6); got.G != 255 || got.R != 0 {
			t.Errorf("slot mid-angle %v: %v, want green", mid, got)
		}
	}
}

func TestHiddenSnapshotIsBlank(t *testing.T) {
	snap := fourColorSnapshot(0)
	snap.Visible = false
	img := renderSnapshot(t, snap)

	for _, frac := range []float64{0, 0.5, 0.9} {
		if got := sampleAt(img, 45, frac); got.A != 0 {
			t.Errorf("hidden wheel drew pixel %v at radius %v", got, frac)
		}
	}
}

func TestSegmentImageDrawn(t *testing.T) {
	magenta := image.NewRGBA(image.Rect(0, 0, 12, 12))
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			magenta.SetRGBA(x, y, color.RGBA{R: 255, B: 255, A: 255})
		}
	}

	snap := fourColorSnapshot(0)
	snap.Segments[0].Image = magenta
	img := renderSnapshot(t, snap)

	// The image anchors at imageDistance of the outer radius along the
	// wedge mid-angle; its center pixel survives rotation and scaling.
	got := sampleAt(img, 45, imageDistance)
	if got.R < 200 || got.B < 200 || got.G > 60 {
		t.Errorf("image anchor pixel %v, want magenta", got)
	}
}

func TestLabelsDrawWithDefaultFace(t *testing.T) {
	snap := fourColorSnapshot(0)
	for i := range snap.Segments {
		snap.Segments[i].Label = "prize"
	}
	// No Face set: the context's built-in face must be used, and both
	// orientations must render without panicking.
	renderSnapshot(t, snap)
	snap.Style.PerpendicularText = true
	renderSnapshot(t, snap)
}

func TestPointerDrawnAboveWheel(t *testing.T) {
	img := renderSnapshot(t, fourColorSnapshot(0))

	// The built-in arrow sits in the reserved band above the wheel.
	got := img.RGBAAt(testSize/2, 6)
	if got.A == 0 {
		t.Error("no pointer pixels in the reserved band")
	}
}

func TestPointerStyleOffsetAndScale(t *testing.T) {
	snap := fourColorSnapshot(0)
	snap.Style.PointerOffsetX = 40
	img := renderSnapshot(t, snap)

	if got := img.RGBAAt(testSize/2+40, 6); got.A == 0 {
		t.Error("no pointer pixels at the offset position")
	}
	if got := img.RGBAAt(testSize/2, 6); got.A != 0 {
		t.Errorf("pointer pixels remain at the default position: %v", got)
	}

	// A scaled-down arrow stays inside a smaller footprint.
	snap = fourColorSnapshot(0)
	snap.Style.PointerScale = 0.25
	img = renderSnapshot(t, snap)
	if got := img.RGBAAt(testSize/2, 4); got.A == 0 {
		t.Error("no pointer pixels for the scaled arrow")
	}
	if got := img.RGBAAt(testSize/2+12, 4); got.A != 0 {
		t.Errorf("scaled arrow wider than expected: %v", got)
	}
}
