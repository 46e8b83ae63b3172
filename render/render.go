// Package render paints prize wheel frames onto a gg drawing context.
// It keeps no state between calls; every invocation clears the surface
// and redraws the whole wheel from the snapshot.
package render

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// Style is the wheel-wide presentation configuration for one draw.
type Style struct {
	OuterBorderColor string
	OuterBorderWidth float64

	// InnerRadius is the hub radius as a fraction of the outer radius.
	InnerRadius      float64
	InnerBorderColor string
	InnerBorderWidth float64

	RadiusLineColor string
	RadiusLineWidth float64

	// TextDistance is the label anchor distance from center as a
	// fraction of the outer radius.
	TextDistance      float64
	PerpendicularText bool

	// Pointer styling: size multiplier (zero means 1) and pixel offsets
	// from the default spot above 12 o'clock.
	PointerScale   float64
	PointerOffsetX float64
	PointerOffsetY float64
}

// Segment is one wedge, fully resolved: colors are hex strings, the
// font face is already built, and Image is nil until loaded.
type Segment struct {
	Label      string
	Slots      int // angular width in slots; the wedge spans Slots slot widths
	Background string
	TextColor  string
	Face       font.Face

	Image        image.Image
	ImageOffsetX float64
	ImageOffsetY float64
	ImageScale   float64
	Landscape    bool
}

// Snapshot is everything one draw call needs. Rotation is in degrees;
// positive rotation turns the wheel so higher angles pass under the
// fixed pointer at 12 o'clock.
type Snapshot struct {
	Segments   []Segment
	TotalSlots int
	Rotation   float64
	Visible    bool
	Pointer    image.Image
	Style      Style
}

const (
	// imageDistance anchors segment images at this fraction of the
	// outer radius along the wedge's mid-angle.
	imageDistance = 0.5

	// imageBaseSize is the default image dimension as a fraction of
	// the outer radius, before the per-segment size multiplier.
	imageBaseSize = 0.35
)

// Draw clears the context and paints the full wheel, back to front:
// wedges, images, labels, divider lines, inner border, outer border,
// pointer. A snapshot that is not yet visible produces a transparent
// frame so the widget occupies its box without showing half-loaded
// content.
func Draw(dc *gg.Context, snap Snapshot) {
	dc.SetRGBA(0, 0, 0, 0)
	dc.Clear()
	if !snap.Visible || snap.TotalSlots == 0 || len(snap.Segments) == 0 {
		return
	}

	w := float64(dc.Width())
	h := float64(dc.Height())
	cx, cy := w/2, h/2
	outer := math.Min(w, h)/2 - pointerSize
	st := snap.Style
	inner := st.InnerRadius * outer

	slotAngle := 2 * math.Pi / float64(snap.TotalSlots)
	// Segment 0's first slot begins at the pointer when rotation is 0;
	// rotating by R turns the wheel so the slot at angle R rests on top.
	ref := -math.Pi/2 - gg.Radians(snap.Rotation)

	// Wedges.
	slot := 0
	for _, seg := range snap.Segments {
		a0 := ref + slotAngle*float64(slot)
		a1 := a0 + slotAngle*float64(seg.Slots)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, outer, a0, a1)
		dc.ClosePath()
		dc.SetHexColor(seg.Background)
		dc.Fill()
		slot += seg.Slots
	}

	// Images.
	slot = 0
	for _, seg := range snap.Segments {
		mid := ref + slotAngle*(float64(slot)+float64(seg.Slots)/2)
		slot += seg.Slots
		if seg.Image == nil {
			continue
		}
		drawSegmentImage(dc, seg, cx, cy, outer, mid)
	}

	// Labels.
	slot = 0
	for _, seg := range snap.Segments {
		mid := ref + slotAngle*(float64(slot)+float64(seg.Slots)/2)
		slot += seg.Slots
		if seg.Label == "" {
			continue
		}
		tx := cx + math.Cos(mid)*st.TextDistance*outer
		ty := cy + math.Sin(mid)*st.TextDistance*outer

		dc.Push()
		dc.Translate(tx, ty)
		angle := mid
		if st.PerpendicularText {
			angle += math.Pi / 2
		}
		// Flip labels on the left half so they stay readable.
		if normalized(angle) > math.Pi/2 && normalized(angle) < 3*math.Pi/2 {
			angle += math.Pi
		}
		dc.Rotate(angle)
		if seg.Face != nil {
			dc.SetFontFace(seg.Face)
		}
		dc.SetHexColor(seg.TextColor)
		dc.DrawStringAnchored(seg.Label, 0, 0, 0.5, 0.5)
		dc.Pop()
	}

	// Divider lines between adjacent wedges.
	dc.SetLineWidth(st.RadiusLineWidth)
	dc.SetHexColor(st.RadiusLineColor)
	slot = 0
	for _, seg := range snap.Segments {
		a := ref + slotAngle*float64(slot)
		dc.MoveTo(cx+math.Cos(a)*inner, cy+math.Sin(a)*inner)
		dc.LineTo(cx+math.Cos(a)*outer, cy+math.Sin(a)*outer)
		dc.Stroke()
		slot += seg.Slots
	}

	// Inner border circle.
	if inner > 0 {
		dc.SetLineWidth(st.InnerBorderWidth)
		dc.SetHexColor(st.InnerBorderColor)
		dc.DrawCircle(cx, cy, inner)
		dc.Stroke()
	}

	// Outer border circle.
	dc.SetLineWidth(st.OuterBorderWidth)
	dc.SetHexColor(st.OuterBorderColor)
	dc.DrawCircle(cx, cy, outer-st.OuterBorderWidth/2)
	dc.Stroke()

	drawPointer(dc, snap.Pointer, cx, cy, outer, st)
}

func drawSegmentImage(dc *gg.Context, seg Segment, cx, cy, outer, mid float64) {
	scale := seg.ImageScale
	if scale <= 0 {
		scale = 1
	}
	base := outer * imageBaseSize * scale

	b := seg.Image.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())
	if sw <= 0 || sh <= 0 {
		return
	}
	var dw, dh float64
	if seg.Landscape {
		dw = base
		dh = base * sh / sw
	} else {
		dh = base
		dw = base * sw / sh
	}
	scaled := scaleImage(seg.Image, int(dw), int(dh))

	px := cx + math.Cos(mid)*imageDistance*outer + seg.ImageOffsetX
	py := cy + math.Sin(mid)*imageDistance*outer + seg.ImageOffsetY

	dc.Push()
	dc.Translate(px, py)
	// Keep the image upright along its radius so it turns with the wheel.
	dc.Rotate(mid + math.Pi/2)
	dc.DrawImageAnchored(scaled, 0, 0, 0.5, 0.5)
	dc.Pop()
}

func scaleImage(src image.Image, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// normalized folds an angle into [0, 2π).
func normalized(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
