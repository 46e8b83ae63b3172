package render

import (
	"image"

	"github.com/fogleman/gg"
)

// pointerSize is the height in pixels reserved above the wheel for the
// pointer; the wheel radius shrinks by this much to make room.
const pointerSize = 24.0

// drawPointer paints the fixed pointer at 12 o'clock: the configured
// pointer image when present, otherwise a built-in downward triangle.
// PointerScale and the offsets adjust size and position.
func drawPointer(dc *gg.Context, img image.Image, cx, cy, outer float64, st Style) {
	scale := st.PointerScale
	if scale <= 0 {
		scale = 1
	}
	tipX := cx + st.PointerOffsetX
	topY := cy - outer - pointerSize + 2 + st.PointerOffsetY

	if img != nil {
		b := img.Bounds()
		h := float64(b.Dy())
		if h <= 0 {
			return
		}
		target := pointerSize * 1.5 * scale
		w := float64(b.Dx()) * target / h
		scaled := scaleImage(img, int(w), int(target))
		dc.DrawImageAnchored(scaled, int(tipX), int(topY+pointerSize/2), 0.5, 0.5)
		return
	}

	size := pointerSize * scale
	dc.NewSubPath()
	dc.MoveTo(tipX, topY+size)
	dc.LineTo(tipX-size*0.6, topY)
	dc.LineTo(tipX+size*0.6, topY)
	dc.ClosePath()
	dc.SetHexColor("#ed4245")
	dc.FillPreserve()
	dc.SetLineWidth(2)
	dc.SetHexColor("#202225")
	dc.Stroke()
}
