package output

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"
	"time"
)

// GIF collects frames in memory and encodes an animated GIF on Close.
type GIF struct {
	path   string
	images []*image.Paletted
	delays []int
}

func NewGIF(path string) *GIF {
	return &GIF{path: path}
}

// Frame quantizes the image onto the Plan9 palette and appends it.
func (g *GIF) Frame(img image.Image, delay time.Duration) error {
	bounds := img.Bounds()
	paletted := image.NewPaletted(bounds, palette.Plan9)
	draw.FloydSteinberg.Draw(paletted, bounds, img, bounds.Min)

	g.images = append(g.images, paletted)
	// GIF delays are in hundredths of a second, minimum 2 in practice.
	d := int(delay / (10 * time.Millisecond))
	if d < 2 {
		d = 2
	}
	g.delays = append(g.delays, d)
	return nil
}

// Close writes the animation. A sink with no frames writes nothing.
func (g *GIF) Close() error {
	if len(g.images) == 0 {
		return nil
	}
	f, err := os.Create(g.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", g.path, err)
	}
	defer f.Close()

	if err := gif.EncodeAll(f, &gif.GIF{Image: g.images, Delay: g.delays}); err != nil {
		return fmt.Errorf("encode %s: %w", g.path, err)
	}
	return nil
}
