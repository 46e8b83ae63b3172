//go:build screen

package output

import (
	"encoding/binary"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	"github.com/d21d3q/framebuffer"
)

// Framebuffer blits frames to /dev/fb0 in RGB565 and plays delays in
// real time. The frame is centered on the display; pixels outside it
// stay black.
type Framebuffer struct {
	pixBuffer       []byte
	backBuffer      []byte
	width           int
	height          int
	lineLengthBytes int
}

func NewFramebuffer() (Sink, error) {
	fb, err := framebuffer.OpenFrameBuffer("/dev/fb0", os.O_RDWR)
	if err != nil {
		return nil, fmt.Errorf("open framebuffer: %w", err)
	}

	varInfo, err := fb.VarScreenInfo()
	if err != nil {
		return nil, fmt.Errorf("get variable screen info: %w", err)
	}
	fixedInfo, err := fb.FixScreenInfo()
	if err != nil {
		return nil, fmt.Errorf("get fixed screen info: %w", err)
	}

	f := &Framebuffer{
		width:           int(varInfo.XRes),
		height:          int(varInfo.YRes),
		lineLengthBytes: int(fixedInfo.LineLength),
	}
	f.pixBuffer, err = fb.Pixels()
	if err != nil {
		return nil, fmt.Errorf("get pixel data: %w", err)
	}
	f.backBuffer = make([]byte, f.height*f.lineLengthBytes)

	log.Printf("Framebuffer: %dx%d, %d bpp, stride %d bytes",
		f.width, f.height, varInfo.BitsPerPixel, f.lineLengthBytes)

	f.clear()
	return f, nil
}

func (f *Framebuffer) clear() {
	for i := range f.pixBuffer {
		f.pixBuffer[i] = 0
	}
}

func (f *Framebuffer) Frame(img image.Image, delay time.Duration) error {
	bounds := img.Bounds()
	offX := (f.width - bounds.Dx()) / 2
	offY := (f.height - bounds.Dy()) / 2

	for y := 0; y < bounds.Dy(); y++ {
		fy := y + offY
		if fy < 0 || fy >= f.height {
			continue
		}
		for x := 0; x < bounds.Dx(); x++ {
			fx := x + offX
			if fx < 0 || fx >= f.width {
				continue
			}
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			r5 := uint16(r >> (16 - 5))
			g6 := uint16(g >> (16 - 6))
			b5 := uint16(b >> (16 - 5))
			pixel16 := (r5 << 11) | (g6 << 5) | b5
			fbIdx := (fy * f.lineLengthBytes) + (fx * 2)
			if fbIdx+1 < len(f.backBuffer) {
				binary.LittleEndian.PutUint16(f.backBuffer[fbIdx:], pixel16)
			}
		}
	}
	copy(f.pixBuffer, f.backBuffer)

	if delay > 0 {
		time.Sleep(delay)
	}
	return nil
}

func (f *Framebuffer) Close() error {
	f.clear()
	return nil
}
