package output

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// PNGDir writes each frame as a numbered PNG file in a directory.
// Mostly useful for debugging wheel layouts frame by frame.
type PNGDir struct {
	dir   string
	count int
}

func NewPNGDir(dir string) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &PNGDir{dir: dir}, nil
}

func (p *PNGDir) Frame(img image.Image, delay time.Duration) error {
	name := filepath.Join(p.dir, fmt.Sprintf("frame-%04d.png", p.count))
	p.count++

	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return nil
}

func (p *PNGDir) Close() error { return nil }
