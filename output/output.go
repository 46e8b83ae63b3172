// Package output delivers rendered wheel frames to their destination:
// an animated GIF, a directory of PNG frames, or a Linux framebuffer
// (build tag "screen"). Sinks can be combined.
package output

import (
	"errors"
	"image"
	"time"
)

// ErrScreenNotCompiled is returned when framebuffer output is
// configured but the binary was built without the screen tag.
var ErrScreenNotCompiled = errors.New("output: framebuffer support not compiled in (build with -tags screen)")

// Sink receives rendered frames in order. delay is how long the frame
// should stay on screen; sinks that play in real time sleep it, sinks
// that encode store it.
type Sink interface {
	Frame(img image.Image, delay time.Duration) error
	Close() error
}

// Config selects output destinations. Any combination may be set;
// none at all yields a no-op sink.
type Config struct {
	GIFPath     string `yaml:"gif_path"`
	PNGDir      string `yaml:"png_dir"`
	Framebuffer bool   `yaml:"framebuffer"`
}

// New creates a Sink based on the configuration. Returns a Multi sink
// when more than one destination is configured.
func New(cfg Config) (Sink, error) {
	var sinks []Sink

	if cfg.GIFPath != "" {
		sinks = append(sinks, NewGIF(cfg.GIFPath))
	}
	if cfg.PNGDir != "" {
		png, err := NewPNGDir(cfg.PNGDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, png)
	}
	if cfg.Framebuffer {
		fb, err := NewFramebuffer()
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fb)
	}

	if len(sinks) == 0 {
		return &Noop{}, nil
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return &Multi{sinks: sinks}, nil
}

// Noop implements Sink but discards every frame.
type Noop struct{}

func (n *Noop) Frame(img image.Image, delay time.Duration) error { return nil }
func (n *Noop) Close() error                                     { return nil }

// Multi fans each frame out to several sinks.
type Multi struct {
	sinks []Sink
}

func (m *Multi) Frame(img image.Image, delay time.Duration) error {
	for _, s := range m.sinks {
		if err := s.Frame(img, delay); err != nil {
			return err
		}
	}
	return nil
}

func (m *Multi) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
