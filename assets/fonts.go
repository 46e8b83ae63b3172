// Package assets loads the wheel's external resources: decorative
// segment images and label fonts. Loads are asynchronous; completion is
// reported through callbacks so the wheel can fold them into its own
// event handling.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FaceName builds the registry lookup key for a font family with
// optional weight and style variants, e.g. ("Quicksand", "bold",
// "italic") → "quicksand-bold-italic". An empty family yields "".
func FaceName(family, weight, style string) string {
	if family == "" {
		return ""
	}
	name := strings.ToLower(family)
	if weight != "" && weight != "normal" {
		name += "-" + strings.ToLower(weight)
	}
	if style != "" && style != "normal" {
		name += "-" + strings.ToLower(style)
	}
	return name
}

// FontRegistry holds parsed fonts by name and answers face requests.
// Unknown names fall back to Go Regular so labels always render.
type FontRegistry struct {
	mu    sync.Mutex
	fonts map[string]*truetype.Font
	dirs  []string

	fallback *truetype.Font
}

// NewFontRegistry creates a registry that searches the given
// directories for "<name>.ttf" files on activation.
func NewFontRegistry(dirs ...string) *FontRegistry {
	r := &FontRegistry{
		fonts: make(map[string]*truetype.Font),
		dirs:  dirs,
	}
	// goregular ships with x/image and always parses.
	r.fallback, _ = truetype.Parse(goregular.TTF)
	return r
}

// Register parses TTF bytes and stores them under the given name.
func (r *FontRegistry) Register(name string, ttf []byte) error {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}
	r.mu.Lock()
	r.fonts[strings.ToLower(name)] = f
	r.mu.Unlock()
	return nil
}

// Active reports whether a family name resolves without falling back.
func (r *FontRegistry) Active(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.fonts[strings.ToLower(name)]
	return ok
}

// Face returns a font face for the named family at the given size.
// Name resolution: exact registered name, then the family with variant
// suffixes stripped, then the fallback.
func (r *FontRegistry) Face(name string, size float64) font.Face {
	r.mu.Lock()
	f := r.fonts[strings.ToLower(name)]
	if f == nil {
		if base, _, ok := strings.Cut(strings.ToLower(name), "-"); ok {
			f = r.fonts[base]
		}
	}
	if f == nil {
		f = r.fallback
	}
	r.mu.Unlock()

	if f == nil {
		return nil
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		Hinting: font.HintingFull,
	})
}

// Activate asynchronously resolves the given families, loading missing
// ones from the search directories, then calls done exactly once with
// the first load error (nil when all resolved). Callers should treat
// the callback as "fonts ready" regardless of the error: a family that
// cannot load renders with the fallback face instead of blocking the
// wheel forever.
func (r *FontRegistry) Activate(families []string, done func(error)) {
	go func() {
		var firstErr error
		for _, fam := range families {
			if fam == "" || r.Active(fam) {
				continue
			}
			if err := r.loadFromDirs(fam); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		if done != nil {
			done(firstErr)
		}
	}()
}

func (r *FontRegistry) loadFromDirs(family string) error {
	names := []string{
		family + ".ttf",
		strings.ToLower(family) + ".ttf",
	}
	for _, dir := range r.dirs {
		for _, n := range names {
			data, err := os.ReadFile(filepath.Join(dir, n))
			if err != nil {
				continue
			}
			return r.Register(family, data)
		}
	}
	return fmt.Errorf("font %s not found in %v", family, r.dirs)
}
