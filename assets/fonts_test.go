package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

func TestFaceName(t *testing.T) {
	cases := []struct {
		family, weight, style string
		want                  string
	}{
		{"", "", "", ""},
		{"Quicksand", "", "", "quicksand"},
		{"Quicksand", "normal", "normal", "quicksand"},
		{"Quicksand", "bold", "", "quicksand-bold"},
		{"Quicksand", "bold", "italic", "quicksand-bold-italic"},
		{"Quicksand", "", "italic", "quicksand-italic"},
	}
	for _, c := range cases {
		if got := FaceName(c.family, c.weight, c.style); got != c.want {
			t.Errorf("FaceName(%q,%q,%q) = %q, want %q", c.family, c.weight, c.style, got, c.want)
		}
	}
}

func TestFaceFallback(t *testing.T) {
	r := NewFontRegistry()
	face := r.Face("no-such-family", 16)
	if face == nil {
		t.Fatal("no fallback face for unknown family")
	}
}

func TestRegisterAndVariantStripping(t *testing.T) {
	r := NewFontRegistry()
	if err := r.Register("Quicksand", goregular.TTF); err != nil {
		t.Fatal(err)
	}
	if !r.Active("quicksand") {
		t.Error("registered family not active")
	}
	// A bold request for a family with only a regular file strips the
	// variant suffix.
	if face := r.Face("quicksand-bold", 16); face == nil {
		t.Error("variant lookup returned nil face")
	}

	if err := r.Register("broken", []byte("not a font")); err == nil {
		t.Error("Register accepted garbage bytes")
	}
}

func TestActivateLoadsFromDirs(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fancy.ttf"), gobold.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	r := NewFontRegistry(dir)
	done := make(chan error, 1)
	r.Activate([]string{"Fancy"}, func(err error) { done <- err })

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Activate: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Activate never completed")
	}
	if !r.Active("fancy") {
		t.Error("family not active after Activate")
	}
}

func TestActivateReportsMissingButCompletes(t *testing.T) {
	r := NewFontRegistry(t.TempDir())
	done := make(chan error, 1)
	r.Activate([]string{"Nowhere"}, func(err error) { done <- err })

	select {
	case err := <-done:
		if err == nil {
			t.Error("missing family reported no error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Activate must complete even when fonts are missing")
	}
	// The family still resolves to the fallback face.
	if face := r.Face("Nowhere", 14); face == nil {
		t.Error("missing family has no fallback face")
	}
}

func TestActivateEmptyListCompletesImmediately(t *testing.T) {
	r := NewFontRegistry()
	done := make(chan error, 1)
	r.Activate(nil, func(err error) { done <- err })
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("empty activation: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("empty activation never completed")
	}
}
