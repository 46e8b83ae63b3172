package assets

import (
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func load(t *testing.T, l *ImageLoader, uri string) (image.Image, error) {
	t.Helper()
	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	l.Load(uri, func(img image.Image, err error) { ch <- result{img, err} })
	select {
	case res := <-ch:
		return res.img, res.err
	case <-time.After(10 * time.Second):
		t.Fatal("Load never resolved")
		return nil, nil
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seg.png")
	writeTestPNG(t, path)

	img, err := load(t, NewImageLoader(0), path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("bounds %v, want 8x6", b)
	}
}

func TestLoadHTTP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seg.png")
	writeTestPNG(t, path)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	img, err := load(t, NewImageLoader(0), srv.URL+"/seg.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 {
		t.Errorf("bounds %v, want width 8", b)
	}
}

func TestLoadMissingFileResolvesWithError(t *testing.T) {
	img, err := load(t, NewImageLoader(0), filepath.Join(t.TempDir(), "nope.png"))
	if err == nil {
		t.Error("missing file reported no error")
	}
	if img != nil {
		t.Error("missing file returned an image")
	}
}

func TestLoadTimesOut(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	start := time.Now()
	img, err := load(t, NewImageLoader(50*time.Millisecond), srv.URL)
	if err == nil {
		t.Error("stuck fetch reported no error")
	}
	if img != nil {
		t.Error("stuck fetch returned an image")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("timeout did not bound the load")
	}
}
