package assets

import (
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// DefaultImageTimeout bounds how long a single image load may take.
// Without it a dead URI would keep the wheel invisible forever.
const DefaultImageTimeout = 10 * time.Second

// ImageLoader fetches and decodes segment images from file paths or
// http(s) URIs. Every Load resolves: success, decode/fetch error, or
// timeout. The zero timeout means DefaultImageTimeout.
type ImageLoader struct {
	Timeout time.Duration
	Client  *http.Client
}

func NewImageLoader(timeout time.Duration) *ImageLoader {
	return &ImageLoader{Timeout: timeout}
}

// Load fetches the image in the background and calls done exactly once
// from the loader's goroutine. On failure or timeout the image is nil.
func (l *ImageLoader) Load(uri string, done func(image.Image, error)) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = DefaultImageTimeout
	}

	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)

	go func() {
		img, err := l.fetch(uri)
		ch <- result{img, err}
	}()

	go func() {
		select {
		case res := <-ch:
			done(res.img, res.err)
		case <-time.After(timeout):
			done(nil, fmt.Errorf("load %s: timed out after %v", uri, timeout))
		}
	}()
}

func (l *ImageLoader) fetch(uri string) (image.Image, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		client := l.Client
		if client == nil {
			client = http.DefaultClient
		}
		resp, err := client.Get(uri)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", uri, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %s", uri, resp.Status)
		}
		img, _, err := image.Decode(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", uri, err)
		}
		return img, nil
	}

	f, err := os.Open(uri)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", uri, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", uri, err)
	}
	return img, nil
}
