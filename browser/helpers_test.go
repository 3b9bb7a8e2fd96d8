package browser

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"fyne.io/fyne/v2"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// pngCatalog serves a small PNG under every .png name and plain text
// under everything else.
func pngCatalog(t *testing.T, names ...string) *ResourceCatalog {
	t.Helper()
	data := encodePNG(t, 48, 24)
	resources := make([]fyne.Resource, 0, len(names))
	for _, name := range names {
		content := data
		if !isSupported(name, []string{".png"}) {
			content = []byte("not an image")
		}
		resources = append(resources, fyne.NewStaticResource(name, content))
	}
	return NewResourceCatalog(resources...)
}

var errQuery = errors.New("catalog offline")

// brokenCatalog fails every query.
type brokenCatalog struct{}

func (brokenCatalog) Query(string) ([]string, error) {
	return nil, errQuery
}

func (brokenCatalog) Open(name string) (io.ReadCloser, error) {
	return nil, ErrNotFound
}

// funcRenderer renders through a plain function.
type funcRenderer func(name string) (image.Image, error)

func (f funcRenderer) Render(name string) (image.Image, error) {
	return f(name)
}

// fakeProjection records what the controller asks of a view.
type fakeProjection struct {
	current  int
	reloads  int
	scrolled []int
}

func newFakeProjection() *fakeProjection {
	return &fakeProjection{current: -1}
}

func (f *fakeProjection) Reload() {
	f.reloads++
}

func (f *fakeProjection) SetCurrent(row int) {
	f.current = row
}

func (f *fakeProjection) Current() (int, bool) {
	return f.current, f.current >= 0
}

func (f *fakeProjection) ScrollToCenter(row int) {
	f.scrolled = append(f.scrolled, row)
}
