package browser

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// DefaultIconSize caps the longer side of a thumbnail.
const DefaultIconSize = 32

// Renderer turns a resource name into a thumbnail image.
type Renderer interface {
	Render(name string) (image.Image, error)
}

// ImageRenderer decodes PNG, JPEG and SVG resources from an Opener and
// scales them so the longer side is at most size, keeping aspect ratio.
// Images already within the cap are not enlarged.
type ImageRenderer struct {
	source Opener
	size   int
}

func NewImageRenderer(source Opener, size int) *ImageRenderer {
	if size <= 0 {
		size = DefaultIconSize
	}
	return &ImageRenderer{source: source, size: size}
}

func (r *ImageRenderer) Render(name string) (image.Image, error) {
	rc, err := r.source.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if strings.ToLower(filepath.Ext(name)) == ".svg" {
		return rasterizeSVG(rc, r.size)
	}

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", name, ErrUnsupportedFormat, err)
	}
	return scaleToFit(img, r.size)
}

// fitSize returns the thumbnail dimensions for a w x h source.
func fitSize(w, h, limit int) (int, int) {
	side := max(w, h)
	if side > limit {
		side = limit
	}
	if w >= h {
		return side, max(1, int(math.Round(float64(h)*float64(side)/float64(w))))
	}
	return max(1, int(math.Round(float64(w)*float64(side)/float64(h)))), side
}

func scaleToFit(img image.Image, limit int) (image.Image, error) {
	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return nil, fmt.Errorf("empty image: %w", ErrUnsupportedFormat)
	}

	w, h := fitSize(src.Dx(), src.Dy(), limit)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst, nil
}

// rasterizeSVG draws the icon straight at thumbnail size.
func rasterizeSVG(r io.Reader, limit int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w: %v", ErrUnsupportedFormat, err)
	}

	vw := int(math.Ceil(icon.ViewBox.W))
	vh := int(math.Ceil(icon.ViewBox.H))
	if vw <= 0 || vh <= 0 {
		return nil, fmt.Errorf("svg has no view box: %w", ErrUnsupportedFormat)
	}

	w, h := fitSize(vw, vh, limit)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return dst, nil
}
