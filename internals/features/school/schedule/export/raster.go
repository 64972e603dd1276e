package export

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

var (
	ErrEmptyScene = errors.New("export: nothing to rasterize")
	ErrTooLarge   = errors.New("export: image exceeds the pixel budget")
)

// DefaultMaxPixels bounds one output image (after scaling).
const DefaultMaxPixels = 12_000_000

// Rasterizer turns a styled target plus its scene into pixels.
type Rasterizer interface {
	Rasterize(ctx context.Context, target Styleable, scene Scene, ratio int) (image.Image, error)
}

// Painter is the in-process Rasterizer. It reads theme and layout off the
// target (so the overrides decide what the image looks like), paints the
// scene at 1x and scales by the pixel ratio.
type Painter struct {
	MaxPixels int
}

func (p Painter) Rasterize(ctx context.Context, target Styleable, scene Scene, ratio int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if scene == nil || target == nil {
		return nil, ErrEmptyScene
	}
	if ratio < 1 {
		ratio = 1
	}

	s := ReadSurface(target)
	w, h := scene.Size(s)
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyScene
	}
	outW := max(w, s.MinWidth)
	if s.ClipWidth > 0 && s.ClipWidth < outW {
		outW = s.ClipWidth
	}

	budget := p.MaxPixels
	if budget <= 0 {
		budget = DefaultMaxPixels
	}
	if outW*ratio*h*ratio > budget {
		return nil, fmt.Errorf("%w: %dx%d at %dx", ErrTooLarge, outW, h, ratio)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, max(w, outW), h))
	fill(canvas, canvas.Bounds(), s.Palette.Background)
	scene.Paint(canvas.SubImage(image.Rect(0, 0, w, h)).(*image.RGBA), s)

	var img image.Image = canvas
	if outW < canvas.Bounds().Dx() {
		img = imaging.Crop(canvas, image.Rect(0, 0, outW, h))
	}
	if ratio > 1 {
		img = imaging.Resize(img, outW*ratio, h*ratio, imaging.NearestNeighbor)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}
