package services

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/image/vector"

	"tryon-backend/internal/domain/valueobjects"
)

// OverlayRenderer paints a flat garment silhouette over a subject image. It is
// the local fallback when no remote provider produced a result.
type OverlayRenderer struct {
	catalog *valueobjects.GarmentCatalog
}

func NewOverlayRenderer(catalog *valueobjects.GarmentCatalog) *OverlayRenderer {
	if catalog == nil {
		catalog = valueobjects.DefaultCatalog()
	}
	return &OverlayRenderer{
		catalog: catalog,
	}
}

// Render returns a new opaque image with the same dimensions as img. It never
// fails: on any internal error the original image is returned, flattened.
func (r *OverlayRenderer) Render(img image.Image, garment valueobjects.GarmentType, c valueobjects.Color) (out image.Image) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("overlay render panicked, returning original image",
				"garment", garment, "error", fmt.Errorf("%w: %v", valueobjects.ErrRender, rec))
			out = original(img)
		}
	}()

	result, err := r.render(img, garment, c)
	if err != nil {
		slog.Warn("overlay render failed, returning original image", "garment", garment, "error", err)
		return original(img)
	}
	return result
}

func (r *OverlayRenderer) render(img image.Image, garment valueobjects.GarmentType, c valueobjects.Color) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: image is nil", valueobjects.ErrRender)
	}

	size := img.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("%w: image is empty", valueobjects.ErrRender)
	}

	layer := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	for _, shape := range r.catalog.Shapes(garment) {
		fillPolygon(layer, shape.Points, c.NRGBA(shape.Alpha, shape.Shade))
	}

	base := imaging.Clone(img)
	setOpaque(base)

	return imaging.Overlay(base, layer, image.Pt(0, 0), 1.0), nil
}

// fillPolygon replaces the covered pixels of layer with fill and leaves the
// rest alone. Points are fractions of the layer size. Edge pixels get fill
// alpha scaled by their coverage.
func fillPolygon(layer *image.NRGBA, points [][2]float64, fill color.NRGBA) {
	if len(points) < 3 {
		return
	}

	w, h := layer.Bounds().Dx(), layer.Bounds().Dy()
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src

	at := func(p [2]float64) (float32, float32) {
		return float32(p[0] * float64(w)), float32(p[1] * float64(h))
	}

	z.MoveTo(at(points[0]))
	for _, p := range points[1:] {
		z.LineTo(at(p))
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			coverage := mask.Pix[y*mask.Stride+x]
			if coverage == 0 {
				continue
			}
			c := fill
			c.A = uint8(uint32(fill.A) * uint32(coverage) / 0xff)
			layer.SetNRGBA(x, y, c)
		}
	}
}

func setOpaque(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}

// original is the degraded output: the input converted to an opaque NRGBA.
// A source that cannot even be copied is returned untouched.
func original(img image.Image) (out image.Image) {
	if img == nil {
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = img
		}
	}()

	flat := imaging.Clone(img)
	setOpaque(flat)
	return flat
}
