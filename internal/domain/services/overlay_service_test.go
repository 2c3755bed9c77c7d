package services

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tryon-backend/internal/domain/valueobjects"
)

func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func mustColor(t *testing.T, hex string) valueobjects.Color {
	t.Helper()
	c, err := valueobjects.ParseColor(hex)
	require.NoError(t, err)
	return c
}

func rgb8(img image.Image, x, y int) (uint8, uint8, uint8, uint8) {
	r, g, b, a := img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)
}

func TestOverlayRenderer_PreservesDimensions(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	navy := mustColor(t, "#1e40af")

	sizes := []image.Point{{200, 400}, {1, 1}, {37, 13}, {640, 480}}

	for _, garment := range valueobjects.GarmentTypes() {
		for _, size := range sizes {
			src := createInMemoryImage(size.X, size.Y, color.White)
			out := renderer.Render(src, garment, navy)
			require.NotNil(t, out)
			assert.Equal(t, size.X, out.Bounds().Dx(), "%s width", garment)
			assert.Equal(t, size.Y, out.Bounds().Dy(), "%s height", garment)
		}
	}
}

func TestOverlayRenderer_BlendsOverOpaqueSubject(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	src := createInMemoryImage(200, 400, color.White)

	out := renderer.Render(src, valueobjects.TShirt, mustColor(t, "#1e40af"))

	// Torso rectangle centre.
	r, g, b, a := rgb8(out, 100, 130)
	assert.Equal(t, uint8(255), a)

	// 180/255 navy over white: neither pure navy nor pure white.
	assert.InDelta(t, 96, float64(r), 3)
	assert.InDelta(t, 120, float64(g), 3)
	assert.InDelta(t, 198, float64(b), 3)
	assert.NotEqual(t, [3]uint8{0x1e, 0x40, 0xaf}, [3]uint8{r, g, b})
	assert.NotEqual(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	// Far outside every shape the subject is untouched.
	r, g, b, _ = rgb8(out, 5, 390)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}

func TestOverlayRenderer_ShapesPerGarment(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	navy := mustColor(t, "#1e40af")
	const w, h = 200, 200

	tests := []struct {
		garment   valueobjects.GarmentType
		covered   [][2]float64
		untouched [][2]float64
	}{
		{
			garment:   valueobjects.TShirt,
			covered:   [][2]float64{{0.5, 0.3}, {0.3, 0.3}, {0.7, 0.3}},
			untouched: [][2]float64{{0.5, 0.7}, {0.1, 0.1}},
		},
		{
			garment:   valueobjects.Pants,
			covered:   [][2]float64{{0.4, 0.7}, {0.6, 0.7}, {0.5, 0.475}},
			untouched: [][2]float64{{0.5, 0.7}, {0.5, 0.3}},
		},
		{
			garment:   valueobjects.Jacket,
			covered:   [][2]float64{{0.35, 0.45}, {0.2, 0.35}, {0.8, 0.35}},
			untouched: [][2]float64{{0.5, 0.7}},
		},
		{
			garment:   valueobjects.Dress,
			covered:   [][2]float64{{0.5, 0.3}, {0.5, 0.7}, {0.3, 0.75}},
			untouched: [][2]float64{{0.5, 0.9}, {0.1, 0.5}},
		},
		{
			garment:   valueobjects.Other,
			untouched: [][2]float64{{0.5, 0.3}, {0.5, 0.7}},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.garment), func(t *testing.T) {
			out := renderer.Render(createInMemoryImage(w, h, color.White), tt.garment, navy)

			for _, p := range tt.covered {
				r, _, _, _ := rgb8(out, int(p[0]*w), int(p[1]*h))
				assert.Less(t, r, uint8(200), "expected overlay at %v", p)
			}
			for _, p := range tt.untouched {
				r, g, b, _ := rgb8(out, int(p[0]*w), int(p[1]*h))
				assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b}, "expected no overlay at %v", p)
			}
		})
	}
}

func TestOverlayRenderer_AllShapesPainted(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	catalog := valueobjects.DefaultCatalog()
	navy := mustColor(t, "#1e40af")
	const w, h = 200, 200

	// one interior point per shape, clear of any later shape
	samples := map[valueobjects.GarmentType]map[string][2]float64{
		valueobjects.TShirt: {"torso": {0.5, 0.3}, "left_sleeve": {0.3, 0.3}, "right_sleeve": {0.7, 0.3}},
		valueobjects.Pants:  {"left_leg": {0.4, 0.7}, "right_leg": {0.6, 0.7}, "waist": {0.5, 0.475}},
		valueobjects.Jacket: {"torso": {0.4, 0.45}, "left_sleeve": {0.22, 0.35}, "right_sleeve": {0.78, 0.35}, "lapel": {0.5, 0.25}},
		valueobjects.Dress:  {"bodice": {0.5, 0.3}, "skirt": {0.5, 0.7}},
	}

	over := func(c, a uint8) float64 {
		return float64(c)*float64(a)/255 + 255*(1-float64(a)/255)
	}

	for garment, points := range samples {
		t.Run(string(garment), func(t *testing.T) {
			shapes := catalog.Shapes(garment)
			require.Len(t, shapes, len(points))

			out := renderer.Render(createInMemoryImage(w, h, color.White), garment, navy)

			for _, shape := range shapes {
				p, ok := points[shape.Name]
				require.True(t, ok, "no sample for %s", shape.Name)

				want := navy.NRGBA(shape.Alpha, shape.Shade)
				r, g, b, _ := rgb8(out, int(p[0]*w), int(p[1]*h))
				assert.InDelta(t, over(want.R, want.A), float64(r), 3, "%s red", shape.Name)
				assert.InDelta(t, over(want.G, want.A), float64(g), 3, "%s green", shape.Name)
				assert.InDelta(t, over(want.B, want.A), float64(b), 3, "%s blue", shape.Name)
			}
		})
	}
}

func TestOverlayRenderer_JacketLapelIsDarker(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	out := renderer.Render(createInMemoryImage(200, 200, color.White), valueobjects.Jacket, mustColor(t, "#c2410c"))

	lapelR, _, _, _ := rgb8(out, 100, 50)
	torsoR, _, _, _ := rgb8(out, 70, 90)
	assert.Less(t, lapelR, torsoR)
}

func TestOverlayRenderer_FlattensAlpha(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	src := image.NewNRGBA(image.Rect(0, 0, 50, 50))

	out := renderer.Render(src, valueobjects.Dress, mustColor(t, "#166534"))

	for _, p := range []image.Point{{0, 0}, {25, 15}, {49, 49}} {
		_, _, _, a := rgb8(out, p.X, p.Y)
		assert.Equal(t, uint8(255), a)
	}
}

func TestOverlayRenderer_NonZeroOrigin(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	src := createInMemoryImage(300, 300, color.White).SubImage(image.Rect(100, 100, 300, 300))

	out := renderer.Render(src, valueobjects.TShirt, mustColor(t, "#1e40af"))

	assert.Equal(t, 200, out.Bounds().Dx())
	r, _, _, _ := rgb8(out, 100, 65)
	assert.Less(t, r, uint8(200))
}

func TestOverlayRenderer_EmptyImage(t *testing.T) {
	renderer := NewOverlayRenderer(nil)
	out := renderer.Render(image.NewRGBA(image.Rect(0, 0, 0, 0)), valueobjects.TShirt, mustColor(t, "#1e40af"))
	require.NotNil(t, out)
	assert.True(t, out.Bounds().Empty())
}
