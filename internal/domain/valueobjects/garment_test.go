package valueobjects

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGarmentSpec(t *testing.T) {
	tests := []struct {
		name      string
		typeTag   string
		colorHex  string
		wantType  GarmentType
		wantColor string
		wantErr   bool
	}{
		{name: "defaults", wantType: TShirt, wantColor: DefaultGarmentColor},
		{name: "explicit values", typeTag: "jacket", colorHex: "#9f1239", wantType: Jacket, wantColor: "#9f1239"},
		{name: "tag is case folded", typeTag: " Dress ", colorHex: "#166534", wantType: Dress, wantColor: "#166534"},
		{name: "other is accepted", typeTag: "other", wantType: Other, wantColor: DefaultGarmentColor},
		{name: "unknown tag", typeTag: "hat", wantErr: true},
		{name: "bad color", typeTag: "pants", colorHex: "blue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewGarmentSpec(tt.typeTag, tt.colorHex)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, spec.Type())
			assert.Equal(t, tt.wantColor, spec.Color().Hex())
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	for _, gt := range GarmentTypes() {
		_, ok := catalog.Garments[gt]
		assert.True(t, ok, "missing %s", gt)
	}

	assert.Empty(t, catalog.Shapes(Other))
	assert.Len(t, catalog.Shapes(TShirt), 3)
	assert.Len(t, catalog.Shapes(Pants), 3)
	assert.Len(t, catalog.Shapes(Jacket), 4)
	assert.Len(t, catalog.Shapes(Dress), 2)

	for _, shape := range catalog.Shapes(TShirt) {
		assert.Equal(t, uint8(180), shape.Alpha, shape.Name)
		assert.Equal(t, 1.0, shape.Shade, shape.Name)
	}

	lapel := catalog.Shapes(Jacket)[3]
	assert.Equal(t, "lapel", lapel.Name)
	assert.Equal(t, uint8(200), lapel.Alpha)
	assert.Equal(t, 0.8, lapel.Shade)
}

func TestGarmentCatalog_Prompt(t *testing.T) {
	catalog := DefaultCatalog()

	tests := []struct {
		typeTag  string
		colorHex string
		want     string
	}{
		{"tshirt", "#1e40af", "high quality photo of a person wearing a navy blue t-shirt, photorealistic, detailed clothing"},
		{"pants", "#334155", "high quality photo of a person wearing charcoal pants, photorealistic, detailed clothing"},
		{"jacket", "#C2410C", "high quality photo of a person wearing a rust orange jacket, photorealistic, detailed clothing"},
		{"dress", "#abcdef", "high quality photo of a person wearing a colored dress, photorealistic, detailed clothing"},
		{"other", "#7e22ce", "high quality photo of a person wearing royal purple clothing, photorealistic, detailed clothing"},
	}

	for _, tt := range tests {
		t.Run(tt.typeTag, func(t *testing.T) {
			spec, err := NewGarmentSpec(tt.typeTag, tt.colorHex)
			require.NoError(t, err)
			assert.Equal(t, tt.want, catalog.Prompt(spec))
		})
	}

	assert.Equal(t, "bad quality, blurry, distorted body, unrealistic clothing", catalog.NegativePrompt)
}

func TestLoadCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed yaml", yaml: "garments: ["},
		{name: "missing template placeholder", yaml: "prompt_template: hi\ngarments: {}"},
		{name: "missing garment", yaml: "prompt_template: \"{garment}\"\ngarments: {tshirt: {wearing: x}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}
