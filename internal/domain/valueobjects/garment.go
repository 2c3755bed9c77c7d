package valueobjects

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type GarmentType string

const (
	TShirt GarmentType = "tshirt"
	Pants  GarmentType = "pants"
	Jacket GarmentType = "jacket"
	Dress  GarmentType = "dress"
	Other  GarmentType = "other"
)

const DefaultGarmentType = TShirt

var garmentTypes = []GarmentType{TShirt, Pants, Jacket, Dress, Other}

// GarmentTypes lists every supported tag in a stable order.
func GarmentTypes() []GarmentType {
	out := make([]GarmentType, len(garmentTypes))
	copy(out, garmentTypes)
	return out
}

// ParseGarmentType maps a client tag to a GarmentType. An empty tag selects
// the default; tags outside the supported set are rejected.
func ParseGarmentType(tag string) (GarmentType, error) {
	t := GarmentType(strings.ToLower(strings.TrimSpace(tag)))
	if t == "" {
		return DefaultGarmentType, nil
	}
	for _, known := range garmentTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported garment type %q", ErrValidation, tag)
}

type GarmentSpec struct {
	garmentType GarmentType
	color       Color
}

// NewGarmentSpec builds the per-request garment selection, applying the
// tshirt / navy defaults when either field is empty.
func NewGarmentSpec(typeTag, colorHex string) (*GarmentSpec, error) {
	garmentType, err := ParseGarmentType(typeTag)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(colorHex) == "" {
		colorHex = DefaultGarmentColor
	}
	c, err := ParseColor(colorHex)
	if err != nil {
		return nil, err
	}

	return &GarmentSpec{
		garmentType: garmentType,
		color:       c,
	}, nil
}

func (g *GarmentSpec) Type() GarmentType {
	return g.garmentType
}

func (g *GarmentSpec) Color() Color {
	return g.color
}

// Shape is one filled polygon of a garment overlay, in fractions of the image
// width and height.
type Shape struct {
	Name   string       `yaml:"name"`
	Points [][2]float64 `yaml:"points"`
	Alpha  uint8        `yaml:"alpha"`
	Shade  float64      `yaml:"shade"`
}

type GarmentDefinition struct {
	Wearing string  `yaml:"wearing"`
	Shapes  []Shape `yaml:"shapes"`
}

// GarmentCatalog holds overlay geometry and prompt wording for every garment
// type. It is read-only after loading.
type GarmentCatalog struct {
	PromptTemplate string                            `yaml:"prompt_template"`
	NegativePrompt string                            `yaml:"negative_prompt"`
	DefaultAlpha   uint8                             `yaml:"default_alpha"`
	Garments       map[GarmentType]GarmentDefinition `yaml:"garments"`
}

//go:embed garments.yaml
var garmentsYAML []byte

var defaultCatalog = mustLoadCatalog(garmentsYAML)

func DefaultCatalog() *GarmentCatalog {
	return defaultCatalog
}

func LoadCatalog(data []byte) (*GarmentCatalog, error) {
	var catalog GarmentCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse garment catalog: %w", err)
	}

	if !strings.Contains(catalog.PromptTemplate, "{garment}") {
		return nil, fmt.Errorf("prompt template must contain {garment}")
	}

	for _, t := range garmentTypes {
		def, ok := catalog.Garments[t]
		if !ok {
			return nil, fmt.Errorf("garment catalog is missing %q", t)
		}
		for i := range def.Shapes {
			shape := &def.Shapes[i]
			if len(shape.Points) < 3 {
				return nil, fmt.Errorf("%s/%s: polygon needs at least 3 points", t, shape.Name)
			}
			for _, p := range shape.Points {
				if p[0] < 0 || p[0] > 1 || p[1] < 0 || p[1] > 1 {
					return nil, fmt.Errorf("%s/%s: point %v outside the unit square", t, shape.Name, p)
				}
			}
			if shape.Alpha == 0 {
				shape.Alpha = catalog.DefaultAlpha
			}
			if shape.Shade == 0 {
				shape.Shade = 1
			}
		}
		catalog.Garments[t] = def
	}

	return &catalog, nil
}

func mustLoadCatalog(data []byte) *GarmentCatalog {
	catalog, err := LoadCatalog(data)
	if err != nil {
		panic(err)
	}
	return catalog
}

// Shapes returns the overlay polygons for t; unknown types have none.
func (c *GarmentCatalog) Shapes(t GarmentType) []Shape {
	return c.Garments[t].Shapes
}

// Prompt renders the text prompt for a remote generation request.
func (c *GarmentCatalog) Prompt(spec *GarmentSpec) string {
	wearing := c.Garments[spec.Type()].Wearing
	if wearing == "" {
		wearing = "{color} " + string(spec.Type())
	}
	wearing = strings.ReplaceAll(wearing, "{color}", spec.Color().Name())
	return strings.ReplaceAll(c.PromptTemplate, "{garment}", wearing)
}
