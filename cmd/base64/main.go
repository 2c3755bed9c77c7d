package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"tryon-backend/internal/domain/valueobjects"
)

// tryOnRequest mirrors the POST /api/try-on body.
type tryOnRequest struct {
	PersonImage  string `json:"person_image"`
	GarmentType  string `json:"garment_type,omitempty"`
	GarmentColor string `json:"garment_color,omitempty"`
}

// Turns every image in -in into a ready-to-send try-on request body in -out.
func main() {
	inDir := flag.String("in", "images", "directory with subject photos")
	outDir := flag.String("out", "encoded", "directory for the generated JSON bodies")
	garmentType := flag.String("garment-type", "", "garment_type to include (tshirt, pants, jacket, dress, other)")
	garmentColor := flag.String("garment-color", "", "garment_color to include, e.g. #1e40af")
	flag.Parse()

	// fail early on values the server would reject
	if _, err := valueobjects.NewGarmentSpec(*garmentType, *garmentColor); err != nil {
		log.Fatal(err)
	}

	files, err := os.ReadDir(*inDir)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	validExtensions := []string{".jpg", ".png", ".jpeg", ".webp", ".gif"}

	for _, file := range files {
		if !slices.Contains(validExtensions, strings.ToLower(filepath.Ext(file.Name()))) {
			continue
		}

		dataURL, err := encode(filepath.Join(*inDir, file.Name()))
		if err != nil {
			log.Printf("skipping %s: %v", file.Name(), err)
			continue
		}

		body := tryOnRequest{
			PersonImage:  dataURL,
			GarmentType:  *garmentType,
			GarmentColor: *garmentColor,
		}
		name := strings.TrimSuffix(file.Name(), filepath.Ext(file.Name()))
		if err := save(filepath.Join(*outDir, name+".json"), body); err != nil {
			log.Fatal(err)
		}
	}
}

// encode re-encodes the photo as PNG, applying EXIF orientation on the way,
// and returns it as a data URL.
func encode(file string) (string, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}

	data, err := valueobjects.NewImageData(raw)
	if err != nil {
		return "", err
	}

	img, err := data.Decode()
	if err != nil {
		return "", err
	}

	encoded, err := valueobjects.EncodePNG(img)
	if err != nil {
		return "", err
	}

	return encoded.DataURL(), nil
}

func save(file string, body tryOnRequest) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", file, err)
	}
	return os.WriteFile(file, data, 0o644)
}
