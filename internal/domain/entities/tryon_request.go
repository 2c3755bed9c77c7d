package entities

import (
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"tryon-backend/internal/domain/valueobjects"
)

type TryOnRequestID string

// TryOnRequest carries one decoded subject image and the garment selection.
// It lives only for the duration of a single HTTP request.
type TryOnRequest struct {
	id          TryOnRequestID
	personImage image.Image
	garment     *valueobjects.GarmentSpec
	createdAt   time.Time
}

func NewTryOnRequest(personImage image.Image, garment *valueobjects.GarmentSpec) (*TryOnRequest, error) {
	if personImage == nil {
		return nil, fmt.Errorf("person image is required")
	}

	if personImage.Bounds().Empty() {
		return nil, fmt.Errorf("person image has no pixels")
	}

	if garment == nil {
		var err error
		garment, err = valueobjects.NewGarmentSpec("", "")
		if err != nil {
			return nil, err
		}
	}

	return &TryOnRequest{
		id:          TryOnRequestID("req_" + uuid.NewString()),
		personImage: personImage,
		garment:     garment,
		createdAt:   time.Now(),
	}, nil
}

func (r *TryOnRequest) ID() TryOnRequestID {
	return r.id
}

func (r *TryOnRequest) PersonImage() image.Image {
	return r.personImage
}

func (r *TryOnRequest) Garment() *valueobjects.GarmentSpec {
	return r.garment
}

func (r *TryOnRequest) CreatedAt() time.Time {
	return r.createdAt
}

// PersonJPEG re-encodes the subject in the compressed photographic format
// remote providers expect.
func (r *TryOnRequest) PersonJPEG() (*valueobjects.ImageData, error) {
	jpeg, err := valueobjects.EncodeJPEG(r.personImage)
	if err != nil {
		return nil, fmt.Errorf("failed to convert person image to JPEG: %w", err)
	}
	return jpeg, nil
}
