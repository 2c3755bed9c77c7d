package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"tryon-backend/internal/application/usecases"
	"tryon-backend/internal/domain/valueobjects"
)

type ParameterService struct{}

func NewParameterService() *ParameterService {
	return &ParameterService{}
}

type tryOnPayload struct {
	PersonImage  *string `json:"person_image"`
	GarmentType  string  `json:"garment_type"`
	GarmentColor string  `json:"garment_color"`
}

type measurementsPayload struct {
	PersonImage *string `json:"person_image"`
}

// ParseTryOn reads the JSON body of a try-on request. Garment fields are left
// empty when absent so the use case applies its defaults.
func (s *ParameterService) ParseTryOn(r *http.Request) (*usecases.TryOnInput, error) {
	var payload tryOnPayload
	if err := s.decode(r, &payload); err != nil {
		return nil, err
	}

	if payload.PersonImage == nil {
		return nil, fmt.Errorf("%w: missing person_image", valueobjects.ErrValidation)
	}

	return &usecases.TryOnInput{
		PersonImage:  *payload.PersonImage,
		GarmentType:  payload.GarmentType,
		GarmentColor: payload.GarmentColor,
	}, nil
}

func (s *ParameterService) ParseMeasurements(r *http.Request) (*usecases.MeasurementsInput, error) {
	var payload measurementsPayload
	if err := s.decode(r, &payload); err != nil {
		return nil, err
	}

	if payload.PersonImage == nil {
		return nil, fmt.Errorf("%w: missing person_image", valueobjects.ErrValidation)
	}

	return &usecases.MeasurementsInput{
		PersonImage: *payload.PersonImage,
	}, nil
}

// decode reports a body over the size cap as *http.MaxBytesError and any
// other unreadable body as ErrValidation.
func (s *ParameterService) decode(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: request body is required", valueobjects.ErrValidation)
	}

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return err
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: request body is required", valueobjects.ErrValidation)
	default:
		return fmt.Errorf("%w: malformed JSON body: %w", valueobjects.ErrValidation, err)
	}
}
