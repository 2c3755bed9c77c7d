package usecases

import (
	"context"
	"fmt"
	"strings"

	"tryon-backend/internal/domain/valueobjects"
)

type MeasurementsUseCase struct{}

func NewMeasurementsUseCase() *MeasurementsUseCase {
	return &MeasurementsUseCase{}
}

type MeasurementsInput struct {
	PersonImage string
}

// Execute returns placeholder measurements. The image must be present but is
// not inspected.
func (uc *MeasurementsUseCase) Execute(ctx context.Context, input MeasurementsInput) (valueobjects.Measurements, error) {
	if strings.TrimSpace(input.PersonImage) == "" {
		return valueobjects.Measurements{}, fmt.Errorf("%w: missing person_image", valueobjects.ErrValidation)
	}
	return valueobjects.DefaultMeasurements(), nil
}
