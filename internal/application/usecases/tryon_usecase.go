package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"tryon-backend/internal/domain/entities"
	"tryon-backend/internal/domain/services"
	"tryon-backend/internal/domain/valueobjects"
)

type TryOnUseCase struct {
	domainService *services.TryOnDomainService
}

func NewTryOnUseCase(domainService *services.TryOnDomainService) *TryOnUseCase {
	return &TryOnUseCase{
		domainService: domainService,
	}
}

// TryOnInput is the transport-level request. PersonImage is bare base64 or a
// data URL; the garment fields are optional.
type TryOnInput struct {
	PersonImage  string
	GarmentType  string
	GarmentColor string
}

type TryOnOutput struct {
	RequestID   entities.TryOnRequestID
	ResultImage string // PNG data URL
	Method      valueobjects.Method
}

// Execute validates, decodes, runs the remote or fallback path and encodes the
// result as PNG. Remote failures never surface here; only bad input, an
// undecodable image or an internal fault does.
func (uc *TryOnUseCase) Execute(ctx context.Context, input TryOnInput) (output *TryOnOutput, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("try-on processing panicked", "panic", rec)
			output, err = nil, fmt.Errorf("try-on processing failed: %v", rec)
		}
	}()

	if strings.TrimSpace(input.PersonImage) == "" {
		return nil, fmt.Errorf("%w: missing person_image", valueobjects.ErrValidation)
	}

	garment, err := valueobjects.NewGarmentSpec(input.GarmentType, input.GarmentColor)
	if err != nil {
		return nil, err
	}

	imageData, err := valueobjects.NewImageDataFromTransport(input.PersonImage)
	if err != nil {
		return nil, fmt.Errorf("invalid person image: %w", err)
	}

	personImage, err := imageData.Decode()
	if err != nil {
		return nil, fmt.Errorf("invalid person image: %w", err)
	}

	request, err := entities.NewTryOnRequest(personImage, garment)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", valueobjects.ErrDecode, err)
	}

	slog.Info("Execute Try-On",
		"request_id", request.ID(),
		"garment_type", garment.Type(),
		"garment_color", garment.Color().Hex(),
		"input_format", imageData.Format())

	result, err := uc.domainService.ProcessTryOn(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("try-on processing failed: %w", err)
	}

	encoded, err := valueobjects.EncodePNG(result.Image())
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	slog.Info("Successfully processed try-on", "request_id", request.ID(), "method", result.Method())

	return &TryOnOutput{
		RequestID:   request.ID(),
		ResultImage: encoded.DataURL(),
		Method:      result.Method(),
	}, nil
}
