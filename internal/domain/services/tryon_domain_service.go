package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tryon-backend/internal/domain/entities"
	"tryon-backend/internal/domain/repositories"
	"tryon-backend/internal/domain/valueobjects"
)

var errRemoteDisabled = errors.New("no remote provider configured")

type TryOnDomainService struct {
	aiService repositories.TryOnAIService
	renderer  *OverlayRenderer
}

// NewTryOnDomainService wires the remote provider and the local fallback.
// aiService may be nil, in which case every request uses the overlay.
func NewTryOnDomainService(aiService repositories.TryOnAIService, renderer *OverlayRenderer) *TryOnDomainService {
	if renderer == nil {
		renderer = NewOverlayRenderer(nil)
	}
	return &TryOnDomainService{
		aiService: aiService,
		renderer:  renderer,
	}
}

// ProcessTryOn makes one remote attempt and falls back to the overlay on any
// failure. Only an invalid request is reported as an error.
func (s *TryOnDomainService) ProcessTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	if err := s.validateRequest(request); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	result, err := s.attemptRemote(ctx, request)
	if err == nil {
		slog.Info("remote try-on succeeded", "request_id", request.ID(), "method", result.Method())
		return result, nil
	}

	switch {
	case errors.Is(err, errRemoteDisabled):
		slog.Debug("remote try-on skipped", "request_id", request.ID())
	case s.isQuotaError(err):
		slog.Warn("remote provider busy, falling back to overlay", "request_id", request.ID(), "error", err)
	default:
		slog.Warn("remote try-on failed, falling back to overlay", "request_id", request.ID(), "error", err)
	}

	garment := request.Garment()
	rendered := s.renderer.Render(request.PersonImage(), garment.Type(), garment.Color())

	return entities.NewTryOnResult(request.ID(), rendered, valueobjects.MethodFallbackOverlay), nil
}

func (s *TryOnDomainService) attemptRemote(ctx context.Context, request *entities.TryOnRequest) (result *entities.TryOnResult, err error) {
	if s.aiService == nil {
		return nil, errRemoteDisabled
	}

	defer func() {
		if rec := recover(); rec != nil {
			result, err = nil, fmt.Errorf("%w: provider panicked: %v", valueobjects.ErrRemoteCall, rec)
		}
	}()

	result, err = s.aiService.GenerateTryOn(ctx, request)
	if err != nil {
		return nil, err
	}

	if result == nil || !result.HasImage() {
		return nil, fmt.Errorf("%w: no image generated", valueobjects.ErrRemoteCall)
	}

	return result, nil
}

func (s *TryOnDomainService) validateRequest(request *entities.TryOnRequest) error {
	if request == nil {
		return fmt.Errorf("%w: request is required", valueobjects.ErrValidation)
	}

	if request.PersonImage() == nil {
		return fmt.Errorf("%w: person image is required", valueobjects.ErrValidation)
	}

	if request.Garment() == nil {
		return fmt.Errorf("%w: garment is required", valueobjects.ErrValidation)
	}

	return nil
}

func (s *TryOnDomainService) isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "quota exceeded") ||
		strings.Contains(errStr, "resourceexhausted") ||
		strings.Contains(errStr, "status 429") ||
		strings.Contains(errStr, "status 503")
}
