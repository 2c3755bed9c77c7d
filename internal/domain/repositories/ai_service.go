package repositories

import (
	"context"

	"tryon-backend/internal/domain/entities"
	"tryon-backend/internal/domain/valueobjects"
)

// Remote try-on provider. Implementations make exactly one network attempt
// per call and report every failure as an error wrapping
// valueobjects.ErrRemoteCall.
type TryOnAIService interface {
	Method() valueobjects.Method

	GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error)

	Close() error
}
