package entities

import (
	"image"
	"time"

	"github.com/google/uuid"

	"tryon-backend/internal/domain/valueobjects"
)

type TryOnResultID string

// TryOnResult is the produced image tagged with the path that produced it.
type TryOnResult struct {
	id        TryOnResultID
	requestID TryOnRequestID
	image     image.Image
	method    valueobjects.Method
	createdAt time.Time
}

func NewTryOnResult(requestID TryOnRequestID, img image.Image, method valueobjects.Method) *TryOnResult {
	return &TryOnResult{
		id:        TryOnResultID("result_" + uuid.NewString()),
		requestID: requestID,
		image:     img,
		method:    method,
		createdAt: time.Now(),
	}
}

func (r *TryOnResult) ID() TryOnResultID {
	return r.id
}

func (r *TryOnResult) RequestID() TryOnRequestID {
	return r.requestID
}

func (r *TryOnResult) Image() image.Image {
	return r.image
}

func (r *TryOnResult) Method() valueobjects.Method {
	return r.method
}

func (r *TryOnResult) CreatedAt() time.Time {
	return r.createdAt
}

func (r *TryOnResult) HasImage() bool {
	return r.image != nil && !r.image.Bounds().Empty()
}

func (r *TryOnResult) IsFallback() bool {
	return r.method == valueobjects.MethodFallbackOverlay
}
