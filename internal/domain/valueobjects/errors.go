package valueobjects

import "errors"

var (
	// ErrValidation marks a malformed or incomplete client payload.
	ErrValidation = errors.New("validation failed")

	// ErrDecode marks a subject image that cannot be decoded.
	ErrDecode = errors.New("image decode failed")

	// ErrRemoteCall marks any failure of the remote try-on provider. It never
	// reaches the caller; the request degrades to the overlay fallback.
	ErrRemoteCall = errors.New("remote try-on call failed")

	// ErrRender marks an overlay drawing failure. The renderer degrades to the
	// original image.
	ErrRender = errors.New("overlay render failed")
)
