package valueobjects

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"
	"unicode"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

type ImageFormat string

const (
	JPEG ImageFormat = "jpeg"
	PNG  ImageFormat = "png"
	GIF  ImageFormat = "gif"
	WEBP ImageFormat = "webp"
	BMP  ImageFormat = "bmp"
	TIFF ImageFormat = "tiff"
)

const (
	base64Marker = "base64,"
	jpegQuality  = 90

	// MaxImagePixels caps width*height of an accepted image. The header is
	// checked before any pixel buffer is allocated.
	MaxImagePixels = 40_000_000
)

// ImageData is an encoded image together with its detected format.
type ImageData struct {
	data   []byte
	format ImageFormat
}

func NewImageData(data []byte) (*ImageData, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("image data cannot be empty")
	}

	format, cfg, err := detectFormat(data)
	if err != nil {
		return nil, fmt.Errorf("unsupported image format: %w", err)
	}

	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > MaxImagePixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrDecode, cfg.Width, cfg.Height, MaxImagePixels)
	}

	return &ImageData{
		data:   data,
		format: format,
	}, nil
}

// NewImageDataFromTransport accepts either bare base64 or a data URL such as
// "data:image/jpeg;base64,<payload>". Everything up to and including the first
// "base64," marker is discarded.
func NewImageDataFromTransport(s string) (*ImageData, error) {
	payload := strings.TrimSpace(s)
	if i := strings.Index(payload, base64Marker); i >= 0 {
		payload = payload[i+len(base64Marker):]
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 payload: %w", ErrDecode, err)
	}

	imageData, err := NewImageData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return imageData, nil
}

// EncodePNG serializes img losslessly. This is the only format the API emits.
func EncodePNG(img image.Image) (*ImageData, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}

	return &ImageData{
		data:   buf.Bytes(),
		format: PNG,
	}, nil
}

// EncodeJPEG serializes img for providers that expect a photographic format.
// Any alpha channel is dropped.
func EncodeJPEG(img image.Image) (*ImageData, error) {
	if img == nil {
		return nil, fmt.Errorf("image is nil")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	return &ImageData{
		data:   buf.Bytes(),
		format: JPEG,
	}, nil
}

func (i *ImageData) Data() []byte {
	return i.data
}

func (i *ImageData) Format() ImageFormat {
	return i.format
}

func (i *ImageData) MimeType() string {
	return "image/" + string(i.format)
}

func (i *ImageData) IsJPEG() bool {
	return i.format == JPEG
}

// Decode parses the bytes into pixels, applying any EXIF orientation so phone
// photos come out upright.
func (i *ImageData) Decode() (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(i.data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

func (i *ImageData) ToBase64() string {
	return base64.StdEncoding.EncodeToString(i.data)
}

func (i *ImageData) DataURL() string {
	return "data:" + i.MimeType() + ";" + base64Marker + i.ToBase64()
}

func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}

	// Unpadded payloads are common from browser clients.
	if raw, rawErr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rawErr == nil {
		return raw, nil
	}
	return nil, err
}

func detectFormat(data []byte) (ImageFormat, image.Config, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", cfg, err
	}

	switch format {
	case "jpeg":
		return JPEG, cfg, nil
	case "png":
		return PNG, cfg, nil
	case "gif":
		return GIF, cfg, nil
	case "webp":
		return WEBP, cfg, nil
	case "bmp":
		return BMP, cfg, nil
	case "tiff":
		return TIFF, cfg, nil
	default:
		return "", cfg, fmt.Errorf("unsupported format: %s", format)
	}
}
