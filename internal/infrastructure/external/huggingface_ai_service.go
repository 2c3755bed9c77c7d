package external

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"tryon-backend/internal/domain/entities"
	"tryon-backend/internal/domain/repositories"
	"tryon-backend/internal/domain/valueobjects"
	"tryon-backend/model"
)

// maxResponseBytes bounds how much of a provider response is read into memory.
const maxResponseBytes = 32 << 20

type HuggingFaceAIService struct {
	url         string
	tokenSource oauth2.TokenSource
	client      *http.Client
	catalog     *valueobjects.GarmentCatalog
}

// NewHuggingFaceAIService builds the default remote provider. The API key is
// sent as a bearer token; there is no built-in key.
func NewHuggingFaceAIService(apiKey, url string, timeout time.Duration, catalog *valueobjects.GarmentCatalog) (repositories.TryOnAIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("hugging face API key is required")
	}
	if url == "" {
		return nil, fmt.Errorf("hugging face endpoint URL is required")
	}
	if catalog == nil {
		catalog = valueobjects.DefaultCatalog()
	}

	return &HuggingFaceAIService{
		url:         url,
		tokenSource: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"}),
		client:      &http.Client{Timeout: timeout},
		catalog:     catalog,
	}, nil
}

func (s *HuggingFaceAIService) Method() valueobjects.Method {
	return valueobjects.MethodHuggingFace
}

// GenerateTryOn makes exactly one POST. Every failure wraps ErrRemoteCall.
func (s *HuggingFaceAIService) GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	personJPEG, err := request.PersonJPEG()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", valueobjects.ErrRemoteCall, err)
	}

	apiRequest := model.HuggingFaceRequest{
		Inputs: model.HuggingFaceInputs{
			Image:          personJPEG.ToBase64(),
			Prompt:         s.catalog.Prompt(request.Garment()),
			NegativePrompt: s.catalog.NegativePrompt,
		},
	}

	reqBody, err := json.Marshal(apiRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %w", valueobjects.ErrRemoteCall, err)
	}

	slog.Debug("Hugging Face request",
		"request_id", request.ID(),
		"prompt", apiRequest.Inputs.Prompt,
		"image_bytes", len(personJPEG.Data()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", valueobjects.ErrRemoteCall, err)
	}

	token, err := s.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get access token: %w", valueobjects.ErrRemoteCall, err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to send request: %w", valueobjects.ErrRemoteCall, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", valueobjects.ErrRemoteCall, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: API request failed with status %d: %s",
			valueobjects.ErrRemoteCall, resp.StatusCode, s.describeError(respBody))
	}

	imageData, err := valueobjects.NewImageData(respBody)
	if err != nil {
		return nil, fmt.Errorf("%w: response is not an image: %w", valueobjects.ErrRemoteCall, err)
	}

	img, err := imageData.Decode()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", valueobjects.ErrRemoteCall, err)
	}

	slog.Info("Hugging Face image generated",
		"request_id", request.ID(),
		"format", imageData.Format(),
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy())

	return entities.NewTryOnResult(request.ID(), img, valueobjects.MethodHuggingFace), nil
}

// describeError prefers the provider's JSON error message and falls back to
// the raw body, truncated.
func (s *HuggingFaceAIService) describeError(body []byte) string {
	var apiErr model.HuggingFaceErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return apiErr.String()
	}

	const maxLen = 200
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}

func (s *HuggingFaceAIService) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
