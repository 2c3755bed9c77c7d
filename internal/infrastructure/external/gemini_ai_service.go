package external

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"tryon-backend/internal/domain/entities"
	"tryon-backend/internal/domain/repositories"
	"tryon-backend/internal/domain/valueobjects"
)

type GeminiAIService struct {
	clientPool repositories.GenAIClientPool
	model      string
	catalog    *valueobjects.GarmentCatalog
}

func NewGeminiAIService(clientPool repositories.GenAIClientPool, model string, catalog *valueobjects.GarmentCatalog) repositories.TryOnAIService {
	if catalog == nil {
		catalog = valueobjects.DefaultCatalog()
	}
	return &GeminiAIService{
		clientPool: clientPool,
		model:      model,
		catalog:    catalog,
	}
}

func (s *GeminiAIService) Method() valueobjects.Method {
	return valueobjects.MethodGemini
}

// GenerateTryOn sends the subject as an inline JPEG together with the garment
// prompt and takes the first inline image of the first candidate.
func (s *GeminiAIService) GenerateTryOn(ctx context.Context, request *entities.TryOnRequest) (*entities.TryOnResult, error) {
	client, err := s.clientPool.GetGenAIClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", valueobjects.ErrRemoteCall, err)
	}

	personJPEG, err := request.PersonJPEG()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", valueobjects.ErrRemoteCall, err)
	}

	prompt := s.buildPrompt(request)
	slog.Info("GenerateTryOn", "model", s.model, "request_id", request.ID(), "prompt", prompt)

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		{
			InlineData: &genai.Blob{
				MIMEType: personJPEG.MimeType(),
				Data:     personJPEG.Data(),
			},
		},
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	// the image preview models reject multiple candidates
	resp, err := client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate content: %w", valueobjects.ErrRemoteCall, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no candidates in response", valueobjects.ErrRemoteCall)
	}

	slog.Info("Gemini API response",
		"candidatesCount", len(resp.Candidates),
		"partsCount", len(resp.Candidates[0].Content.Parts))

	for i, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil {
			if part.Text != "" {
				slog.Debug("Gemini text part", "index", i, "text", part.Text)
			}
			continue
		}

		imageData, err := valueobjects.NewImageData(part.InlineData.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to create image data: %w", valueobjects.ErrRemoteCall, err)
		}

		img, err := imageData.Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", valueobjects.ErrRemoteCall, err)
		}

		slog.Info("Gemini image generated", "request_id", request.ID(), "mimeType", part.InlineData.MIMEType)
		return entities.NewTryOnResult(request.ID(), img, valueobjects.MethodGemini), nil
	}

	slog.Warn("No image data in response", "request_id", request.ID(), "responseText", resp.Text())
	return nil, fmt.Errorf("%w: no image data received from Gemini API", valueobjects.ErrRemoteCall)
}

func (s *GeminiAIService) buildPrompt(request *entities.TryOnRequest) string {
	prompt := "Edit this photo into a " + s.catalog.Prompt(request.Garment()) + ". Keep the person and the background unchanged."
	if s.catalog.NegativePrompt != "" {
		prompt += " Avoid: " + s.catalog.NegativePrompt + "."
	}
	return prompt
}

func (s *GeminiAIService) Close() error {
	return s.clientPool.Close()
}
