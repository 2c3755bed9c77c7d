package repositories

import (
	"context"

	"google.golang.org/genai"
)

// GenAI client settings shared by every caller of the pool.
type GenAIClientConfig struct {
	APIKey  string
	BaseURL string
}

// GenAI Client Pool
// Builds the Gemini client once, on first use.
type GenAIClientPool interface {
	GetGenAIClient(ctx context.Context) (*genai.Client, error)

	Close() error
}
