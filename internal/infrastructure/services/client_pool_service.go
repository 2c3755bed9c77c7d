package services

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"

	"tryon-backend/internal/domain/repositories"
)

// GenAI Client Pool implementation
type genAIClientPool struct {
	config *repositories.GenAIClientConfig
	client *genai.Client
	mutex  sync.RWMutex
}

func NewGenAIClientPool(config *repositories.GenAIClientConfig) repositories.GenAIClientPool {
	return &genAIClientPool{
		config: config,
	}
}

func (p *genAIClientPool) GetGenAIClient(ctx context.Context) (*genai.Client, error) {
	p.mutex.RLock()
	if p.client != nil {
		defer p.mutex.RUnlock()
		return p.client, nil
	}
	p.mutex.RUnlock()

	p.mutex.Lock()
	defer p.mutex.Unlock()

	// double-checked
	if p.client != nil {
		return p.client, nil
	}

	if p.config == nil || p.config.APIKey == "" {
		return nil, fmt.Errorf("GenAI API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  p.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: p.config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	p.client = client
	return p.client, nil
}

func (p *genAIClientPool) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	// genai.Client holds no resources of its own
	p.client = nil
	return nil
}
