package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"tryon-backend/internal/domain/repositories"
)

func TestGenAIClientPool_ReusesClient(t *testing.T) {
	pool := NewGenAIClientPool(&repositories.GenAIClientConfig{
		APIKey:  "test-key",
		BaseURL: "http://127.0.0.1:1",
	})
	defer pool.Close()

	const workers = 8
	clients := make([]*genai.Client, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			client, err := pool.GetGenAIClient(context.Background())
			assert.NoError(t, err)
			clients[i] = client
		}(i)
	}
	wg.Wait()

	require.NotNil(t, clients[0])
	for _, c := range clients[1:] {
		assert.Same(t, clients[0], c)
	}

	require.NoError(t, pool.Close())
	fresh, err := pool.GetGenAIClient(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, clients[0], fresh)
}

func TestGenAIClientPool_RequiresKey(t *testing.T) {
	pool := NewGenAIClientPool(&repositories.GenAIClientConfig{})

	client, err := pool.GetGenAIClient(context.Background())
	assert.Error(t, err)
	assert.Nil(t, client)
}
