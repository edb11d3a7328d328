package embedder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexgraph/lexgraph/pkg/embedder"
)

// fakeClient implements embedder.Client with scripted behavior.
type fakeClient struct {
	err    error
	vector []float32
	calls  int
	closed bool
}

func (f *fakeClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = f.vector
	}
	return vectors, nil
}

func (f *fakeClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeClient) Dimensions() int { return len(f.vector) }

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestCircuitBreakerPassesThrough(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{vector: []float32{0.1, 0.2}}
	client := embedder.NewCircuitBreakerClient(fake, embedder.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Timeout:          60,
		ReadyToTripRatio: 0.6,
	}, nil)

	vector, err := client.EmbedSingle(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2}, vector)

	vectors, err := client.Embed(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)

	assert.Equal(t, 2, client.Dimensions())
	require.NoError(t, client.Close())
	assert.True(t, fake.closed)
}

func TestCircuitBreakerOpensAfterFailures(t *testing.T) {
	t.Parallel()

	fake := &fakeClient{err: errors.New("provider down")}
	client := embedder.NewCircuitBreakerClient(fake, embedder.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Timeout:          60,
		ReadyToTripRatio: 0.6,
	}, nil)

	// Three consecutive failures trip the breaker.
	for i := 0; i < 3; i++ {
		_, err := client.EmbedSingle(context.Background(), "hello")
		require.Error(t, err)
	}
	callsBeforeOpen := fake.calls

	// Subsequent calls short-circuit without reaching the provider.
	_, err := client.EmbedSingle(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, callsBeforeOpen, fake.calls)
}
