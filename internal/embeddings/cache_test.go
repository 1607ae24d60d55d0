package embeddings

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder returns a fixed vector per name and counts external calls.
type countingEmbedder struct {
	vectors map[string][]float64
	calls   atomic.Int64
}

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	e.calls.Add(1)
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float64{1, 2, 3}, nil
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float64, error) {
	return nil, errors.New("embedder must not be called")
}

func cachePaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "skills.json"), filepath.Join(dir, "embeddings.json")
}

func TestOpenMissingFilesStartsEmpty(t *testing.T) {
	skills, vectors := cachePaths(t)

	cache, err := Open(skills, vectors, &countingEmbedder{}, nil)

	require.NoError(t, err)
	assert.Zero(t, cache.Len())
}

func TestResolveCanonicalizesAndCaches(t *testing.T) {
	skills, vectors := cachePaths(t)
	embedder := &countingEmbedder{}
	cache, err := Open(skills, vectors, embedder, nil)
	require.NoError(t, err)

	ctx := context.Background()
	v1, err := cache.Resolve(ctx, "  Kubernetes ")
	require.NoError(t, err)
	v2, err := cache.Resolve(ctx, "kubernetes")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(1), embedder.calls.Load())
	assert.Equal(t, []string{"kubernetes"}, cache.Names())
}

func TestResolveEmptyNameFails(t *testing.T) {
	skills, vectors := cachePaths(t)
	cache, err := Open(skills, vectors, &countingEmbedder{}, nil)
	require.NoError(t, err)

	_, err = cache.Resolve(context.Background(), "   ")
	assert.Error(t, err)
}

func TestResolveConcurrentEmbedsExactlyOnce(t *testing.T) {
	skills, vectors := cachePaths(t)
	embedder := &countingEmbedder{}
	cache, err := Open(skills, vectors, embedder, nil)
	require.NoError(t, err)

	const goroutines = 32
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := cache.Resolve(context.Background(), "terraform")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// The lock is held across the external call: one embed, one entry.
	assert.Equal(t, int64(1), embedder.calls.Load())
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, []string{"terraform"}, cache.Names())
}

func TestFlushRoundTrip(t *testing.T) {
	skills, vectors := cachePaths(t)
	embedder := &countingEmbedder{vectors: map[string][]float64{
		"go":  {1, 0},
		"sql": {0, 1},
	}}
	cache, err := Open(skills, vectors, embedder, nil)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = cache.Resolve(ctx, "Go")
	require.NoError(t, err)
	_, err = cache.Resolve(ctx, "SQL")
	require.NoError(t, err)
	require.NoError(t, cache.Flush())

	// A reopened cache serves both names without touching the embedder.
	reopened, err := Open(skills, vectors, failingEmbedder{}, nil)
	require.NoError(t, err)
	v, err := reopened.Resolve(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, v)
	v, err = reopened.Resolve(ctx, "sql")
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1}, v)
}

func TestFlushCleanCacheWritesNothing(t *testing.T) {
	skills, vectors := cachePaths(t)
	cache, err := Open(skills, vectors, &countingEmbedder{}, nil)
	require.NoError(t, err)

	require.NoError(t, cache.Flush())

	_, err = os.Stat(skills)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenRejectsMismatchedPair(t *testing.T) {
	skills, vectors := cachePaths(t)

	names, _ := json.Marshal([]string{"go", "sql"})
	matrix, _ := json.Marshal([][]float64{{1, 0}})
	require.NoError(t, os.WriteFile(skills, names, 0o644))
	require.NoError(t, os.WriteFile(vectors, matrix, 0o644))

	_, err := Open(skills, vectors, &countingEmbedder{}, nil)
	assert.ErrorContains(t, err, "out of sync")
}
