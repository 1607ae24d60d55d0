// Package embeddings maintains the skill-name to embedding-vector lookup.
// The table is seeded from a persisted file pair, grows append-only as new
// skill names are first seen, and is shared across concurrent scoring runs.
package embeddings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Embedder is the slice of the LLM client the cache needs.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Cache resolves a skill name to its embedding vector with at most one
// external embedding call per distinct name per process lifetime. The mutex
// is held across the external call so a concurrent run asking for the same
// new name waits instead of embedding it twice.
type Cache struct {
	mu      sync.Mutex
	names   []string
	index   map[string]int
	vectors [][]float64
	dirty   bool

	embedder    Embedder
	skillsPath  string
	vectorsPath string
	logger      *zap.Logger
}

// Open loads the persisted skill list and vector matrix, if present, and
// returns a cache backed by them. Row i of the matrix always corresponds to
// index i of the name list; a length mismatch means the pair is corrupt.
func Open(skillsPath, vectorsPath string, embedder Embedder, logger *zap.Logger) (*Cache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Cache{
		index:       make(map[string]int),
		embedder:    embedder,
		skillsPath:  skillsPath,
		vectorsPath: vectorsPath,
		logger:      logger,
	}

	namesData, err := os.ReadFile(skillsPath)
	if os.IsNotExist(err) {
		logger.Info("no persisted skill lookup, starting empty", zap.String("path", skillsPath))
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read skill list %s: %w", skillsPath, err)
	}
	if err := json.Unmarshal(namesData, &c.names); err != nil {
		return nil, fmt.Errorf("failed to parse skill list: %w", err)
	}

	vectorsData, err := os.ReadFile(vectorsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding matrix %s: %w", vectorsPath, err)
	}
	if err := json.Unmarshal(vectorsData, &c.vectors); err != nil {
		return nil, fmt.Errorf("failed to parse embedding matrix: %w", err)
	}

	if len(c.names) != len(c.vectors) {
		return nil, fmt.Errorf("skill list and embedding matrix out of sync: %d names, %d vectors",
			len(c.names), len(c.vectors))
	}

	for i, name := range c.names {
		c.index[name] = i
	}
	logger.Info("loaded skill embedding lookup", zap.Int("skills", len(c.names)))
	return c, nil
}

// Resolve returns the embedding vector for a skill name, embedding and
// appending it on a miss. Names are canonicalized to lower case. An embedding
// failure propagates to the caller; there is no silent default vector.
func (c *Cache) Resolve(ctx context.Context, name string) ([]float64, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil, fmt.Errorf("empty skill name")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if i, ok := c.index[key]; ok {
		return c.vectors[i], nil
	}

	c.logger.Debug("skill not in lookup, embedding", zap.String("skill", key))
	vector, err := c.embedder.Embed(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to embed skill %q: %w", key, err)
	}

	c.index[key] = len(c.names)
	c.names = append(c.names, key)
	c.vectors = append(c.vectors, vector)
	c.dirty = true
	return vector, nil
}

// Flush writes the name list and vector matrix back to disk when the table
// has grown since the last flush. Both files are rewritten on the same flush
// so row i keeps matching name i; each write goes through a temp file rename.
func (c *Cache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}

	namesData, err := json.Marshal(c.names)
	if err != nil {
		return fmt.Errorf("failed to marshal skill list: %w", err)
	}
	vectorsData, err := json.Marshal(c.vectors)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding matrix: %w", err)
	}

	if err := writeFileAtomic(c.vectorsPath, vectorsData); err != nil {
		return fmt.Errorf("failed to write embedding matrix: %w", err)
	}
	if err := writeFileAtomic(c.skillsPath, namesData); err != nil {
		return fmt.Errorf("failed to write skill list: %w", err)
	}

	c.dirty = false
	c.logger.Info("flushed skill embedding lookup", zap.Int("skills", len(c.names)))
	return nil
}

// Len returns the number of distinct skills in the lookup.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.names)
}

// Names returns a copy of the persisted name list, in index order.
func (c *Cache) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
