package semantic

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"io"
	"math"
	"strings"
	"sync/atomic"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/dgraph-io/badger/v4"
	"github.com/pierrec/lz4/v4"
	"github.com/rs/zerolog"
)

// CachedEmbedder memoizes embeddings of whole text batches in a Badger store.
// Values are float32 little-endian matrices compressed with LZ4.
type CachedEmbedder struct {
	inner  Embedder
	db     *badger.DB
	logger zerolog.Logger
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCachedEmbedder opens the cache under dir, or in memory when dir is empty
func NewCachedEmbedder(inner Embedder, dir string, logger zerolog.Logger) (*CachedEmbedder, error) {
	if inner == nil {
		return nil, common.NewValidationError("embedder", nil, "inner embedder is required")
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, common.WrapError(err, "failed to open embedding cache")
	}

	return &CachedEmbedder{
		inner:  inner,
		db:     db,
		logger: logger.With().Str("component", "EmbeddingCache").Logger(),
	}, nil
}

// ModelName reports the wrapped embedder's model
func (c *CachedEmbedder) ModelName() string {
	return c.inner.ModelName()
}

// Embed returns cached vectors for the batch or computes and stores them.
// Cache failures are logged and never fail the call.
func (c *CachedEmbedder) Embed(texts []string) ([][]float32, error) {
	key := CacheKey(texts, c.inner.ModelName())

	if vectors, ok := c.load(key); ok && len(vectors) == len(texts) {
		c.hits.Add(1)
		return vectors, nil
	}
	c.misses.Add(1)

	vectors, err := c.inner.Embed(texts)
	if err != nil {
		return nil, err
	}

	if err := c.store(key, vectors); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Failed to store embeddings in cache")
	}
	return vectors, nil
}

// Stats returns cache hits and misses since creation
func (c *CachedEmbedder) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Close releases the underlying store
func (c *CachedEmbedder) Close() error {
	return c.db.Close()
}

func (c *CachedEmbedder) load(key string) ([][]float32, bool) {
	var vectors [][]float32
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decodeVectors(val)
			if err != nil {
				return err
			}
			vectors = decoded
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			c.logger.Debug().Err(err).Str("key", key).Msg("Ignoring unreadable cache entry")
		}
		return nil, false
	}
	return vectors, true
}

func (c *CachedEmbedder) store(key string, vectors [][]float32) error {
	encoded, err := encodeVectors(vectors)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), encoded)
	})
}

// CacheKey is the sha1 of the texts, each followed by a NUL byte, plus the model name
func CacheKey(texts []string, modelName string) string {
	h := sha1.New()
	for _, text := range texts {
		_, _ = h.Write([]byte(text))
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)) + "_" + strings.ReplaceAll(modelName, "/", "_")
}

func encodeVectors(vectors [][]float32) ([]byte, error) {
	dims := 0
	if len(vectors) > 0 {
		dims = len(vectors[0])
	}

	raw := make([]byte, 8, 8+len(vectors)*dims*4)
	binary.LittleEndian.PutUint32(raw[0:4], uint32(len(vectors)))
	binary.LittleEndian.PutUint32(raw[4:8], uint32(dims))
	for _, vec := range vectors {
		if len(vec) != dims {
			return nil, common.NewValidationError("vectors", len(vec), "ragged embedding matrix")
		}
		for _, v := range vec {
			raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(v))
		}
	}

	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)
	if _, err := writer.Write(raw); err != nil {
		return nil, common.WrapError(err, "compression failed")
	}
	if err := writer.Close(); err != nil {
		return nil, common.WrapError(err, "compression failed")
	}
	return buf.Bytes(), nil
}

func decodeVectors(data []byte) ([][]float32, error) {
	raw, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, common.WrapError(err, "decompression failed")
	}
	if len(raw) < 8 {
		return nil, common.NewError("cache entry too short: %d bytes", len(raw))
	}

	rows := int(binary.LittleEndian.Uint32(raw[0:4]))
	dims := int(binary.LittleEndian.Uint32(raw[4:8]))
	body := raw[8:]
	if len(body) != rows*dims*4 {
		return nil, common.NewError("cache entry size mismatch: %d rows x %d dims in %d bytes", rows, dims, len(body))
	}

	vectors := make([][]float32, rows)
	for r := range vectors {
		vec := make([]float32, dims)
		for d := range vec {
			off := (r*dims + d) * 4
			vec[d] = math.Float32frombits(binary.LittleEndian.Uint32(body[off : off+4]))
		}
		vectors[r] = vec
	}
	return vectors, nil
}
