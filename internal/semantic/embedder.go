package semantic

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// DefaultEmbeddingDims matches the width of common sentence embedding models
const DefaultEmbeddingDims = 384

// Embedder turns texts into fixed-width vectors, one per input text
type Embedder interface {
	Embed(texts []string) ([][]float32, error)
	ModelName() string
}

// HashingEmbedder is a bag-of-words embedder using the signed hashing trick.
// Vectors are L2-normalized; text without tokens maps to the zero vector.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder creates an embedder producing vectors of the given width
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultEmbeddingDims
	}
	return &HashingEmbedder{dims: dims}
}

// ModelName identifies the embedding scheme in cache keys
func (e *HashingEmbedder) ModelName() string {
	return "hashing-fnv1a-" + strconv.Itoa(e.dims)
}

// Embed returns one normalized vector per text
func (e *HashingEmbedder) Embed(texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = e.embedOne(text)
	}
	return out, nil
}

func (e *HashingEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, e.dims)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		sum := h.Sum32()

		idx := int(sum % uint32(e.dims))
		if sum&(1<<31) != 0 {
			vec[idx]--
		} else {
			vec[idx]++
		}
	}
	normalize(vec)
	return vec
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}

// CosineSimilarity compares two vectors of equal width.
// Two zero vectors are identical (1); a zero vector against a non-zero one scores 0.
func CosineSimilarity(a, b []float32) float64 {
	n := min(len(a), len(b))
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
	}
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}

	switch {
	case normA == 0 && normB == 0:
		return 1
	case normA == 0 || normB == 0:
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
