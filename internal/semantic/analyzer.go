package semantic

import (
	"fmt"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
)

// DefaultSimilarityThreshold flags aligned pages scoring below it
const DefaultSimilarityThreshold = 0.85

// Analyzer flags aligned pages whose embeddings drift apart
type Analyzer struct {
	logger    zerolog.Logger
	embedder  Embedder
	threshold float64
}

// NewAnalyzer creates an analyzer; a nil embedder uses the hashing embedder
func NewAnalyzer(logger zerolog.Logger, embedder Embedder, threshold float64) *Analyzer {
	if embedder == nil {
		embedder = NewHashingEmbedder(DefaultEmbeddingDims)
	}
	if threshold <= 0 {
		threshold = DefaultSimilarityThreshold
	}
	return &Analyzer{
		logger:    logger.With().Str("component", "SemanticAnalyzer").Logger(),
		embedder:  embedder,
		threshold: threshold,
	}
}

// Flags compares pages by position up to the shorter document.
// Pages below the threshold get a flag with their 1-based position, and a
// page count difference adds a trailing note.
func (a *Analyzer) Flags(pagesA, pagesB []models.PageText) ([]models.SemanticFlag, error) {
	embA, err := a.embedder.Embed(pageTexts(pagesA))
	if err != nil {
		return nil, common.WrapError(err, "failed to embed pages of A")
	}
	embB, err := a.embedder.Embed(pageTexts(pagesB))
	if err != nil {
		return nil, common.WrapError(err, "failed to embed pages of B")
	}

	flags := []models.SemanticFlag{}
	n := min(len(embA), len(embB))
	for i := 0; i < n; i++ {
		sim := CosineSimilarity(embA[i], embB[i])
		if sim < a.threshold {
			flags = append(flags, models.SemanticFlag{
				Page:       models.IntPtr(i + 1),
				Similarity: models.Float64Ptr(sim),
			})
		}
	}

	if len(embA) != len(embB) {
		flags = append(flags, models.SemanticFlag{
			Note: fmt.Sprintf("page count mismatch: %d vs %d", len(embA), len(embB)),
		})
	}

	a.logger.Debug().
		Int("pages_compared", n).
		Int("flags", len(flags)).
		Float64("threshold", a.threshold).
		Msg("Semantic comparison finished")

	return flags, nil
}

func pageTexts(pages []models.PageText) []string {
	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	return texts
}
