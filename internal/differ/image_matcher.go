package differ

import (
	"github.com/aleister1102/pdfdiff/internal/imagehash"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/rs/zerolog"
)

// ImageMatcher pairs images of A with images of B by perceptual hash distance.
//
// Matching is greedy: each A image, in order, takes the closest B image still
// available. This is first-available-best, not a globally optimal assignment,
// so near-tied hashes can pair differently than a bipartite solver would.
// Ties go to the earliest remaining B. The distance threshold never rejects a
// match.
type ImageMatcher struct {
	logger zerolog.Logger
	config ImageMatcherConfig
	hasher imagehash.Hasher
}

// NewImageMatcher creates an ImageMatcher with default configuration
func NewImageMatcher(logger zerolog.Logger) *ImageMatcher {
	matcher, _ := NewImageMatcherBuilder(logger).Build()
	return matcher
}

// availableSet is an ordered set of B indices that can still be matched.
type availableSet struct {
	indices []int
}

func newAvailableSet(n int) *availableSet {
	s := &availableSet{indices: make([]int, n)}
	for i := range s.indices {
		s.indices[i] = i
	}
	return s
}

func (s *availableSet) remove(pos int) {
	s.indices = append(s.indices[:pos:pos], s.indices[pos+1:]...)
}

// Match pairs imagesA with imagesB. It never fails: assets that cannot be
// hashed end up unmatched.
func (im *ImageMatcher) Match(imagesA, imagesB []models.ImageAsset) models.ImageMatchResult {
	result := models.ImageMatchResult{
		Matches:           make([]models.ImageMatch, 0),
		UnmatchedA:        make([]models.ImageAsset, 0),
		UnmatchedB:        make([]models.ImageAsset, 0),
		DistanceThreshold: im.config.DistanceThreshold,
	}

	memo := imagehash.NewMemoHasher(im.hasher)
	available := newAvailableSet(len(imagesB))

	for ai, a := range imagesA {
		hashA, err := memo.HashAt(imagehash.SideA, ai, a)
		if err != nil {
			im.logger.Warn().Err(err).Str("image", a.Name).Int("page", a.PageNumber).Msg("Could not hash image from A, leaving it unmatched")
			result.UnmatchedA = append(result.UnmatchedA, a)
			continue
		}

		bestPos, bestDist := -1, 0
		for pos, bi := range available.indices {
			hashB, err := memo.HashAt(imagehash.SideB, bi, imagesB[bi])
			if err != nil {
				continue
			}
			dist, err := imagehash.Distance(hashA, hashB)
			if err != nil {
				continue
			}
			if bestPos < 0 || dist < bestDist {
				bestPos, bestDist = pos, dist
			}
		}

		if bestPos < 0 {
			result.UnmatchedA = append(result.UnmatchedA, a)
			continue
		}

		b := imagesB[available.indices[bestPos]]
		available.remove(bestPos)

		if bestDist > im.config.DistanceThreshold {
			im.logger.Debug().
				Str("image_a", a.Name).
				Str("image_b", b.Name).
				Int("distance", bestDist).
				Int("threshold", im.config.DistanceThreshold).
				Msg("Matched images above distance threshold")
		}

		result.Matches = append(result.Matches, models.ImageMatch{A: a, B: b, Distance: bestDist})
	}

	for _, bi := range available.indices {
		result.UnmatchedB = append(result.UnmatchedB, imagesB[bi])
	}

	im.logger.Debug().
		Int("matches", len(result.Matches)).
		Int("unmatched_a", len(result.UnmatchedA)).
		Int("unmatched_b", len(result.UnmatchedB)).
		Int("hashes_computed", memo.Computed()).
		Msg("Image matching complete")

	return result
}
