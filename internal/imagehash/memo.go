package imagehash

import (
	"sync"

	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/corona10/goimagehash"
)

// Side identifies which document an asset came from.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

type memoKey struct {
	side  Side
	index int
}

type memoEntry struct {
	hash *goimagehash.ImageHash
	err  error
}

// MemoHasher caches hash results per (side, index) so each asset is hashed once.
// Failures are cached as well.
type MemoHasher struct {
	hasher Hasher
	mu     sync.Mutex
	cache  map[memoKey]memoEntry
	misses int
}

// NewMemoHasher wraps hasher with a per-comparison cache.
func NewMemoHasher(hasher Hasher) *MemoHasher {
	if hasher == nil {
		hasher = NewPerceptualHasher()
	}
	return &MemoHasher{
		hasher: hasher,
		cache:  make(map[memoKey]memoEntry),
	}
}

// HashAt returns the hash of the asset at index on the given side.
func (m *MemoHasher) HashAt(side Side, index int, asset models.ImageAsset) (*goimagehash.ImageHash, error) {
	key := memoKey{side: side, index: index}

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.cache[key]; ok {
		return entry.hash, entry.err
	}

	hash, err := m.hasher.Hash(asset)
	m.cache[key] = memoEntry{hash: hash, err: err}
	m.misses++
	return hash, err
}

// Computed returns how many hashes were actually computed.
func (m *MemoHasher) Computed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses
}
