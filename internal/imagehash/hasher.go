package imagehash

import (
	"bytes"
	"fmt"
	"image"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/corona10/goimagehash"
)

// Hasher computes a perceptual descriptor for an image asset.
type Hasher interface {
	Hash(asset models.ImageAsset) (*goimagehash.ImageHash, error)
}

// DecodeError reports that an asset's bytes could not be turned into a hash.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to hash image '%s': %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PerceptualHasher computes a 64-bit DCT perceptual hash.
type PerceptualHasher struct{}

// NewPerceptualHasher creates a new PerceptualHasher
func NewPerceptualHasher() *PerceptualHasher {
	return &PerceptualHasher{}
}

// Hash decodes the asset bytes and computes its pHash.
func (ph *PerceptualHasher) Hash(asset models.ImageAsset) (*goimagehash.ImageHash, error) {
	img, err := Decode(asset.Data)
	if err != nil {
		return nil, &DecodeError{Name: asset.Name, Err: err}
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, &DecodeError{Name: asset.Name, Err: err}
	}
	return hash, nil
}

// Decode decodes raw image bytes in any registered format.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Distance returns the Hamming distance between two hashes.
func Distance(a, b *goimagehash.ImageHash) (int, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("cannot compare nil hash")
	}
	return a.Distance(b)
}
