package imagehash

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/nfnt/resize"
)

// DefaultThumbnailSize is the bounding box edge used for report thumbnails.
const DefaultThumbnailSize = 256

// Thumbnail scales the image to fit a maxSize box and returns it as base64 PNG.
func Thumbnail(data []byte, maxSize uint) (string, error) {
	if maxSize == 0 {
		maxSize = DefaultThumbnailSize
	}

	img, err := Decode(data)
	if err != nil {
		return "", common.WrapError(err, "failed to decode image for thumbnail")
	}

	thumb := resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		return "", common.WrapError(err, "failed to encode thumbnail")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Dimensions returns the pixel size of the encoded image without decoding pixel data.
func Dimensions(data []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
