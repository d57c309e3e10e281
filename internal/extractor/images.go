package extractor

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/imagehash"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExtractImages returns the embedded images of the document in page order.
// Images are named p{page}_img{n}.{ext}, n counting from 1 per page.
func (e *PDFExtractor) ExtractImages(path string) (assets []models.ImageAsset, err error) {
	defer recoverStage(path, "images", &err)

	file, err := os.Open(path)
	if err != nil {
		return nil, common.NewExtractionError(path, "images", err)
	}
	defer func() { _ = file.Close() }()

	pageImages, err := api.ExtractImagesRaw(file, nil, NewPDFConfiguration())
	if err != nil {
		return nil, common.NewExtractionError(path, "images", err)
	}

	var raw []model.Image
	for _, byObj := range pageImages {
		objNrs := make([]int, 0, len(byObj))
		for objNr := range byObj {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)
		for _, objNr := range objNrs {
			raw = append(raw, byObj[objNr])
		}
	}
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].PageNr < raw[j].PageNr })

	assets = make([]models.ImageAsset, 0, len(raw))
	perPage := make(map[int]int)
	for _, img := range raw {
		page := img.PageNr
		if page < 1 {
			page = 1
		}
		perPage[page]++

		data, readErr := io.ReadAll(img)
		if readErr != nil {
			e.logger.Warn().Err(readErr).Int("page", page).Msg("Could not read image stream, skipping")
			continue
		}

		asset := models.ImageAsset{
			PageNumber: page,
			Name:       fmt.Sprintf("p%d_img%d.%s", page, perPage[page], imageExtension(img.FileType)),
			Data:       data,
		}
		e.describeImage(&asset, img.Width, img.Height)
		assets = append(assets, asset)
	}

	return assets, nil
}

// describeImage fills dimensions and the report thumbnail; both are best effort
func (e *PDFExtractor) describeImage(asset *models.ImageAsset, width, height int) {
	if width <= 0 || height <= 0 {
		if w, h, err := imagehash.Dimensions(asset.Data); err == nil {
			width, height = w, h
		}
	}
	if width > 0 && height > 0 {
		asset.Width = models.IntPtr(width)
		asset.Height = models.IntPtr(height)
	}

	thumb, err := imagehash.Thumbnail(asset.Data, uint(e.config.ThumbnailSize))
	if err != nil {
		e.logger.Debug().Err(err).Str("image", asset.Name).Msg("No thumbnail for image")
		return
	}
	asset.ThumbnailB64 = thumb
}

func imageExtension(fileType string) string {
	ext := strings.TrimPrefix(strings.ToLower(fileType), ".")
	switch ext {
	case "":
		return "bin"
	case "jpeg":
		return "jpg"
	default:
		return ext
	}
}
