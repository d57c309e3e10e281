package extractor

import (
	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
	"github.com/ledongthuc/pdf"
)

// ExtractTextPages returns the plain text of every page, 1-indexed.
// Pages without content yield empty text rather than being skipped.
func (e *PDFExtractor) ExtractTextPages(path string) (pages []models.PageText, err error) {
	defer recoverStage(path, "text", &err)

	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, common.NewExtractionError(path, "text", err)
	}
	defer func() { _ = file.Close() }()

	numPages := reader.NumPage()
	fonts := make(map[string]*pdf.Font)
	pages = make([]models.PageText, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, models.PageText{PageNumber: i})
			continue
		}

		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}

		text, pageErr := page.GetPlainText(fonts)
		if pageErr != nil {
			e.logger.Debug().Err(pageErr).Str("path", path).Int("page", i).Msg("Could not read page text")
			text = ""
		}
		pages = append(pages, models.PageText{PageNumber: i, Text: text})
	}

	return pages, nil
}
