package differ

import (
	"fmt"

	"github.com/aleister1102/pdfdiff/internal/common"
	"github.com/aleister1102/pdfdiff/internal/models"
)

// PageNumberValidator rejects page numbers below 1
type PageNumberValidator struct{}

// NewPageNumberValidator creates a new page number validator
func NewPageNumberValidator() *PageNumberValidator {
	return &PageNumberValidator{}
}

// ValidatePage checks a single page number
func (pv *PageNumberValidator) ValidatePage(field string, page int) error {
	if page < 1 {
		return common.NewValidationError(field, page, "page numbers are 1-indexed")
	}
	return nil
}

// ValidatePages checks every page of both documents
func (pv *PageNumberValidator) ValidatePages(pagesA, pagesB []models.PageText) error {
	for i, p := range pagesA {
		if err := pv.ValidatePage(fmt.Sprintf("pages_a[%d].page_number", i), p.PageNumber); err != nil {
			return err
		}
	}
	for i, p := range pagesB {
		if err := pv.ValidatePage(fmt.Sprintf("pages_b[%d].page_number", i), p.PageNumber); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTables checks the page number of every table in both documents
func (pv *PageNumberValidator) ValidateTables(tablesA, tablesB []models.Table) error {
	for i, t := range tablesA {
		if err := pv.ValidatePage(fmt.Sprintf("tables_a[%d].page_number", i), t.PageNumber); err != nil {
			return err
		}
	}
	for i, t := range tablesB {
		if err := pv.ValidatePage(fmt.Sprintf("tables_b[%d].page_number", i), t.PageNumber); err != nil {
			return err
		}
	}
	return nil
}
