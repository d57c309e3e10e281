package differ

import (
	"sort"

	"github.com/aleister1102/pdfdiff/internal/models"
)

// TablePageMaps holds tables of both documents grouped by page
type TablePageMaps struct {
	A     map[int][]models.Table
	B     map[int][]models.Table
	Pages []int
}

// TableMapper groups tables by page number
type TableMapper struct{}

// NewTableMapper creates a new table mapper
func NewTableMapper() *TableMapper {
	return &TableMapper{}
}

// CreateMaps groups both table lists by page, keeping discovery order within a
// page, and returns the union of pages in ascending order.
func (tm *TableMapper) CreateMaps(tablesA, tablesB []models.Table) TablePageMaps {
	maps := TablePageMaps{
		A: tm.groupByPage(tablesA),
		B: tm.groupByPage(tablesB),
	}

	seen := make(map[int]struct{}, len(maps.A)+len(maps.B))
	for page := range maps.A {
		seen[page] = struct{}{}
	}
	for page := range maps.B {
		seen[page] = struct{}{}
	}

	maps.Pages = make([]int, 0, len(seen))
	for page := range seen {
		maps.Pages = append(maps.Pages, page)
	}
	sort.Ints(maps.Pages)

	return maps
}

func (tm *TableMapper) groupByPage(tables []models.Table) map[int][]models.Table {
	byPage := make(map[int][]models.Table)
	for _, t := range tables {
		byPage[t.PageNumber] = append(byPage[t.PageNumber], t)
	}
	return byPage
}
