// Package query computes the visible page of the catalog: a pure
// filter-then-paginate over the full collection. It holds no state and
// performs no IO; callers re-run it whenever the collection or the search
// term changes.
package query

import (
	"math"
	"strings"

	"github.com/stocklight/stocklight/internal/model"
)

// PageSize is the fixed number of records per page.
const PageSize = 8

// Pagination contains metadata for a paginated listing.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is one renderable page of the catalog.
type Result struct {
	Items      []model.Product `json:"items"`
	Pagination Pagination      `json:"pagination"`
}

// Filter keeps the records whose searchable text contains the lowercased
// trimmed term as a substring. An empty or whitespace-only term keeps
// everything. Single substring predicate, no tokenization, no ranking.
func Filter(records []model.Product, term string) []model.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return records
	}

	filtered := make([]model.Product, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.SearchText(), term) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Paginate slices the filtered records into the 1-based page. A page past
// the end yields an empty slice, never an error; page <= 0 is treated as
// page 1. The metadata always reflects the true filtered total.
func Paginate(filtered []model.Product, page int) Result {
	if page <= 0 {
		page = 1
	}

	total := len(filtered)
	totalPages := int(math.Ceil(float64(total) / float64(PageSize)))

	start := (page - 1) * PageSize
	if start > total {
		start = total
	}
	end := start + PageSize
	if end > total {
		end = total
	}

	return Result{
		Items: filtered[start:end],
		Pagination: Pagination{
			Page:       page,
			PerPage:    PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// Search is Filter followed by Paginate.
func Search(records []model.Product, term string, page int) Result {
	return Paginate(Filter(records, term), page)
}
