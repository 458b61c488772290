// Package listing owns the doctor listing state: the active filters, the
// current page, and the result of the most recent fetch.
package listing

import "github.com/apollo-healthcare/apollo-web/internal/directory"

// WindowSize is the maximum number of page links shown at once.
const WindowSize = 5

// Pagination is the pagination state reported by the last successful fetch.
type Pagination struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	Total      int `json:"total"`
	Limit      int `json:"limit"`
}

// PaginationFromMeta copies server metadata verbatim; totals are not recomputed.
func PaginationFromMeta(meta directory.Meta) Pagination {
	return Pagination{Page: meta.Page, TotalPages: meta.TotalPages, Total: meta.Total, Limit: meta.Limit}
}

// HasControls reports whether pagination controls should be rendered.
func (p Pagination) HasControls() bool {
	return p.TotalPages > 1
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool {
	return p.Page < p.TotalPages
}

// Window returns the page numbers to display for currentPage out of totalPages.
//
// With five or fewer pages all are shown. Otherwise the first five are shown
// while currentPage <= 3, the last five once currentPage >= totalPages-2, and
// currentPage-2..currentPage+2 in between.
func Window(totalPages, currentPage int) []int {
	if totalPages <= 0 {
		return []int{}
	}
	start, end := 1, totalPages
	if totalPages > WindowSize {
		switch {
		case currentPage <= 3:
			start, end = 1, WindowSize
		case currentPage >= totalPages-2:
			start, end = totalPages-WindowSize+1, totalPages
		default:
			start, end = currentPage-2, currentPage+2
		}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
