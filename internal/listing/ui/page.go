package ui

import (
	"strconv"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
	"github.com/apollo-healthcare/apollo-web/internal/listing"
)

// PageLink is one numbered pagination control.
type PageLink struct {
	Number  int
	Href    string
	Current bool
}

// Pager is the pagination controls view model. Show is false when there is
// at most one page.
type Pager struct {
	Show       bool
	Pages      []PageLink
	PrevHref   string
	NextHref   string
	Page       int
	TotalPages int
}

// BuildPager derives pagination controls for filters and p.
func BuildPager(basePath string, filters directory.FilterState, p listing.Pagination, extra ...[2]string) Pager {
	pager := Pager{Show: p.HasControls(), Page: p.Page, TotalPages: p.TotalPages}
	if !pager.Show {
		return pager
	}
	link := func(n int) string {
		pairs := append(append([][2]string(nil), extra...), [2]string{"page", strconv.Itoa(n)})
		return Href(basePath, filters, pairs...)
	}
	for _, n := range listing.Window(p.TotalPages, p.Page) {
		pager.Pages = append(pager.Pages, PageLink{Number: n, Href: link(n), Current: n == p.Page})
	}
	if p.HasPrev() {
		pager.PrevHref = link(p.Page - 1)
	}
	if p.HasNext() {
		pager.NextHref = link(p.Page + 1)
	}
	return pager
}

// ListingPage is the full listing view model.
type ListingPage struct {
	Status     string
	Panel      FilterPanel
	Cards      []DoctorCard
	Pager      Pager
	Total      int
	Empty      bool
	Degraded   bool
	Loading    bool
	Error      string
	Search     string
	SearchPath string
	View       ViewState
}

// BuildListingPage composes the panel, cards and pager for a snapshot.
func BuildListingPage(basePath string, snap listing.Snapshot, vs ViewState) ListingPage {
	filters := snap.Query.Filters
	extra := vs.Pairs()
	page := ListingPage{
		Status:     string(snap.Status),
		Panel:      BuildFilterPanel(basePath, filters, vs),
		Search:     filters.Search(),
		SearchPath: basePath,
		View:       vs,
	}
	switch snap.Status {
	case listing.StatusSuccess:
		page.Cards = NewDoctorCards(snap.Doctors)
		page.Pager = BuildPager(basePath, filters, snap.Pagination, extra...)
		page.Total = snap.Pagination.Total
		page.Empty = snap.IsEmpty()
	case listing.StatusError:
		page.Cards = NewDoctorCards(snap.Placeholder)
		page.Degraded = true
		page.Error = snap.Err
	default:
		page.Loading = true
	}
	return page
}

// SearchCarryPairs lists the query pairs a search submission must keep: every
// active filter and the display state. The search string itself and the page
// are left out, so a new search replaces the old one and starts at page 1.
func SearchCarryPairs(filters directory.FilterState, vs ViewState) [][2]string {
	var pairs [][2]string
	for _, p := range filters.Pairs() {
		if p[0] != directory.SearchParam {
			pairs = append(pairs, p)
		}
	}
	return append(pairs, vs.Pairs()...)
}
