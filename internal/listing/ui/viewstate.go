package ui

import (
	"net/url"
	"slices"
	"strings"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

// Display-only query parameters. They never reach the API.
const (
	// ShowAllLanguagesParam expands the language section when set to "all".
	ShowAllLanguagesParam = "langs"
	// PanelParam opens the filter overlay on small screens when set to "open".
	PanelParam = "panel"
	// ExpandParam lists the filter sections expanded on small screens.
	ExpandParam = "expand"

	expandNone = "none"
)

// ConsultSection is the key of the mode-of-consult section, which groups two
// filter dimensions.
const ConsultSection = "consult"

// SectionKeys is the display order of the filter sections.
var SectionKeys = []string{
	ConsultSection,
	directory.DimSpecialty,
	directory.DimGender,
	directory.DimExperience,
	directory.DimRating,
	directory.DimLanguage,
}

// DefaultExpanded is the set of sections open when the URL does not say.
var DefaultExpanded = []string{ConsultSection}

// ViewState is the presentation state of the listing page carried in the URL
// next to the filters. Links built from it keep it intact.
type ViewState struct {
	ShowAllLanguages bool
	PanelOpen        bool
	// Expanded holds section keys in SectionKeys order.
	Expanded []string
}

// DefaultViewState is the state of a URL without display parameters.
func DefaultViewState() ViewState {
	return ViewState{Expanded: slices.Clone(DefaultExpanded)}
}

// ViewStateFromQuery reads the display parameters from a URL query.
func ViewStateFromQuery(q url.Values) ViewState {
	v := ViewState{
		ShowAllLanguages: q.Get(ShowAllLanguagesParam) == "all",
		PanelOpen:        q.Get(PanelParam) == "open",
	}
	if !q.Has(ExpandParam) {
		v.Expanded = slices.Clone(DefaultExpanded)
		return v
	}
	requested := strings.Split(q.Get(ExpandParam), ",")
	for _, key := range SectionKeys {
		if slices.Contains(requested, key) {
			v.Expanded = append(v.Expanded, key)
		}
	}
	return v
}

// IsExpanded reports whether section key is open.
func (v ViewState) IsExpanded(key string) bool {
	return slices.Contains(v.Expanded, key)
}

// ToggleSection returns a copy with section key opened or closed.
func (v ViewState) ToggleSection(key string) ViewState {
	open := !v.IsExpanded(key)
	next := v
	next.Expanded = nil
	for _, k := range SectionKeys {
		if (k == key && open) || (k != key && v.IsExpanded(k)) {
			next.Expanded = append(next.Expanded, k)
		}
	}
	return next
}

// WithAllLanguages returns a copy with the language section expanded or not.
func (v ViewState) WithAllLanguages(all bool) ViewState {
	v.ShowAllLanguages = all
	v.Expanded = slices.Clone(v.Expanded)
	return v
}

// WithPanelOpen returns a copy with the filter overlay opened or closed.
func (v ViewState) WithPanelOpen(open bool) ViewState {
	v.PanelOpen = open
	v.Expanded = slices.Clone(v.Expanded)
	return v
}

// Pairs renders the non-default display parameters in a fixed order.
func (v ViewState) Pairs() [][2]string {
	var pairs [][2]string
	if v.ShowAllLanguages {
		pairs = append(pairs, [2]string{ShowAllLanguagesParam, "all"})
	}
	if v.PanelOpen {
		pairs = append(pairs, [2]string{PanelParam, "open"})
	}
	if !slices.Equal(v.Expanded, DefaultExpanded) {
		value := strings.Join(v.Expanded, ",")
		if value == "" {
			value = expandNone
		}
		pairs = append(pairs, [2]string{ExpandParam, value})
	}
	return pairs
}
