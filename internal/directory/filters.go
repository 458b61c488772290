package directory

import (
	"net/url"
	"strings"
)

// Filter dimensions understood by the listing endpoint.
const (
	DimSpecialty     = "specialty"
	DimGender        = "gender"
	DimExperience    = "experience"
	DimRating        = "rating"
	DimLanguage      = "language"
	DimOnlineConsult = "isOnlineConsult"
	DimHospitalVisit = "isHospitalVisit"
)

// SearchParam carries the free-text search string.
const SearchParam = "search"

// Dimensions is the canonical serialisation order of filter keys.
var Dimensions = []string{
	DimSpecialty,
	DimGender,
	DimExperience,
	DimRating,
	DimLanguage,
	DimOnlineConsult,
	DimHospitalVisit,
}

// FilterState is a sparse set of single-valued constraints plus an optional
// search string. A missing key means no constraint on that dimension.
// Values are immutable: With, Without, WithSearch and Clear return copies.
type FilterState struct {
	values map[string]string
	search string
}

// NewFilterState builds a FilterState from the given pairs, dropping empty
// values and unknown dimensions.
func NewFilterState(values map[string]string, search string) FilterState {
	fs := FilterState{search: strings.TrimSpace(search)}
	for _, dim := range Dimensions {
		v := strings.TrimSpace(values[dim])
		if v == "" {
			continue
		}
		if fs.values == nil {
			fs.values = make(map[string]string, len(values))
		}
		fs.values[dim] = v
	}
	return fs
}

// FilterStateFromQuery reads known dimensions and the search string from a URL query.
func FilterStateFromQuery(q url.Values) FilterState {
	values := make(map[string]string, len(Dimensions))
	for _, dim := range Dimensions {
		values[dim] = q.Get(dim)
	}
	return NewFilterState(values, q.Get(SearchParam))
}

// Get returns the value of a dimension and whether it is constrained.
func (f FilterState) Get(dim string) (string, bool) {
	v, ok := f.values[dim]
	return v, ok
}

// Search returns the free-text search string.
func (f FilterState) Search() string {
	return f.search
}

// Len reports the number of constrained dimensions.
func (f FilterState) Len() int {
	return len(f.values)
}

// IsEmpty reports whether no dimension is constrained and no search is set.
func (f FilterState) IsEmpty() bool {
	return len(f.values) == 0 && f.search == ""
}

// With returns a copy with exactly one dimension overwritten. An empty value
// removes the constraint.
func (f FilterState) With(dim, value string) FilterState {
	next := f.copyValues()
	value = strings.TrimSpace(value)
	if value == "" {
		delete(next, dim)
	} else {
		next[dim] = value
	}
	return NewFilterState(next, f.search)
}

// Without returns a copy with the dimension removed.
func (f FilterState) Without(dim string) FilterState {
	return f.With(dim, "")
}

// WithSearch returns a copy with the search string replaced.
func (f FilterState) WithSearch(search string) FilterState {
	return NewFilterState(f.copyValues(), search)
}

// Clear returns the empty FilterState.
func (f FilterState) Clear() FilterState {
	return FilterState{}
}

// Equal reports whether both states constrain the same dimensions to the same
// values and carry the same search string.
func (f FilterState) Equal(other FilterState) bool {
	if f.search != other.search || len(f.values) != len(other.values) {
		return false
	}
	for k, v := range f.values {
		if other.values[k] != v {
			return false
		}
	}
	return true
}

// Map returns a copy of the constrained dimensions.
func (f FilterState) Map() map[string]string {
	return f.copyValues()
}

// Pairs returns the constrained dimensions in canonical order followed by the
// search string, each as a key/value pair.
func (f FilterState) Pairs() [][2]string {
	pairs := make([][2]string, 0, len(f.values)+1)
	for _, dim := range Dimensions {
		if v, ok := f.values[dim]; ok {
			pairs = append(pairs, [2]string{dim, v})
		}
	}
	if f.search != "" {
		pairs = append(pairs, [2]string{SearchParam, f.search})
	}
	return pairs
}

// Encode renders the state as an ordered query string without page parameters.
func (f FilterState) Encode() string {
	return EncodeQuery(f.Pairs())
}

func (f FilterState) copyValues() map[string]string {
	out := make(map[string]string, len(f.values)+1)
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// EncodeQuery renders key/value pairs as a query string in the given order,
// unlike url.Values.Encode which sorts keys.
func EncodeQuery(pairs [][2]string) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p[0]))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}
