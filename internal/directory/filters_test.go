package directory

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStateWithOverwritesOneKey(t *testing.T) {
	base := NewFilterState(map[string]string{DimSpecialty: "Dentist", DimGender: "male"}, "tooth")
	next := base.With(DimGender, "female")

	assert.Equal(t, map[string]string{DimSpecialty: "Dentist", DimGender: "female"}, next.Map())
	assert.Equal(t, "tooth", next.Search())
	assert.Equal(t, map[string]string{DimSpecialty: "Dentist", DimGender: "male"}, base.Map(), "original must not change")
}

func TestFilterStateWithEmptyValueRemovesKey(t *testing.T) {
	base := NewFilterState(map[string]string{DimSpecialty: "Dentist", DimGender: "male"}, "")
	next := base.With(DimGender, " ")

	_, ok := next.Get(DimGender)
	assert.False(t, ok)
	assert.Equal(t, 1, next.Len())
	assert.True(t, next.Equal(base.Without(DimGender)))
}

func TestFilterStateClear(t *testing.T) {
	base := NewFilterState(map[string]string{DimRating: "4+"}, "dr")
	assert.True(t, base.Clear().IsEmpty())
	assert.False(t, base.IsEmpty())
}

func TestFilterStateFromQueryDropsUnknownAndEmpty(t *testing.T) {
	q := url.Values{}
	q.Set(DimSpecialty, "Neurologist")
	q.Set(DimGender, "")
	q.Set("page", "4")
	q.Set("bogus", "x")
	q.Set(SearchParam, "  migraine ")

	fs := FilterStateFromQuery(q)
	assert.Equal(t, map[string]string{DimSpecialty: "Neurologist"}, fs.Map())
	assert.Equal(t, "migraine", fs.Search())
	assert.Equal(t, "specialty=Neurologist&search=migraine", fs.Encode())
}

func TestFilterStateEqual(t *testing.T) {
	a := NewFilterState(map[string]string{DimSpecialty: "Dentist"}, "x")
	assert.True(t, a.Equal(NewFilterState(map[string]string{DimSpecialty: "Dentist"}, "x")))
	assert.False(t, a.Equal(a.WithSearch("y")))
	assert.False(t, a.Equal(a.With(DimGender, "male")))
	assert.True(t, FilterState{}.Equal(NewFilterState(nil, "")))
}
