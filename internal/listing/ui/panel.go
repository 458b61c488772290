package ui

import (
	"fmt"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

// VisibleLanguages is how many languages are listed before the "+N More" toggle.
const VisibleLanguages = 4

// Option is one selectable value in a filter section. Href points at the
// filter state that selecting (or deselecting) the option would produce.
type Option struct {
	Label    string
	Value    string
	Href     string
	Selected bool
}

// Section groups the options for one filter dimension. On small screens a
// section is an accordion: Expanded says whether it is open and ExpandHref
// flips it.
type Section struct {
	Key        string
	Title      string
	Options    []Option
	ToggleRef  string
	ToggleTxt  string
	Expanded   bool
	ExpandHref string
}

// FilterPanel is the filter sidebar view model. On small screens it is an
// overlay shown while PanelOpen is set.
type FilterPanel struct {
	Sections  []Section
	ClearHref string
	HasActive bool
	Search    string
	PanelOpen bool
	OpenHref  string
	CloseHref string
}

// BuildFilterPanel derives the panel for the current filters. Every option
// link differs from filters in exactly one key; Clear All links to the empty
// state. Page is never carried, so following any link starts at page 1.
// Display state in vs is kept on every link.
func BuildFilterPanel(basePath string, filters directory.FilterState, vs ViewState) FilterPanel {
	extra := vs.Pairs()
	withView := func(next ViewState) string {
		return Href(basePath, filters, next.Pairs()...)
	}
	accordion := func(s Section) Section {
		s.Expanded = vs.IsExpanded(s.Key)
		s.ExpandHref = withView(vs.ToggleSection(s.Key))
		return s
	}
	section := func(key, title string, values, labels []string) Section {
		current, _ := filters.Get(key)
		s := Section{Key: key, Title: title}
		for i, v := range values {
			label := v
			if labels != nil {
				label = labels[i]
			}
			next := filters.With(key, v)
			selected := current == v
			if selected {
				next = filters.Without(key)
			}
			s.Options = append(s.Options, Option{
				Label:    label,
				Value:    v,
				Href:     Href(basePath, next, extra...),
				Selected: selected,
			})
		}
		return s
	}

	consult := Section{Key: ConsultSection, Title: "Mode of Consult"}
	for _, c := range []struct{ dim, label string }{
		{directory.DimHospitalVisit, "Hospital Visit"},
		{directory.DimOnlineConsult, "Online Consult"},
	} {
		s := section(c.dim, "", []string{"true"}, []string{c.label})
		consult.Options = append(consult.Options, s.Options...)
	}

	genderLabels := make([]string, len(directory.Genders))
	for i, g := range directory.Genders {
		genderLabels[i] = TitleCase(g)
	}

	languages := directory.Languages
	lang := Section{Key: directory.DimLanguage, Title: "Language"}
	if !vs.ShowAllLanguages && len(languages) > VisibleLanguages {
		languages = languages[:VisibleLanguages]
		lang.ToggleRef = withView(vs.WithAllLanguages(true))
		lang.ToggleTxt = fmt.Sprintf("+%d More", len(directory.Languages)-VisibleLanguages)
	} else if vs.ShowAllLanguages {
		lang.ToggleRef = withView(vs.WithAllLanguages(false))
		lang.ToggleTxt = "Show Less"
	}
	lang.Options = section(directory.DimLanguage, "Language", languages, nil).Options

	return FilterPanel{
		Sections: []Section{
			accordion(consult),
			accordion(section(directory.DimSpecialty, "Specialty", directory.Specialties, nil)),
			accordion(section(directory.DimGender, "Gender", directory.Genders, genderLabels)),
			accordion(section(directory.DimExperience, "Experience (In Years)", directory.ExperienceBrackets, nil)),
			accordion(section(directory.DimRating, "Rating", directory.RatingFloors, nil)),
			accordion(lang),
		},
		ClearHref: Href(basePath, filters.Clear(), extra...),
		HasActive: !filters.IsEmpty(),
		Search:    filters.Search(),
		PanelOpen: vs.PanelOpen,
		OpenHref:  withView(vs.WithPanelOpen(true)),
		CloseHref: withView(vs.WithPanelOpen(false)),
	}
}
