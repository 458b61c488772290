package ui

import (
	"fmt"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
	"github.com/apollo-healthcare/apollo-web/internal/listing"
)

const (
	cardLanguages     = 3
	defaultLanguage   = "English"
	defaultDoctorIcon = "/static/img/doctor.svg"
)

// DoctorCard is the rendering of one doctor.
type DoctorCard struct {
	ID            string
	Name          string
	Specialty     string
	Gender        string
	Experience    string
	Rating        string
	Fee           string
	Hospital      string
	Location      string
	ImageURL      string
	Languages     []string
	MoreLanguages string
	OnlineConsult bool
	HospitalVisit bool
	Placeholder   bool
}

// NewDoctorCard formats d for display.
func NewDoctorCard(d directory.Doctor) DoctorCard {
	card := DoctorCard{
		ID:            d.ID,
		Name:          d.Name,
		Specialty:     d.Specialty,
		Gender:        TitleCase(d.Gender),
		Experience:    fmt.Sprintf("%d Years Exp", d.Experience),
		Rating:        FormatRating(d.Rating),
		Fee:           FormatFee(d.ConsultationFee),
		Hospital:      d.HospitalName,
		Location:      d.Location,
		ImageURL:      d.ImageURL,
		OnlineConsult: d.IsOnlineConsultAvailable,
		HospitalVisit: d.IsHospitalVisitAvailable,
		Placeholder:   listing.IsPlaceholder(d),
	}
	if card.ImageURL == "" {
		card.ImageURL = defaultDoctorIcon
	}
	switch n := len(d.Languages); {
	case n == 0:
		card.Languages = []string{defaultLanguage}
	case n > cardLanguages:
		card.Languages = append([]string(nil), d.Languages[:cardLanguages]...)
		card.MoreLanguages = fmt.Sprintf("+%d more", n-cardLanguages)
	default:
		card.Languages = append([]string(nil), d.Languages...)
	}
	return card
}

// NewDoctorCards formats a list of doctors.
func NewDoctorCards(doctors []directory.Doctor) []DoctorCard {
	cards := make([]DoctorCard, 0, len(doctors))
	for _, d := range doctors {
		cards = append(cards, NewDoctorCard(d))
	}
	return cards
}
