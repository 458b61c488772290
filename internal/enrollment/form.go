// Package enrollment validates add-doctor submissions and forwards them to
// the directory API.
package enrollment

import (
	"strconv"
	"strings"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

// DefaultRating is sent when the rating field is left empty.
const DefaultRating = 3.5

// Form mirrors the add-doctor form fields as submitted.
type Form struct {
	Name       string `validate:"required"`
	Gender     string `validate:"required"`
	Experience string `validate:"required,number"`
	Specialty  string `validate:"required"`
	Rating     string `validate:"omitempty,numeric"`
}

// FormFromValues reads a Form from posted values, trimming whitespace.
func FormFromValues(get func(string) string) Form {
	return Form{
		Name:       strings.TrimSpace(get("name")),
		Gender:     strings.TrimSpace(get("gender")),
		Experience: strings.TrimSpace(get("experience")),
		Specialty:  strings.TrimSpace(get("specialty")),
		Rating:     strings.TrimSpace(get("rating")),
	}
}

// Submission converts a validated form into the API payload.
func (f Form) Submission() (directory.Submission, error) {
	experience, err := strconv.Atoi(f.Experience)
	if err != nil {
		return directory.Submission{}, &ValidationError{Field: "Experience", Message: MsgExperienceNumber}
	}
	rating := DefaultRating
	if f.Rating != "" {
		rating, err = strconv.ParseFloat(f.Rating, 64)
		if err != nil {
			return directory.Submission{}, &ValidationError{Field: "Rating", Message: MsgRatingNumber}
		}
	}
	return directory.Submission{
		Name:       f.Name,
		Gender:     f.Gender,
		Experience: experience,
		Specialty:  f.Specialty,
		Rating:     rating,
	}, nil
}
