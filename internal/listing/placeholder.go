package listing

import (
	"fmt"
	"strings"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

// PlaceholderCount is the number of synthetic doctors shown in degraded mode.
const PlaceholderCount = 5

// PlaceholderIDPrefix marks synthetic doctor IDs.
const PlaceholderIDPrefix = "placeholder-"

// Placeholders returns the fixed synthetic doctors displayed when the
// directory API is unavailable. The list is identical on every call.
func Placeholders() []directory.Doctor {
	doctors := make([]directory.Doctor, 0, PlaceholderCount)
	for i := 0; i < PlaceholderCount; i++ {
		n := i + 1
		doctors = append(doctors, directory.Doctor{
			ID:                       fmt.Sprintf("%s%d", PlaceholderIDPrefix, n),
			Name:                     fmt.Sprintf("Sample Doctor %d", n),
			Specialty:                directory.Specialties[i%len(directory.Specialties)],
			Experience:               5 + 3*i,
			Gender:                   directory.Genders[i%len(directory.Genders)],
			Rating:                   4.0 + 0.2*float64(i%3),
			ConsultationFee:          500 + 100*i,
			Languages:                []string{"English", directory.Languages[1+i%(len(directory.Languages)-1)]},
			IsOnlineConsultAvailable: i%2 == 0,
			IsHospitalVisitAvailable: true,
			HospitalName:             "Apollo Hospital",
		})
	}
	return doctors
}

// IsPlaceholder reports whether the doctor is a synthetic placeholder.
func IsPlaceholder(d directory.Doctor) bool {
	return strings.HasPrefix(d.ID, PlaceholderIDPrefix)
}
