// Package directory models doctors as served by the remote directory API and
// provides the HTTP client used to list and submit them.
package directory

// Gender values accepted by the directory API.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Genders lists the selectable gender values in display order.
var Genders = []string{GenderMale, GenderFemale, GenderOther}

// Specialties lists the common specialties offered by filters and forms.
var Specialties = []string{
	"General Physician",
	"Cardiologist",
	"Dermatologist",
	"Pediatrician",
	"Gynecologist",
	"Orthopedist",
	"Neurologist",
	"Psychiatrist",
	"Dentist",
	"Ophthalmologist",
}

// Languages lists the spoken languages offered by the language filter.
var Languages = []string{
	"English",
	"Hindi",
	"Telugu",
	"Punjabi",
	"Bengali",
	"Marathi",
	"Urdu",
	"Gujarati",
	"Tamil",
	"Kannada",
	"Odia",
	"Persian",
	"Assamese",
}

// ExperienceBrackets lists the experience filter labels understood by the API.
var ExperienceBrackets = []string{"0-5", "6-10", "11-16", "16+"}

// RatingFloors lists the minimum rating filter labels understood by the API.
var RatingFloors = []string{"3+", "4+", "4.5+"}

// Doctor is one directory entry.
type Doctor struct {
	ID                       string   `json:"id"`
	Name                     string   `json:"name"`
	Specialty                string   `json:"specialty"`
	Experience               int      `json:"experience"`
	Gender                   string   `json:"gender"`
	ImageURL                 string   `json:"imageUrl,omitempty"`
	Rating                   float64  `json:"rating"`
	ConsultationFee          int      `json:"consultationFee"`
	HospitalName             string   `json:"hospitalName,omitempty"`
	Languages                []string `json:"languages"`
	Location                 string   `json:"location,omitempty"`
	IsOnlineConsultAvailable bool     `json:"isOnlineConsultAvailable"`
	IsHospitalVisitAvailable bool     `json:"isHospitalVisitAvailable"`
	Education                string   `json:"education,omitempty"`
	Bio                      string   `json:"bio,omitempty"`
}

// Meta is the pagination metadata reported by the listing endpoint.
type Meta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the paginated response returned by the listing endpoint.
type Envelope struct {
	Data []Doctor `json:"data"`
	Meta Meta     `json:"meta"`
}

// Submission is the payload accepted by the add-doctor endpoint.
type Submission struct {
	Name       string  `json:"name"`
	Gender     string  `json:"gender"`
	Experience int     `json:"experience"`
	Specialty  string  `json:"specialty"`
	Rating     float64 `json:"rating"`
}
