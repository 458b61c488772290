package enrollment

// Messages shown inline on the form.
const (
	MsgRequired         = "Please fill in all required fields"
	MsgExperienceNumber = "Experience must be a whole number of years"
	MsgRatingNumber     = "Rating must be a number"
)

// ValidationError reports a submission rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
