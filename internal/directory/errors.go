package directory

import "fmt"

// FetchError reports a failed listing request.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Failed to fetch doctors: %v", e.Err)
	}
	return "Failed to fetch doctors"
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmitError reports a failed add-doctor request. Detail holds the best
// available description: the server's JSON body, or a status line.
type SubmitError struct {
	Status int
	Detail string
	Err    error
}

func (e *SubmitError) Error() string {
	detail := e.Detail
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return "Failed to add doctor. " + detail
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
