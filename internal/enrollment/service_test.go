package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

type stubSubmitter struct {
	calls []directory.Submission
	err   error
}

func (s *stubSubmitter) AddDoctor(_ context.Context, sub directory.Submission) (json.RawMessage, error) {
	s.calls = append(s.calls, sub)
	if s.err != nil {
		return nil, s.err
	}
	return json.RawMessage(`{"id":"new"}`), nil
}

func validForm() Form {
	return Form{Name: "Dr. Asha Rao", Gender: "female", Experience: "12", Specialty: "Dentist"}
}

func TestSubmitRejectsMissingFieldsWithoutNetwork(t *testing.T) {
	cases := map[string]func(*Form){
		"name":       func(f *Form) { f.Name = "" },
		"gender":     func(f *Form) { f.Gender = "" },
		"experience": func(f *Form) { f.Experience = "" },
		"specialty":  func(f *Form) { f.Specialty = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubSubmitter{}
			form := validForm()
			mutate(&form)

			_, err := NewService(stub, nil).Submit(context.Background(), form)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, MsgRequired, verr.Error())
			assert.Empty(t, stub.calls)
		})
	}
}

func TestSubmitDefaultsRatingAndCoercesNumbers(t *testing.T) {
	stub := &stubSubmitter{}
	svc := NewService(stub, nil)

	body, err := svc.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"new"}`, string(body))
	require.Len(t, stub.calls, 1)
	assert.Equal(t, 12, stub.calls[0].Experience)
	assert.Equal(t, DefaultRating, stub.calls[0].Rating)

	form := validForm()
	form.Rating = "4.2"
	_, err = svc.Submit(context.Background(), form)
	require.NoError(t, err)
	assert.InDelta(t, 4.2, stub.calls[1].Rating, 1e-9)
}

func TestSubmitRejectsNonNumericValues(t *testing.T) {
	stub := &stubSubmitter{}
	svc := NewService(stub, nil)

	form := validForm()
	form.Experience = "ten"
	_, err := svc.Submit(context.Background(), form)
	assert.EqualError(t, err, MsgExperienceNumber)

	form = validForm()
	form.Rating = "high"
	_, err = svc.Submit(context.Background(), form)
	assert.EqualError(t, err, MsgRatingNumber)
	assert.Empty(t, stub.calls)
}

func TestSubmitReturnsUpstreamErrorVerbatim(t *testing.T) {
	upstream := &directory.SubmitError{Status: 400, Detail: `{"error":"duplicate"}`}
	svc := NewService(&stubSubmitter{err: upstream}, nil)

	_, err := svc.Submit(context.Background(), validForm())
	var serr *directory.SubmitError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, `Failed to add doctor. {"error":"duplicate"}`, err.Error())
}

func TestFormFromValuesTrims(t *testing.T) {
	values := map[string]string{"name": "  Dr. X ", "rating": " 4 "}
	form := FormFromValues(func(k string) string { return values[k] })
	assert.Equal(t, "Dr. X", form.Name)
	assert.Equal(t, "4", form.Rating)
	assert.Empty(t, form.Gender)
}
