package directory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	op      string
	outcome string
}

type stubRecorder struct {
	calls []recordedCall
}

func (s *stubRecorder) ObserveAPICall(operation, outcome string, duration time.Duration) {
	s.calls = append(s.calls, recordedCall{op: operation, outcome: outcome})
}

func TestListQueryOrdersFiltersThenPaging(t *testing.T) {
	filters := NewFilterState(map[string]string{DimSpecialty: "Cardiologist"}, "")
	assert.Equal(t, "specialty=Cardiologist&page=1&limit=10", ListQuery(filters, 1, 10))
}

func TestListQueryDefaultsPaging(t *testing.T) {
	assert.Equal(t, "page=1&limit=10", ListQuery(FilterState{}, 0, -5))
}

func TestListQueryCanonicalOrderAndEscaping(t *testing.T) {
	filters := NewFilterState(map[string]string{
		DimRating:     "4+",
		DimGender:     "female",
		DimSpecialty:  "General Physician",
		DimExperience: "6-10",
	}, "heart care")
	got := ListQuery(filters, 3, 20)
	assert.Equal(t, "specialty=General+Physician&gender=female&experience=6-10&rating=4%2B&search=heart+care&page=3&limit=20", got)
}

func TestFetchDoctorsParsesEnvelope(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/list-doctor-with-filter", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"data":[{"id":"d1","name":"Asha Rao","specialty":"Cardiologist","experience":12,"gender":"female","rating":4.25,"consultationFee":800,"languages":["English","Hindi"],"isOnlineConsultAvailable":true,"isHospitalVisitAvailable":false}],"meta":{"total":1,"page":1,"limit":10,"totalPages":1}}`)
	}))
	defer srv.Close()

	rec := &stubRecorder{}
	client := NewClient(srv.URL+"/", WithRecorder(rec))
	env, err := client.FetchDoctors(context.Background(), NewFilterState(map[string]string{DimSpecialty: "Cardiologist"}, ""), 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "specialty=Cardiologist&page=1&limit=10", gotQuery)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Asha Rao", env.Data[0].Name)
	assert.Equal(t, []string{"English", "Hindi"}, env.Data[0].Languages)
	assert.True(t, env.Data[0].IsOnlineConsultAvailable)
	assert.Equal(t, Meta{Total: 1, Page: 1, Limit: 10, TotalPages: 1}, env.Meta)
	assert.Equal(t, []recordedCall{{op: OpFetch, outcome: "success"}}, rec.calls)
}

func TestFetchDoctorsEmptyDataNeverNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"meta":{"total":0,"page":1,"limit":10,"totalPages":1}}`)
	}))
	defer srv.Close()

	env, err := NewClient(srv.URL).FetchDoctors(context.Background(), FilterState{}, 1, 10)
	require.NoError(t, err)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Data)
}

func TestFetchDoctorsNonSuccessIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":"down"}`)
	}))
	defer srv.Close()

	rec := &stubRecorder{}
	_, err := NewClient(srv.URL, WithRecorder(rec)).FetchDoctors(context.Background(), FilterState{}, 1, 10)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Status)
	assert.Equal(t, "Failed to fetch doctors", fetchErr.Error())
	assert.Equal(t, []recordedCall{{op: OpFetch, outcome: "error"}}, rec.calls)
}

func TestFetchDoctorsTransportFailureIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).FetchDoctors(context.Background(), FilterState{}, 1, 10)
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.Status)
}

func TestAddDoctorSendsNumericJSON(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/add-doctor", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"new-1"}`)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).AddDoctor(context.Background(), Submission{
		Name: "Asha Rao", Gender: "female", Experience: 12, Specialty: "Cardiologist", Rating: 3.5,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"new-1"}`, string(resp))
	assert.Equal(t, map[string]any{
		"name": "Asha Rao", "gender": "female", "experience": float64(12), "specialty": "Cardiologist", "rating": 3.5,
	}, body)
}

func TestAddDoctorSurfacesJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "{ \"error\": \"duplicate\" }\n")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AddDoctor(context.Background(), Submission{Name: "A"})
	var submitErr *SubmitError
	require.True(t, errors.As(err, &submitErr))
	assert.Equal(t, http.StatusBadRequest, submitErr.Status)
	assert.Equal(t, `{"error":"duplicate"}`, submitErr.Detail)
	assert.Equal(t, `Failed to add doctor. {"error":"duplicate"}`, err.Error())
}

func TestAddDoctorFallsBackToStatusLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html>oops</html>")
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).AddDoctor(context.Background(), Submission{Name: "A"})
	require.Error(t, err)
	assert.True(t, strings.HasSuffix(err.Error(), "Status 500: Internal Server Error"), err.Error())
}

func TestAddDoctorEmptySuccessBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).AddDoctor(context.Background(), Submission{Name: "A"})
	require.NoError(t, err)
	assert.Nil(t, resp)
}
