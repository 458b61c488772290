package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apollo-healthcare/apollo-web/internal/directory"
)

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) ProblemDetail {
	t.Helper()
	assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
	var p ProblemDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	return p
}

func TestRespondErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		title  string
	}{
		{fmt.Errorf("listing: %w", ErrNotFound), http.StatusNotFound, "Not Found"},
		{ErrValidation, http.StatusBadRequest, "Validation Failed"},
		{&directory.FetchError{Status: 503}, http.StatusBadGateway, "Upstream Error"},
		{fmt.Errorf("wrap: %w", &directory.SubmitError{Detail: "x"}), http.StatusBadGateway, "Upstream Error"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "Internal Error"},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		RespondError(rr, tc.err)
		assert.Equal(t, tc.status, rr.Code)
		p := decodeProblem(t, rr)
		assert.Equal(t, tc.title, p.Title)
		assert.Equal(t, tc.status, p.Status)
	}
}

func TestInternalErrorHidesDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondError(rr, fmt.Errorf("secret dsn"))
	assert.Empty(t, decodeProblem(t, rr).Detail)
}

func TestJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	JSON(rr, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"n":1}`, rr.Body.String())
}
