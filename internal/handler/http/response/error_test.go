package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/hr-attendance-go/internal/domain/apperror"
	"github.com/cmlabs-hris/hr-attendance-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_StatusByClass(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{validator.ValidationErrors{{Field: "kind", Message: "kind is required"}}, http.StatusUnprocessableEntity},
		{fmt.Errorf("mark: %w", apperror.Invalid("day already closed")), http.StatusBadRequest},
		{apperror.Unauthenticated("not authenticated"), http.StatusUnauthorized},
		{apperror.Forbidden("no"), http.StatusForbidden},
		{apperror.NotFound("attendance record not found"), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, c.err)
		assert.Equal(t, c.want, rec.Code, c.err.Error())
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	}
}

func TestHandleError_HidesInternalMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("pq: password authentication failed"))
	assert.NotContains(t, rec.Body.String(), "password authentication")
}

func TestHandleError_EnvelopeCodes(t *testing.T) {
	cases := []struct {
		err     error
		code    string
		details bool
	}{
		{validator.ValidationErrors{{Field: "kind", Message: "kind is required"}}, "VALIDATION_ERROR", true},
		{apperror.Invalid("day already closed"), "BAD_REQUEST", false},
		{apperror.NotFound("task not found"), "NOT_FOUND", false},
		{errors.New("boom"), "INTERNAL_SERVER_ERROR", false},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		HandleError(rec, c.err)

		var body Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, c.code, body.Error.Code)
		assert.Equal(t, c.details, len(body.Error.Details) > 0)
	}
}

func TestFail_UnmappedStatusUsesStatusText(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusConflict, "already exists", nil)

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Conflict", body.Error.Code)
	assert.Equal(t, "already exists", body.Error.Message)
}
