package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"see-a-doctor/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, http.StatusOK, "Doctors retrieved successfully", []string{}, &Meta{Page: 1, Limit: 10, Total: 25, TotalPages: 3})

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestFromError(t *testing.T) {
	slotTaken := apperror.Conflict("slot already booked")

	tests := []struct {
		name    string
		err     error
		want    int
		message string
	}{
		{"not found", apperror.NotFound("doctor not found"), http.StatusNotFound, "doctor not found"},
		{"conflict", slotTaken, http.StatusConflict, "slot already booked"},
		{"wrapped", fmt.Errorf("book: %w", slotTaken), http.StatusConflict, "slot already booked"},
		{"authorization", apperror.Authorization("you cannot manage this doctor"), http.StatusForbidden, "you cannot manage this doctor"},
		{"validation", apperror.Validation("cannot book a past date"), http.StatusBadRequest, "cannot book a past date"},
		{"upstream hides cause", apperror.Upstream("query failed", errors.New("pq: password authentication failed")), http.StatusInternalServerError, "Failed to book"},
		{"unclassified hides cause", errors.New("dial tcp 10.0.0.3:5432"), http.StatusInternalServerError, "Failed to book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tt.err, "Failed to book")

			assert.Equal(t, tt.want, rec.Code)
			resp := decode(t, rec)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestFromError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, apperror.ValidationFields("invalid schedule", map[string]string{"schedule": "start must be before end"}), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, map[string]interface{}{"schedule": "start must be before end"}, resp.Error)
}
