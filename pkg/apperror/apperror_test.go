package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("doctor not found"), KindNotFound},
		{"wrapped conflict", fmt.Errorf("create: %w", Conflict("slot already booked")), KindConflict},
		{"plain error is upstream", errors.New("connection refused"), KindUpstream},
		{"upstream wrapper", Upstream("query failed", errors.New("timeout")), KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusCode(KindNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusCode(KindValidation))
	assert.Equal(t, http.StatusForbidden, StatusCode(KindAuthorization))
	assert.Equal(t, http.StatusConflict, StatusCode(KindConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(KindUpstream))
}

func TestWithf_KeepsSentinelIdentity(t *testing.T) {
	sentinel := Validation("invalid status transition")

	err := sentinel.Withf("invalid status transition from %s to %s", "completed", "cancelled")

	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "invalid status transition from completed to cancelled", err.Error())
	assert.Equal(t, KindValidation, KindOf(err))

	again := err.Withf("other message")
	assert.True(t, errors.Is(again, sentinel))
	assert.False(t, errors.Is(err, Validation("invalid status transition")))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Upstream("failed to load doctor", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load doctor: dial tcp: refused", err.Error())
}
