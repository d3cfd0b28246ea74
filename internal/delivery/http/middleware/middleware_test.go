package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"see-a-doctor/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name      string
		principal *entity.Principal
		want      int
	}{
		{"no principal", nil, http.StatusUnauthorized},
		{"wrong role", &entity.Principal{UserID: uuid.New(), Role: entity.RoleUser}, http.StatusForbidden},
		{"doctor allowed", &entity.Principal{UserID: uuid.New(), Role: entity.RoleDoctor}, http.StatusNoContent},
		{"staff allowed", &entity.Principal{UserID: uuid.New(), Role: entity.RoleStaff}, http.StatusNoContent},
	}

	h := RequireRole(entity.RoleDoctor, entity.RoleStaff, entity.RoleAdmin)(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/appointments/x/status", nil)
			if tt.principal != nil {
				req = req.WithContext(WithPrincipal(req.Context(), *tt.principal))
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRequestID_PropagatesHeader(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestID(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(rec.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func TestLogging_RecordsStatus(t *testing.T) {
	log, hook := test.NewNullLogger()

	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil))

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.WarnLevel, entry.Level)
		assert.Equal(t, http.StatusConflict, entry.Data["status"])
		assert.Equal(t, "/api/v1/appointments", entry.Data["path"])
	}
}

func TestCORS_PreflightAllowsPatch(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCORSMiddleware().Handle(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
