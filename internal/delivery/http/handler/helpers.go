package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"see-a-doctor/pkg/response"
	"see-a-doctor/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// decodeBody decodes and validates a JSON request body. It writes the 400
// itself and returns false when the request should stop.
func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.CustomValidator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := v.Validate(dst); err != nil {
		response.ValidationError(w, v.FormatValidationErrors(err))
		return false
	}
	return true
}

// pathUUID reads a uuid path variable, writing "Invalid <label> ID" on failure
func pathUUID(w http.ResponseWriter, r *http.Request, key, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[key])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid "+label+" ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

// queryInt returns fallback when the parameter is absent
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

// queryParam accepts both snake_case and camelCase spellings of a parameter
func queryParam(r *http.Request, keys ...string) string {
	q := r.URL.Query()
	for _, key := range keys {
		if value := q.Get(key); value != "" {
			return value
		}
	}
	return ""
}
