package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestRespondRejection(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondRejection(rec, http.StatusConflict, "slot_unavailable", "time", "Selected time slot is no longer available.")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t,
		`{"error":{"code":"slot_unavailable","field":"time","message":"Selected time slot is no longer available."}}`,
		rec.Body.String())
}

func TestRespondError_CodeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, CodeInvalidInput},
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusTooManyRequests, CodeRateLimited},
		{http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		RespondError(rec, tt.status, "msg")
		assert.Contains(t, rec.Body.String(), `"code":"`+tt.code+`"`)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann","extra":1}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "Ann", v.Name)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, DecodeJSON(req, &v))
}

func TestParseID(t *testing.T) {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"locationId": "12"})
	id, err := ParseID(req, "locationId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"locationId": raw})
		_, err := ParseID(req, "locationId")
		assert.Error(t, err, raw)
	}
}

func TestParseFlags(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?ignoreOffDays=true&ignoreAvailability=nope", nil)

	assert.Equal(t, domain.AvailabilityFlags{IgnoreOffDays: true}, ParseFlags(req))
}
