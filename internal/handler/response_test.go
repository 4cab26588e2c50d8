package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"salondesk-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDomainError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.Invalid("month", "must be in YYYY-MM format"), http.StatusBadRequest},
		{"not found", domain.NotFound("package", "42"), http.StatusNotFound},
		{"conflict", domain.Conflict("insufficient balance", domain.ErrInsufficientBalance), http.StatusConflict},
		{"authorization", &domain.AuthorizationError{Message: "admin only"}, http.StatusForbidden},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)

			var body apiResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.status, body.Error.Code)
		})
	}
}

func TestWriteStaffWriteError_UnknownStaffAsNotFound(t *testing.T) {
	// An attendance or adjustment write for a nonexistent staff id fails the
	// staff foreign key; that reads as 404, not a server error.
	rec := httptest.NewRecorder()
	writeStaffWriteError(rec, &pgconn.PgError{Code: "23503", ConstraintName: "attendance_staff_id_fkey"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "staff not found", body.Message)
}

func TestWriteStaffWriteError_OtherErrorsStay500(t *testing.T) {
	rec := httptest.NewRecorder()
	writeStaffWriteError(rec, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteJSON_SuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, map[string]any{"remaining": "450.00"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Nil(t, body.Error)
}
