package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"salondesk-backend/internal/db"
	"salondesk-backend/internal/domain"
)

type apiError struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
}

type apiResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    any       `json:"data"`
	Error   *apiError `json:"error,omitempty"`
}

func writeRawJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if status >= 400 {
		writeRawJSON(w, status, apiResponse{
			Status:  "error",
			Message: "",
			Data:    payload,
			Error: &apiError{
				Code:   status,
				Status: http.StatusText(status),
			},
		})
		return
	}
	writeRawJSON(w, status, apiResponse{
		Status:  "ok",
		Message: "",
		Data:    payload,
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	writeRawJSON(w, status, apiResponse{
		Status:  "error",
		Message: message,
		Data:    nil,
		Error: &apiError{
			Code:   status,
			Status: http.StatusText(status),
		},
	})
}

// writeStaffWriteError maps failures from staff-keyed writes (attendance,
// payroll adjustments). An unknown staff id violates the foreign key and
// reads as not found rather than a server error.
func writeStaffWriteError(w http.ResponseWriter, err error) {
	if db.IsForeignKeyViolation(err) {
		writeError(w, http.StatusNotFound, "staff not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// writeDomainError maps the error taxonomy onto HTTP statuses. Every error
// produces a single descriptive message; there are no partial-success bodies.
func writeDomainError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	var notFound *domain.NotFoundError
	var conflict *domain.ConflictError
	var authz *domain.AuthorizationError
	switch {
	case errors.As(err, &validation):
		writeError(w, http.StatusBadRequest, validation.Error())
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.Error())
	case errors.As(err, &authz):
		writeError(w, http.StatusForbidden, authz.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
