package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type AttendanceHandler struct {
	Repo repository.AttendanceRepository
}

func (h AttendanceHandler) RegisterRoutes(r chi.Router) {
	r.Post("/attendance", h.record)
	r.Get("/attendance/{staffId}", h.listMonth)
}

func (h AttendanceHandler) record(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StaffID int64   `json:"staffId"`
		Date    string  `json:"date"`
		Status  string  `json:"status"`
		OTHours float64 `json:"otHours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.StaffID <= 0 {
		writeError(w, http.StatusBadRequest, "staffId is required")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}
	status := domain.AttendanceStatus(req.Status)
	switch status {
	case domain.AttendancePresent, domain.AttendanceWeekOff, domain.AttendanceLeave:
	default:
		writeError(w, http.StatusBadRequest, "status must be Present, WeekOff or Leave")
		return
	}
	if req.OTHours < 0 {
		writeError(w, http.StatusBadRequest, "otHours must not be negative")
		return
	}

	if err := h.Repo.Upsert(r.Context(), domain.Attendance{
		StaffID: req.StaffID,
		Date:    date,
		Status:  status,
		OTHours: req.OTHours,
	}); err != nil {
		writeStaffWriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"staffId": req.StaffID,
		"date":    date.Format(dateLayout),
		"status":  string(status),
		"otHours": req.OTHours,
	})
}

func (h AttendanceHandler) listMonth(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(chi.URLParam(r, "staffId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	month, err := time.Parse("2006-01", r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "month must be in YYYY-MM format")
		return
	}

	rows, err := h.Repo.ListMonth(r.Context(), staffID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(rows))
	for _, a := range rows {
		resp = append(resp, map[string]any{
			"id":      strconv.FormatInt(a.ID, 10),
			"staffId": a.StaffID,
			"date":    a.Date.Format(dateLayout),
			"status":  string(a.Status),
			"otHours": a.OTHours,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
