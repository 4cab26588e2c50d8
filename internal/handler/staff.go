package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"
	"salondesk-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type StaffHandler struct {
	Repo    repository.StaffRepository
	Records repository.ServiceRecordRepository
}

func (h StaffHandler) RegisterRoutes(r chi.Router) {
	r.Get("/staff", h.list)
	r.Get("/staff/performance", h.performance)
	r.Get("/staff/{id}", h.get)
	r.Post("/staff", h.upsert)
	r.Put("/staff/{id}", h.upsertByID)
	r.Delete("/staff/{id}", h.delete)
}

func (h StaffHandler) list(w http.ResponseWriter, r *http.Request) {
	outletID, err := scopedOutletID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outletId")
		return
	}
	items, err := h.Repo.List(r.Context(), outletID, 500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, s := range items {
		resp = append(resp, staffToJSON(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// performance lists redeemed service totals per staff member for the date
// range, with the display commission derived at the fixed reporting rate.
func (h StaffHandler) performance(w http.ResponseWriter, r *http.Request) {
	from, err := parseDateQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	to, err := parseDateQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}
	now := time.Now()
	if from == nil {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		from = &monthStart
	}
	if to == nil {
		to = &now
	}
	if from.After(*to) {
		writeError(w, http.StatusBadRequest, "startDate must be before endDate")
		return
	}

	sales, err := h.Records.SumValueByStaff(r.Context(), *from, *to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(sales))
	for _, s := range sales {
		resp = append(resp, map[string]any{
			"staffId":      s.StaffID,
			"staffName":    s.StaffName,
			"serviceCount": s.ServiceCount,
			"totalValue":   s.TotalValue.StringFixed(2),
			"commission":   service.ReportedCommission(s.TotalValue).StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"startDate": from.Format(dateLayout),
		"endDate":   to.Format(dateLayout),
		"staff":     resp,
	})
}

func (h StaffHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	s, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "staff not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, staffToJSON(*s))
}

type staffPayload struct {
	OutletID      *int64          `json:"outletId"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	MonthlySalary decimal.Decimal `json:"monthlySalary"`
	Active        *bool           `json:"active"`
}

func (p staffPayload) validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.MonthlySalary.IsNegative() {
		return errors.New("monthlySalary must not be negative")
	}
	return nil
}

func (h StaffHandler) upsert(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

func (h StaffHandler) upsertByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	h.save(w, r, id)
}

func (h StaffHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	var req staffPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	s, err := h.Repo.Upsert(r.Context(), domain.Staff{
		ID:            id,
		OutletID:      req.OutletID,
		Name:          req.Name,
		Phone:         req.Phone,
		MonthlySalary: req.MonthlySalary,
		Active:        active,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, staffToJSON(*s))
}

func (h StaffHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func staffToJSON(s domain.Staff) map[string]any {
	return map[string]any{
		"id":            strconv.FormatInt(s.ID, 10),
		"outletId":      s.OutletID,
		"name":          s.Name,
		"phone":         s.Phone,
		"monthlySalary": s.MonthlySalary.StringFixed(2),
		"currentTarget": s.CurrentTarget.StringFixed(2),
		"active":        s.Active,
	}
}
