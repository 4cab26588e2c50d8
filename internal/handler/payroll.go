package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"
	"salondesk-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type PayrollHandler struct {
	Service     service.PayrollService
	Adjustments repository.AdjustmentRepository
}

func (h PayrollHandler) RegisterRoutes(r chi.Router) {
	r.Get("/payroll/{staffId}", h.compute)
	r.Get("/payroll/{staffId}/export", h.export)
	r.Get("/payroll/{staffId}/adjustments", h.listAdjustments)
	r.Put("/payroll/{staffId}/adjustments", h.saveAdjustments)
	r.Post("/payroll/{staffId}/ot", h.addOT)
}

func (h PayrollHandler) compute(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(chi.URLParam(r, "staffId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	month := r.URL.Query().Get("month")
	mode := domain.ProrationMode(r.URL.Query().Get("mode"))

	stmt, err := h.Service.ComputeSalary(r.Context(), staffID, month, mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statementToJSON(*stmt))
}

func (h PayrollHandler) export(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(chi.URLParam(r, "staffId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	month := r.URL.Query().Get("month")
	mode := domain.ProrationMode(r.URL.Query().Get("mode"))

	stmt, err := h.Service.ComputeSalary(r.Context(), staffID, month, mode)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	data, err := exportStatementXLSX(*stmt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"payroll_%d_%s.xlsx\"", staffID, stmt.Month))
	_, _ = w.Write(data)
}

func (h PayrollHandler) listAdjustments(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(chi.URLParam(r, "staffId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}
	items, err := h.Adjustments.ListForMonth(r.Context(), staffID, month)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, a := range items {
		resp = append(resp, map[string]any{
			"id":      strconv.FormatInt(a.ID, 10),
			"staffId": a.StaffID,
			"month":   a.Month,
			"type":    string(a.Type),
			"amount":  a.Amount.StringFixed(2),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// saveAdjustments replaces the manual extra-days/incentive/advance amounts for
// the month. OT rows are append-only and go through addOT instead.
func (h PayrollHandler) saveAdjustments(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(chi.URLParam(r, "staffId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	var req struct {
		Month     string          `json:"month"`
		ExtraDays decimal.Decimal `json:"extraDays"`
		Incentive decimal.Decimal `json:"incentive"`
		Advance   decimal.Decimal `json:"advance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Month == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}
	if req.ExtraDays.IsNegative() || req.Incentive.IsNegative() || req.Advance.IsNegative() {
		writeError(w, http.StatusBadRequest, "adjustment amounts must not be negative")
		return
	}
	if err := h.Adjustments.ReplaceForMonth(r.Context(), staffID, req.Month, req.ExtraDays, req.Incentive, req.Advance); err != nil {
		writeStaffWriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h PayrollHandler) addOT(w http.ResponseWriter, r *http.Request) {
	staffID, err := strconv.ParseInt(chi.URLParam(r, "staffId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid staff id")
		return
	}
	var req struct {
		Month  string          `json:"month"`
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Month == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		writeError(w, http.StatusBadRequest, "amount must be positive")
		return
	}
	if err := h.Adjustments.AddOT(r.Context(), staffID, req.Month, req.Amount); err != nil {
		writeStaffWriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func statementToJSON(stmt domain.PayrollStatement) map[string]any {
	return map[string]any{
		"staffId":        stmt.StaffID,
		"month":          stmt.Month,
		"mode":           string(stmt.Mode),
		"daysInMonth":    stmt.DaysInMonth,
		"attendanceDays": stmt.AttendanceDays,
		"leaveDays":      stmt.LeaveDays,
		"otHours":        stmt.OTHours,
		"ot":             stmt.OT.StringFixed(2),
		"extraDays":      stmt.ExtraDays.StringFixed(2),
		"incentive":      stmt.Incentive.StringFixed(2),
		"advance":        stmt.Advance.StringFixed(2),
		"leaveDeduction": stmt.LeaveDeduction.StringFixed(2),
		"salaryToCredit": stmt.SalaryToCredit.StringFixed(2),
	}
}

func exportStatementXLSX(stmt domain.PayrollStatement) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Payroll"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	rows := [][]any{
		{"Staff ID", stmt.StaffID},
		{"Month", stmt.Month},
		{"Proration Mode", string(stmt.Mode)},
		{"Days In Month", stmt.DaysInMonth},
		{"Attendance Days", stmt.AttendanceDays},
		{"Leave Days", stmt.LeaveDays},
		{"OT Hours", stmt.OTHours},
		{"OT", stmt.OT.StringFixed(2)},
		{"Extra Days", stmt.ExtraDays.StringFixed(2)},
		{"Incentive", stmt.Incentive.StringFixed(2)},
		{"Advance", stmt.Advance.StringFixed(2)},
		{"Leave Deduction", stmt.LeaveDeduction.StringFixed(2)},
		{"Salary To Credit", stmt.SalaryToCredit.StringFixed(2)},
	}
	for r, values := range rows {
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 18)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	_ = f.SetCellStyle(sheet, "A1", "A13", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
