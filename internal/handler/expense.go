package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type ExpenseHandler struct {
	Repo repository.ExpenseRepository
}

func (h ExpenseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/expenses", h.list)
	r.Get("/expenses/export", h.export)
	r.Post("/expenses", h.create)
	r.Delete("/expenses/{id}", h.delete)
}

func (h ExpenseHandler) list(w http.ResponseWriter, r *http.Request) {
	outletID, err := scopedOutletID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outletId")
		return
	}
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		writeError(w, http.StatusBadRequest, "startDate must be before endDate")
		return
	}

	var items []domain.Expense
	if startDate != nil || endDate != nil {
		items, err = h.Repo.ListFiltered(r.Context(), outletID, startDate, endDate)
	} else {
		items, err = h.Repo.List(r.Context(), outletID, 200)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, e := range items {
		resp = append(resp, expenseToJSON(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ExpenseHandler) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	outletID, err := scopedOutletID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outletId")
		return
	}
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}
	if startDate != nil && endDate != nil && startDate.After(*endDate) {
		writeError(w, http.StatusBadRequest, "startDate must be before endDate")
		return
	}

	var items []domain.Expense
	if startDate != nil || endDate != nil {
		items, err = h.Repo.ListFiltered(r.Context(), outletID, startDate, endDate)
	} else {
		items, err = h.Repo.List(r.Context(), outletID, 2000)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filenameSuffix := time.Now().Format("20060102_150405")
	if startDate != nil && endDate != nil {
		filenameSuffix = fmt.Sprintf("%s_%s", startDate.Format("20060102"), endDate.Format("20060102"))
	}

	switch format {
	case "csv":
		data, err := exportExpenseCSV(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"", filenameSuffix))
		_, _ = w.Write(data)
	case "xlsx", "excel":
		data, err := exportExpenseXLSX(items)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"", filenameSuffix))
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func exportExpenseCSV(items []domain.Expense) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"id", "outlet_id", "title", "amount", "category", "date", "note"})
	for _, e := range items {
		outlet := ""
		if e.OutletID != nil {
			outlet = strconv.FormatInt(*e.OutletID, 10)
		}
		_ = w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			outlet,
			e.Title,
			e.Amount.StringFixed(2),
			e.Category,
			e.Date.Format(dateLayout),
			e.Note,
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func exportExpenseXLSX(items []domain.Expense) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Expenses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	header := []string{"ID", "Outlet", "Title", "Amount", "Category", "Date", "Note"}
	for c, v := range header {
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		_ = f.SetCellValue(sheet, cell, v)
	}
	for r, e := range items {
		row := r + 2
		outlet := ""
		if e.OutletID != nil {
			outlet = strconv.FormatInt(*e.OutletID, 10)
		}
		values := []any{
			e.ID,
			outlet,
			e.Title,
			e.Amount.StringFixed(2),
			e.Category,
			e.Date.Format(dateLayout),
			e.Note,
		}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 10)
	_ = f.SetColWidth(sheet, "C", "C", 28)
	_ = f.SetColWidth(sheet, "D", "D", 14)
	_ = f.SetColWidth(sheet, "E", "E", 18)
	_ = f.SetColWidth(sheet, "F", "F", 12)
	_ = f.SetColWidth(sheet, "G", "G", 28)

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1F2937"}, Pattern: 1},
	})
	_ = f.SetCellStyle(sheet, "A1", "G1", style)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (h ExpenseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OutletID *int64          `json:"outletId"`
		Title    string          `json:"title"`
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
		Date     string          `json:"date"`
		Note     string          `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Amount.IsNegative() {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	dt := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		dt = parsed
	}
	e, err := h.Repo.Create(r.Context(), repository.CreateExpenseInput{
		OutletID: req.OutletID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     dt,
		Note:     req.Note,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, expenseToJSON(*e))
}

func (h ExpenseHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func expenseToJSON(e domain.Expense) map[string]any {
	return map[string]any{
		"id":       strconv.FormatInt(e.ID, 10),
		"outletId": e.OutletID,
		"title":    e.Title,
		"amount":   e.Amount.StringFixed(2),
		"category": e.Category,
		"date":     e.Date.Format(dateLayout),
		"note":     e.Note,
	}
}
