package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type VoucherHandler struct {
	Service service.VoucherService
}

func (h VoucherHandler) RegisterRoutes(r chi.Router) {
	r.Get("/vouchers", h.list)
	r.Post("/vouchers", h.issue)
	r.Post("/vouchers/{id}/redeem", h.redeem)
}

func (h VoucherHandler) issue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OutletID    *int64          `json:"outletId"`
		Recipient   string          `json:"recipient"`
		DiscountPct decimal.Decimal `json:"discountPct"`
		Type        string          `json:"type"`
		IssueDate   string          `json:"issueDate"`
		ExpiryDate  string          `json:"expiryDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	v, err := h.Service.Issue(r.Context(), service.IssueVoucherInput{
		OutletID:    req.OutletID,
		Recipient:   req.Recipient,
		DiscountPct: req.DiscountPct,
		Type:        req.Type,
		IssueDate:   req.IssueDate,
		ExpiryDate:  req.ExpiryDate,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voucherToJSON(*v))
}

func (h VoucherHandler) redeem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid voucher id")
		return
	}
	v, err := h.Service.Redeem(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voucherToJSON(*v))
}

func (h VoucherHandler) list(w http.ResponseWriter, r *http.Request) {
	outletID, err := scopedOutletID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outletId")
		return
	}
	items, err := h.Service.List(r.Context(), outletID, 500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, v := range items {
		resp = append(resp, voucherToJSON(v))
	}
	writeJSON(w, http.StatusOK, resp)
}

func voucherToJSON(v domain.Voucher) map[string]any {
	resp := map[string]any{
		"id":          strconv.FormatInt(v.ID, 10),
		"outletId":    v.OutletID,
		"recipient":   v.Recipient,
		"discountPct": v.DiscountPct.StringFixed(2),
		"type":        v.Type,
		"issueDate":   v.IssueDate.Format(dateLayout),
		"expiryDate":  v.ExpiryDate.Format(dateLayout),
		"status":      string(v.Status),
	}
	if v.RedeemedAt != nil {
		resp["redeemedAt"] = v.RedeemedAt.Format(time.RFC3339)
	}
	return resp
}
