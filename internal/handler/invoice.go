package handler

import (
	"net/http"
	"strconv"

	"salondesk-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type InvoiceHandler struct {
	Repo repository.InvoiceRepository
}

func (h InvoiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/invoices", h.list)
}

func (h InvoiceHandler) list(w http.ResponseWriter, r *http.Request) {
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
	for _, inv := range items {
		resp = append(resp, map[string]any{
			"id":             strconv.FormatInt(inv.ID, 10),
			"number":         inv.Number,
			"outletId":       inv.OutletID,
			"customerName":   inv.CustomerName,
			"customerMobile": inv.CustomerMobile,
			"amount":         inv.Amount.StringFixed(2),
			"source":         inv.Source,
			"date":           inv.Date.Format(dateLayout),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
