package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"
	"salondesk-backend/internal/service"

	"github.com/go-chi/chi/v5"
)

type CustomerHandler struct {
	Repo repository.CustomerRepository
}

func (h CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.list)
	r.Get("/customers/{id}", h.get)
	r.Post("/customers", h.upsert)
	r.Put("/customers/{id}", h.upsertByID)
	r.Delete("/customers/{id}", h.delete)
}

func (h CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
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
	for _, c := range items {
		resp = append(resp, customerToJSON(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CustomerHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	c, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, customerToJSON(*c))
}

func (h CustomerHandler) upsert(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

func (h CustomerHandler) upsertByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	h.save(w, r, id)
}

func (h CustomerHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		OutletID *int64 `json:"outletId"`
		Name     string `json:"name"`
		Mobile   string `json:"mobile"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if !service.ValidMobile(req.Mobile) {
		writeError(w, http.StatusBadRequest, "mobile must be a valid 10 digit number")
		return
	}
	c, err := h.Repo.Upsert(r.Context(), domain.Customer{
		ID:       id,
		OutletID: req.OutletID,
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, customerToJSON(*c))
}

func (h CustomerHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func customerToJSON(c domain.Customer) map[string]any {
	return map[string]any{
		"id":       strconv.FormatInt(c.ID, 10),
		"outletId": c.OutletID,
		"name":     c.Name,
		"mobile":   c.Mobile,
		"email":    c.Email,
	}
}
