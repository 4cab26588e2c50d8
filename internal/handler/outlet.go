package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"salondesk-backend/internal/domain"
	"salondesk-backend/internal/repository"

	"github.com/go-chi/chi/v5"
)

type OutletHandler struct {
	Repo repository.OutletRepository
}

func (h OutletHandler) RegisterRoutes(r chi.Router) {
	r.Get("/outlets", h.list)
	r.Get("/outlets/{id}", h.get)
	r.Post("/outlets", h.upsert)
	r.Put("/outlets/{id}", h.upsertByID)
}

func (h OutletHandler) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.Repo.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, o := range items {
		resp = append(resp, outletToJSON(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h OutletHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet id")
		return
	}
	o, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "outlet not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outletToJSON(*o))
}

func (h OutletHandler) upsert(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, 0)
}

func (h OutletHandler) upsertByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outlet id")
		return
	}
	h.save(w, r, id)
}

func (h OutletHandler) save(w http.ResponseWriter, r *http.Request, id int64) {
	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
		Phone   string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	o, err := h.Repo.Upsert(r.Context(), domain.Outlet{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, outletToJSON(*o))
}

func outletToJSON(o domain.Outlet) map[string]any {
	return map[string]any{
		"id":      strconv.FormatInt(o.ID, 10),
		"name":    o.Name,
		"address": o.Address,
		"phone":   o.Phone,
	}
}
