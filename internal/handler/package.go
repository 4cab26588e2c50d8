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
	"github.com/shopspring/decimal"
)

type PackageHandler struct {
	Repo    repository.PackageRepository
	Records repository.ServiceRecordRepository
	Service service.RedemptionService
}

func (h PackageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/package-templates", h.listTemplates)
	r.Get("/packages", h.list)
	r.Get("/packages/{id}", h.detail)
	r.Post("/packages/assign", h.assign)
	r.Post("/packages/{id}/redeem", h.redeem)
}

// RegisterAdminRoutes mounts the role-gated template and deletion endpoints.
func (h PackageHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/package-templates", h.createTemplate)
	r.Put("/package-templates/{id}", h.updateTemplate)
	r.Delete("/packages/{id}", h.delete)
}

type serviceLinePayload struct {
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	StaffID   *int64          `json:"staffId"`
	StaffName string          `json:"staffName"`
}

func toServiceLineInputs(lines []serviceLinePayload) []service.ServiceLineInput {
	out := make([]service.ServiceLineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, service.ServiceLineInput{
			Name:      l.Name,
			Value:     l.Value,
			StaffID:   l.StaffID,
			StaffName: l.StaffName,
		})
	}
	return out
}

func (h PackageHandler) assign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName    string               `json:"customerName"`
		CustomerMobile  string               `json:"customerMobile"`
		TemplateID      int64                `json:"packageTemplateId"`
		OutletID        int64                `json:"outletId"`
		AssignedDate    string               `json:"assignedDate"`
		InitialServices []serviceLinePayload `json:"initialServices"`
		TargetPct       *decimal.Decimal     `json:"staffTargetPercentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	result, err := h.Service.AssignPackage(r.Context(), service.AssignPackageInput{
		CustomerName:    req.CustomerName,
		CustomerMobile:  req.CustomerMobile,
		TemplateID:      req.TemplateID,
		OutletID:        req.OutletID,
		AssignedDate:    req.AssignedDate,
		InitialServices: toServiceLineInputs(req.InitialServices),
		StaffTargetPct:  req.TargetPct,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := map[string]any{
		"newPackage": packageToJSON(result.Package),
		"newRecords": recordsToJSON(result.Records),
	}
	if result.Invoice != nil {
		resp["invoice"] = map[string]any{
			"number": result.Invoice.Number,
			"amount": result.Invoice.Amount.StringFixed(2),
			"date":   result.Invoice.Date.Format(dateLayout),
		}
	}
	if len(result.Progression) > 0 {
		resp["balanceProgression"] = progressionToJSON(result.Progression)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h PackageHandler) redeem(w http.ResponseWriter, r *http.Request) {
	packageID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	var req struct {
		Services       []serviceLinePayload `json:"services"`
		RedemptionDate string               `json:"redemptionDate"`
		TargetPct      *decimal.Decimal     `json:"staffTargetPercentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	result, err := h.Service.RedeemServices(r.Context(), service.RedeemServicesInput{
		PackageID:      packageID,
		Services:       toServiceLineInputs(req.Services),
		RedemptionDate: req.RedemptionDate,
		StaffTargetPct: req.TargetPct,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updatedPackage":     packageToJSON(result.Package),
		"newRecords":         recordsToJSON(result.Records),
		"balanceProgression": progressionToJSON(result.Progression),
	})
}

func (h PackageHandler) list(w http.ResponseWriter, r *http.Request) {
	outletID, err := scopedOutletID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outletId")
		return
	}
	mobile := r.URL.Query().Get("customerMobile")

	items, err := h.Repo.List(r.Context(), outletID, mobile, 500)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, p := range items {
		resp = append(resp, packageToJSON(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h PackageHandler) detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	pkg, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "package not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	records, err := h.Records.ListByPackage(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"package": packageToJSON(*pkg),
		"history": recordsToJSON(records),
	})
}

func (h PackageHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid package id")
		return
	}
	if err := h.Service.DeletePackage(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h PackageHandler) listTemplates(w http.ResponseWriter, r *http.Request) {
	outletID, err := scopedOutletID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid outletId")
		return
	}
	items, err := h.Repo.ListTemplates(r.Context(), outletID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(items))
	for _, t := range items {
		resp = append(resp, templateToJSON(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

type templatePayload struct {
	Name          string          `json:"name"`
	Kind          string          `json:"kind"`
	Value         decimal.Decimal `json:"value"`
	TotalSittings int             `json:"totalSittings"`
	OutletID      *int64          `json:"outletId"`
}

func (p templatePayload) validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	switch domain.PackageKind(p.Kind) {
	case domain.PackageValue:
		if p.Value.IsNegative() || p.Value.IsZero() {
			return errors.New("value must be positive")
		}
	case domain.PackageSittings:
		if p.TotalSittings <= 0 {
			return errors.New("totalSittings must be positive")
		}
	default:
		return errors.New("kind must be value or sittings")
	}
	return nil
}

func (h PackageHandler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req templatePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.Repo.CreateTemplate(r.Context(), domain.PackageTemplate{
		OutletID:      req.OutletID,
		Name:          req.Name,
		Kind:          domain.PackageKind(req.Kind),
		Value:         req.Value,
		TotalSittings: req.TotalSittings,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, templateToJSON(*t))
}

func (h PackageHandler) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid template id")
		return
	}
	var req templatePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := h.Repo.UpdateTemplate(r.Context(), domain.PackageTemplate{
		ID:            id,
		OutletID:      req.OutletID,
		Name:          req.Name,
		Kind:          domain.PackageKind(req.Kind),
		Value:         req.Value,
		TotalSittings: req.TotalSittings,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, templateToJSON(*t))
}

func packageToJSON(p domain.CustomerPackage) map[string]any {
	return map[string]any{
		"id":             strconv.FormatInt(p.ID, 10),
		"templateId":     p.TemplateID,
		"outletId":       p.OutletID,
		"customerName":   p.CustomerName,
		"customerMobile": p.CustomerMobile,
		"kind":           string(p.Kind),
		"initialValue":   p.InitialValue.StringFixed(2),
		"remainingValue": p.RemainingValue.StringFixed(2),
		"totalSittings":  p.TotalSittings,
		"usedSittings":   p.UsedSittings,
		"assignedDate":   p.AssignedDate.Format(dateLayout),
	}
}

func templateToJSON(t domain.PackageTemplate) map[string]any {
	return map[string]any{
		"id":            strconv.FormatInt(t.ID, 10),
		"outletId":      t.OutletID,
		"name":          t.Name,
		"kind":          string(t.Kind),
		"value":         t.Value.StringFixed(2),
		"totalSittings": t.TotalSittings,
	}
}

func recordsToJSON(records []domain.ServiceRecord) []map[string]any {
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"id":            strconv.FormatInt(rec.ID, 10),
			"packageId":     strconv.FormatInt(rec.PackageID, 10),
			"transactionId": rec.TransactionID,
			"serviceName":   rec.ServiceName,
			"serviceValue":  rec.ServiceValue.StringFixed(2),
			"staffId":       rec.StaffID,
			"staffName":     rec.StaffName,
			"date":          rec.ServiceDate.Format(dateLayout),
		})
	}
	return out
}

func progressionToJSON(steps []service.BalanceStep) []map[string]any {
	out := make([]map[string]any, 0, len(steps))
	for _, s := range steps {
		out = append(out, map[string]any{
			"service":   s.Service,
			"previous":  s.Previous.StringFixed(2),
			"deducted":  s.Deducted.StringFixed(2),
			"remaining": s.Remaining.StringFixed(2),
		})
	}
	return out
}
