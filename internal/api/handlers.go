package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/synergic-nexum/supplier-cli/internal/kpi"
	"github.com/synergic-nexum/supplier-cli/internal/model"
	"github.com/synergic-nexum/supplier-cli/internal/scorer"
	"github.com/synergic-nexum/supplier-cli/internal/store"
)

type handler struct {
	store   store.Store
	windows []int
}

func (h *handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	suppliers, err := h.store.ListSuppliers(r.Context(), store.SupplierFilter{
		Country:    q.Get("country"),
		Category:   q.Get("category"),
		ActiveOnly: boolParam(q.Get("active")),
	})
	if err != nil {
		serverError(w, "list suppliers", err)
		return
	}

	suppliers = model.FilterSuppliers(suppliers, model.SupplierCriteria{
		MinQuality:        floatParam(q.Get("min_quality")),
		MinService:        floatParam(q.Get("min_service")),
		MinSustainability: floatParam(q.Get("min_sustainability")),
		ESGGate:           boolParam(q.Get("esg")),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"count":     len(suppliers),
		"suppliers": suppliers,
	})
}

func (h *handler) ranking(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	suppliers, err := h.store.ListSuppliers(r.Context(), store.SupplierFilter{
		Country:    q.Get("country"),
		Category:   q.Get("category"),
		ActiveOnly: !boolParam(q.Get("include_inactive")),
	})
	if err != nil {
		serverError(w, "list suppliers", err)
		return
	}
	if boolParam(q.Get("esg")) {
		suppliers = model.FilterSuppliers(suppliers, model.SupplierCriteria{ESGGate: true})
	}

	preset := scorer.PresetByName(q.Get("preset"))
	scores := scorer.Score(suppliers, preset.ActiveKPIs, preset.Weights)

	writeJSON(w, http.StatusOK, map[string]any{
		"preset":  preset.Name,
		"count":   len(scores),
		"ranking": scores,
	})
}

func (h *handler) kpis(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ctx := r.Context()
	supplierID := q.Get("supplier")

	suppliers, err := h.store.ListSuppliers(ctx, store.SupplierFilter{})
	if err != nil {
		serverError(w, "list suppliers", err)
		return
	}
	if supplierID != "" {
		suppliers = keepSupplier(suppliers, supplierID)
	}

	orders, err := h.store.ListOrders(ctx, store.OrderFilter{SupplierID: supplierID})
	if err != nil {
		serverError(w, "list orders", err)
		return
	}
	payments, err := h.store.ListPayments(ctx, store.PaymentFilter{SupplierID: supplierID})
	if err != nil {
		serverError(w, "list payments", err)
		return
	}
	inventory, err := h.store.ListInventory(ctx, store.InventoryFilter{})
	if err != nil {
		serverError(w, "list inventory", err)
		return
	}
	events, err := h.store.ListEvents(ctx, store.EventFilter{})
	if err != nil {
		serverError(w, "list events", err)
		return
	}

	summary := kpi.Compute(kpi.Dataset{
		Suppliers: suppliers,
		Orders:    orders,
		Payments:  payments,
		Inventory: inventory,
		Events:    events,
	}, time.Now().UTC(), h.windows)

	writeJSON(w, http.StatusOK, summary)
}

func (h *handler) listUploads(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	uploads, err := h.store.ListUploads(r.Context(), limit)
	if err != nil {
		serverError(w, "list uploads", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(uploads),
		"uploads": uploads,
	})
}

func keepSupplier(suppliers []model.Supplier, id string) []model.Supplier {
	for i := range suppliers {
		if suppliers[i].SupplierID == id {
			return suppliers[i : i+1]
		}
	}
	return nil
}

func boolParam(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func floatParam(v string) float64 {
	f, _ := strconv.ParseFloat(v, 64)
	return f
}

func serverError(w http.ResponseWriter, action string, err error) {
	zap.L().Error(action, zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
