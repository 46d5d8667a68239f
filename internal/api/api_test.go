package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergic-nexum/supplier-cli/internal/model"
	"github.com/synergic-nexum/supplier-cli/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.SQLiteStore) {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	srv := httptest.NewServer(NewRouter(st, Options{}))
	t.Cleanup(srv.Close)
	return srv, st
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func fptr(v float64) *float64 { return &v }

func seedSuppliers(t *testing.T, st *store.SQLiteStore) {
	t.Helper()
	_, err := st.ReplaceSuppliers(context.Background(), []model.Supplier{
		{
			SupplierID: "S1", Name: "Lacteos del Sur", Country: "Chile", Category: "lacteos",
			IsActive: true, UnitCost: fptr(1.0), QualityScore: fptr(5), SustainabilityScore: fptr(4),
		},
		{
			SupplierID: "S2", Name: "Granja Norte", Country: "Chile", Category: "lacteos",
			IsActive: true, UnitCost: fptr(2.0), QualityScore: fptr(3), SustainabilityScore: fptr(2),
		},
	})
	require.NoError(t, err)
}

func TestAPI_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	var body map[string]string
	status := getJSON(t, srv.URL+"/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestAPI_Suppliers(t *testing.T) {
	srv, st := newTestServer(t)
	seedSuppliers(t, st)

	var body struct {
		Count     int              `json:"count"`
		Suppliers []model.Supplier `json:"suppliers"`
	}
	status := getJSON(t, srv.URL+"/api/v1/suppliers", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, body.Count)

	status = getJSON(t, srv.URL+"/api/v1/suppliers?esg=true", &body)
	assert.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, "S1", body.Suppliers[0].SupplierID)

	status = getJSON(t, srv.URL+"/api/v1/suppliers?min_quality=4", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Count)
}

func TestAPI_Ranking(t *testing.T) {
	srv, st := newTestServer(t)
	seedSuppliers(t, st)

	var body struct {
		Preset  string `json:"preset"`
		Ranking []struct {
			SupplierID string  `json:"supplier_id"`
			TotalScore float64 `json:"total_score"`
			Rank       int     `json:"rank"`
		} `json:"ranking"`
	}
	status := getJSON(t, srv.URL+"/api/v1/ranking?preset=cost", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "cost", body.Preset)
	require.Len(t, body.Ranking, 2)
	// S1 is cheaper, so it wins the cost preset.
	assert.Equal(t, "S1", body.Ranking[0].SupplierID)
	assert.Equal(t, 1, body.Ranking[0].Rank)
	assert.Equal(t, 2, body.Ranking[1].Rank)
}

func TestAPI_Ranking_UnknownPresetFallsBack(t *testing.T) {
	srv, st := newTestServer(t)
	seedSuppliers(t, st)

	var body struct {
		Preset string `json:"preset"`
	}
	status := getJSON(t, srv.URL+"/api/v1/ranking?preset=nope", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "balanced", body.Preset)
}

func TestAPI_KPIs(t *testing.T) {
	srv, st := newTestServer(t)
	seedSuppliers(t, st)

	delivered := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	_, err := st.ReplaceOrders(context.Background(), []model.Order{
		{
			OrderID: "O1", SupplierID: "S1", SKU: "SKU-1",
			OrderDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			PromiseDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			DeliveryDate: &delivered,
			QtyOrdered:  100, QtyReceived: 100,
		},
	})
	require.NoError(t, err)

	var summary struct {
		OTIFPct     float64 `json:"otif_pct"`
		FillRatePct float64 `json:"fill_rate_pct"`
	}
	status := getJSON(t, srv.URL+"/api/v1/kpis?supplier=S1", &summary)
	assert.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 100, summary.OTIFPct, 1e-9)
	assert.InDelta(t, 100, summary.FillRatePct, 1e-9)

	// S2 has no orders: everything zero.
	status = getJSON(t, srv.URL+"/api/v1/kpis?supplier=S2", &summary)
	assert.Equal(t, http.StatusOK, status)
	assert.Zero(t, summary.OTIFPct)
}

func TestAPI_Uploads(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.RecordUpload(context.Background(), store.Upload{Filename: "suppliers.csv", DataType: "supplier", Records: 2}))

	var body struct {
		Count int `json:"count"`
	}
	status := getJSON(t, srv.URL+"/api/v1/uploads", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, body.Count)
}

func TestAPI_RateLimit(t *testing.T) {
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "rl.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))

	srv := httptest.NewServer(NewRouter(st, Options{RateLimit: 0.001}))
	t.Cleanup(srv.Close)

	// Burst of 1: first request passes, second is rejected.
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}
