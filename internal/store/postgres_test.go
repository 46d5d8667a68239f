package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_ListSuppliers(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	cost := 1.5
	rows := pgxmock.NewRows([]string{
		"supplier_id", "name", "country", "region", "city", "category", "certifications", "is_active",
		"lat", "lon", "unit_cost", "lead_time_days", "lead_time_sigma", "distance_km",
		"quality_score_1_5", "service_score_1_5", "sustainability_score_1_5", "otif_pct",
		"capacity_units_month", "moq", "risk_score_1_5", "payment_terms_days", "contact_email", "notes",
	}).AddRow(
		"S1", "Lacteos del Sur", "Chile", "", "", "lacteos", []string{"ISO9001"}, true,
		nil, nil, &cost, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil, 30, "", "",
	)

	mock.ExpectQuery(`SELECT .+ FROM suppliers WHERE 1=1 AND country = \$1 ORDER BY supplier_id`).
		WithArgs("Chile").
		WillReturnRows(rows)

	got, err := s.ListSuppliers(context.Background(), SupplierFilter{Country: "Chile"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "S1", got[0].SupplierID)
	require.NotNil(t, got[0].UnitCost)
	assert.InDelta(t, 1.5, *got[0].UnitCost, 1e-9)
	assert.Nil(t, got[0].MOQ)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListSuppliers_QueryError(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM suppliers`).
		WillReturnError(pgx.ErrTxClosed)

	_, err := s.ListSuppliers(context.Background(), SupplierFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list suppliers")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceSuppliers_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TEMP TABLE "_tmp_upsert_suppliers"`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectCopyFrom(pgx.Identifier{"_tmp_upsert_suppliers"}, supplierColumns).
		WillReturnResult(1)
	mock.ExpectExec(`INSERT INTO "suppliers" .+ ON CONFLICT \("supplier_id"\) DO UPDATE SET`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectRollback()

	n, err := s.ReplaceSuppliers(context.Background(), []model.Supplier{
		{SupplierID: "S1", Name: "Granja Norte", IsActive: true, PaymentTermsDays: 30},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceSuppliers_Empty(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	n, err := s.ReplaceSuppliers(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ReplaceInventory_Copy(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"inventory"}, inventoryColumns).WillReturnResult(2)

	n, err := s.ReplaceInventory(context.Background(), []model.InventoryRecord{
		{Site: "CD-1", SKU: "SKU-1", Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), OnHand: 20, SafetyStock: 10},
		{Site: "CD-1", SKU: "SKU-2", Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), OnHand: 5, SafetyStock: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListOrders(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	orderDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	promiseDate := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{
		"order_id", "supplier_id", "sku", "category", "order_date", "promise_date", "delivery_date",
		"qty_ordered", "qty_received", "unit_price", "incoterm", "site",
	}).AddRow("O1", "S1", "SKU-1", "", orderDate, promiseDate, (*time.Time)(nil), 100.0, 100.0, 2.5, "", "CD-1")

	mock.ExpectQuery(`SELECT .+ FROM orders WHERE 1=1 AND supplier_id = \$1 ORDER BY order_date`).
		WithArgs("S1").
		WillReturnRows(rows)

	got, err := s.ListOrders(context.Background(), OrderFilter{SupplierID: "S1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "O1", got[0].OrderID)
	assert.Nil(t, got[0].DeliveryDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_RecordUpload(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO uploads`).
		WithArgs(pgxmock.AnyArg(), "suppliers.csv", "supplier", 12, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.RecordUpload(context.Background(), Upload{Filename: "suppliers.csv", DataType: "supplier", Records: 12})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListUploads(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	created := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "filename", "data_type", "records", "created_at"}).
		AddRow("u1", "orders.xlsx", "order", 340, created)

	mock.ExpectQuery(`SELECT id, filename, data_type, records, created_at FROM uploads ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(50).
		WillReturnRows(rows)

	got, err := s.ListUploads(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "orders.xlsx", got[0].Filename)
	assert.NoError(t, mock.ExpectationsWereMet())
}
