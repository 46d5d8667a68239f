package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/synergic-nexum/supplier-cli/internal/db"
	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS suppliers (
	supplier_id              TEXT PRIMARY KEY,
	name                     TEXT NOT NULL,
	country                  TEXT NOT NULL DEFAULT '',
	region                   TEXT NOT NULL DEFAULT '',
	city                     TEXT NOT NULL DEFAULT '',
	category                 TEXT NOT NULL DEFAULT '',
	certifications           TEXT[] NOT NULL DEFAULT '{}',
	is_active                BOOLEAN NOT NULL DEFAULT TRUE,
	lat                      DOUBLE PRECISION,
	lon                      DOUBLE PRECISION,
	unit_cost                DOUBLE PRECISION,
	lead_time_days           DOUBLE PRECISION,
	lead_time_sigma          DOUBLE PRECISION,
	distance_km              DOUBLE PRECISION,
	quality_score_1_5        DOUBLE PRECISION,
	service_score_1_5        DOUBLE PRECISION,
	sustainability_score_1_5 DOUBLE PRECISION,
	otif_pct                 DOUBLE PRECISION,
	capacity_units_month     DOUBLE PRECISION,
	moq                      DOUBLE PRECISION,
	risk_score_1_5           DOUBLE PRECISION,
	payment_terms_days       INTEGER NOT NULL DEFAULT 30,
	contact_email            TEXT NOT NULL DEFAULT '',
	notes                    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS orders (
	order_id      TEXT PRIMARY KEY,
	supplier_id   TEXT NOT NULL,
	sku           TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	order_date    TIMESTAMPTZ NOT NULL,
	promise_date  TIMESTAMPTZ NOT NULL,
	delivery_date TIMESTAMPTZ,
	qty_ordered   DOUBLE PRECISION NOT NULL DEFAULT 0,
	qty_received  DOUBLE PRECISION NOT NULL DEFAULT 0,
	unit_price    DOUBLE PRECISION NOT NULL DEFAULT 0,
	incoterm      TEXT NOT NULL DEFAULT '',
	site          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS payments (
	invoice_id     TEXT PRIMARY KEY,
	supplier_id    TEXT NOT NULL,
	invoice_date   TIMESTAMPTZ NOT NULL,
	due_date       TIMESTAMPTZ NOT NULL,
	paid_date      TIMESTAMPTZ,
	amount         DOUBLE PRECISION NOT NULL DEFAULT 0,
	payment_method TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS inventory (
	id           TEXT PRIMARY KEY,
	site         TEXT NOT NULL,
	sku          TEXT NOT NULL,
	date         TIMESTAMPTZ NOT NULL,
	on_hand      DOUBLE PRECISION NOT NULL DEFAULT 0,
	safety_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
	daily_demand DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS consumer_events (
	event_id                TEXT PRIMARY KEY,
	store                   TEXT NOT NULL DEFAULT '',
	category                TEXT NOT NULL DEFAULT '',
	date                    TIMESTAMPTZ NOT NULL,
	stockout_flag           BOOLEAN NOT NULL DEFAULT FALSE,
	substitution_flag       BOOLEAN NOT NULL DEFAULT FALSE,
	decision_time_sec       DOUBLE PRECISION NOT NULL DEFAULT 0,
	unit_price_visible_flag BOOLEAN NOT NULL DEFAULT FALSE,
	label_read_time_sec     DOUBLE PRECISION NOT NULL DEFAULT 0,
	label_clarity_1_5       DOUBLE PRECISION NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS uploads (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	data_type  TEXT NOT NULL,
	records    INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_suppliers_country ON suppliers(country);
CREATE INDEX IF NOT EXISTS idx_suppliers_category ON suppliers(category);
CREATE INDEX IF NOT EXISTS idx_orders_supplier_id ON orders(supplier_id);
CREATE INDEX IF NOT EXISTS idx_payments_supplier_id ON payments(supplier_id);
CREATE INDEX IF NOT EXISTS idx_inventory_site_sku ON inventory(site, sku);
CREATE INDEX IF NOT EXISTS idx_events_category ON consumer_events(category);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

var supplierColumns = []string{
	"supplier_id", "name", "country", "region", "city", "category", "certifications", "is_active",
	"lat", "lon", "unit_cost", "lead_time_days", "lead_time_sigma", "distance_km",
	"quality_score_1_5", "service_score_1_5", "sustainability_score_1_5", "otif_pct",
	"capacity_units_month", "moq", "risk_score_1_5", "payment_terms_days", "contact_email", "notes",
}

func (s *PostgresStore) ReplaceSuppliers(ctx context.Context, suppliers []model.Supplier) (int, error) {
	rows := make([][]any, 0, len(suppliers))
	for i := range suppliers {
		sup := &suppliers[i]
		certs := sup.Certifications
		if certs == nil {
			certs = []string{}
		}
		rows = append(rows, []any{
			sup.SupplierID, sup.Name, sup.Country, sup.Region, sup.City, sup.Category, certs, sup.IsActive,
			sup.Lat, sup.Lon, sup.UnitCost, sup.LeadTimeDays, sup.LeadTimeSigma, sup.DistanceKM,
			sup.QualityScore, sup.ServiceScore, sup.SustainabilityScore, sup.OTIFPct,
			sup.CapacityUnitsMonth, sup.MOQ, sup.RiskScore, sup.PaymentTermsDays, sup.ContactEmail, sup.Notes,
		})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "suppliers",
		Columns:      supplierColumns,
		ConflictKeys: []string{"supplier_id"},
	}, rows)
	return int(n), err
}

func (s *PostgresStore) ListSuppliers(ctx context.Context, filter SupplierFilter) ([]model.Supplier, error) {
	query := `SELECT supplier_id, name, country, region, city, category, certifications, is_active,
		lat, lon, unit_cost, lead_time_days, lead_time_sigma, distance_km,
		quality_score_1_5, service_score_1_5, sustainability_score_1_5, otif_pct,
		capacity_units_month, moq, risk_score_1_5, payment_terms_days, contact_email, notes
		FROM suppliers WHERE 1=1`
	var args []any

	if filter.Country != "" {
		args = append(args, filter.Country)
		query += ` AND country = $1`
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += placeholderClause(` AND category = `, len(args))
	}
	if filter.ActiveOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY supplier_id`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list suppliers")
	}
	defer rows.Close()

	var suppliers []model.Supplier
	for rows.Next() {
		var sup model.Supplier
		err := rows.Scan(
			&sup.SupplierID, &sup.Name, &sup.Country, &sup.Region, &sup.City, &sup.Category, &sup.Certifications, &sup.IsActive,
			&sup.Lat, &sup.Lon, &sup.UnitCost, &sup.LeadTimeDays, &sup.LeadTimeSigma, &sup.DistanceKM,
			&sup.QualityScore, &sup.ServiceScore, &sup.SustainabilityScore, &sup.OTIFPct,
			&sup.CapacityUnitsMonth, &sup.MOQ, &sup.RiskScore, &sup.PaymentTermsDays, &sup.ContactEmail, &sup.Notes,
		)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan supplier")
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, eris.Wrap(rows.Err(), "postgres: list suppliers iterate")
}

var orderColumns = []string{
	"order_id", "supplier_id", "sku", "category", "order_date", "promise_date", "delivery_date",
	"qty_ordered", "qty_received", "unit_price", "incoterm", "site",
}

func (s *PostgresStore) ReplaceOrders(ctx context.Context, orders []model.Order) (int, error) {
	rows := make([][]any, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		rows = append(rows, []any{
			o.OrderID, o.SupplierID, o.SKU, o.Category, o.OrderDate, o.PromiseDate, o.DeliveryDate,
			o.QtyOrdered, o.QtyReceived, o.UnitPrice, o.Incoterm, o.Site,
		})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "orders",
		Columns:      orderColumns,
		ConflictKeys: []string{"order_id"},
	}, rows)
	return int(n), err
}

func (s *PostgresStore) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := `SELECT order_id, supplier_id, sku, category, order_date, promise_date, delivery_date,
		qty_ordered, qty_received, unit_price, incoterm, site FROM orders WHERE 1=1`
	var args []any

	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		query += placeholderClause(` AND supplier_id = `, len(args))
	}
	if filter.Site != "" {
		args = append(args, filter.Site)
		query += placeholderClause(` AND site = `, len(args))
	}
	query += ` ORDER BY order_date`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list orders")
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(&o.OrderID, &o.SupplierID, &o.SKU, &o.Category, &o.OrderDate, &o.PromiseDate, &o.DeliveryDate,
			&o.QtyOrdered, &o.QtyReceived, &o.UnitPrice, &o.Incoterm, &o.Site)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan order")
		}
		orders = append(orders, o)
	}
	return orders, eris.Wrap(rows.Err(), "postgres: list orders iterate")
}

var paymentColumns = []string{
	"invoice_id", "supplier_id", "invoice_date", "due_date", "paid_date", "amount", "payment_method",
}

func (s *PostgresStore) ReplacePayments(ctx context.Context, payments []model.Payment) (int, error) {
	rows := make([][]any, 0, len(payments))
	for i := range payments {
		p := &payments[i]
		rows = append(rows, []any{
			p.InvoiceID, p.SupplierID, p.InvoiceDate, p.DueDate, p.PaidDate, p.Amount, p.PaymentMethod,
		})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "payments",
		Columns:      paymentColumns,
		ConflictKeys: []string{"invoice_id"},
	}, rows)
	return int(n), err
}

func (s *PostgresStore) ListPayments(ctx context.Context, filter PaymentFilter) ([]model.Payment, error) {
	query := `SELECT invoice_id, supplier_id, invoice_date, due_date, paid_date, amount, payment_method
		FROM payments WHERE 1=1`
	var args []any

	if filter.SupplierID != "" {
		args = append(args, filter.SupplierID)
		query += ` AND supplier_id = $1`
	}
	query += ` ORDER BY invoice_date`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list payments")
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		err := rows.Scan(&p.InvoiceID, &p.SupplierID, &p.InvoiceDate, &p.DueDate, &p.PaidDate, &p.Amount, &p.PaymentMethod)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan payment")
		}
		payments = append(payments, p)
	}
	return payments, eris.Wrap(rows.Err(), "postgres: list payments iterate")
}

var inventoryColumns = []string{"id", "site", "sku", "date", "on_hand", "safety_stock", "daily_demand"}

func (s *PostgresStore) ReplaceInventory(ctx context.Context, records []model.InventoryRecord) (int, error) {
	rows := make([][]any, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []any{
			uuid.New().String(), r.Site, r.SKU, r.Date, r.OnHand, r.SafetyStock, r.DailyDemand,
		})
	}

	n, err := db.CopyFrom(ctx, s.pool, "inventory", inventoryColumns, rows)
	return int(n), err
}

func (s *PostgresStore) ListInventory(ctx context.Context, filter InventoryFilter) ([]model.InventoryRecord, error) {
	query := `SELECT site, sku, date, on_hand, safety_stock, daily_demand FROM inventory WHERE 1=1`
	var args []any

	if filter.Site != "" {
		args = append(args, filter.Site)
		query += placeholderClause(` AND site = `, len(args))
	}
	if filter.SKU != "" {
		args = append(args, filter.SKU)
		query += placeholderClause(` AND sku = `, len(args))
	}
	query += ` ORDER BY date`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list inventory")
	}
	defer rows.Close()

	var records []model.InventoryRecord
	for rows.Next() {
		var r model.InventoryRecord
		if err := rows.Scan(&r.Site, &r.SKU, &r.Date, &r.OnHand, &r.SafetyStock, &r.DailyDemand); err != nil {
			return nil, eris.Wrap(err, "postgres: scan inventory")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "postgres: list inventory iterate")
}

var eventColumns = []string{
	"event_id", "store", "category", "date", "stockout_flag", "substitution_flag", "decision_time_sec",
	"unit_price_visible_flag", "label_read_time_sec", "label_clarity_1_5",
}

func (s *PostgresStore) ReplaceEvents(ctx context.Context, events []model.ConsumerEvent) (int, error) {
	rows := make([][]any, 0, len(events))
	for i := range events {
		e := &events[i]
		rows = append(rows, []any{
			e.EventID, e.Store, e.Category, e.Date, e.StockoutFlag, e.SubstitutionFlag, e.DecisionTimeSec,
			e.UnitPriceVisibleFlag, e.LabelReadTimeSec, e.LabelClarity,
		})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "consumer_events",
		Columns:      eventColumns,
		ConflictKeys: []string{"event_id"},
	}, rows)
	return int(n), err
}

func (s *PostgresStore) ListEvents(ctx context.Context, filter EventFilter) ([]model.ConsumerEvent, error) {
	query := `SELECT event_id, store, category, date, stockout_flag, substitution_flag, decision_time_sec,
		unit_price_visible_flag, label_read_time_sec, label_clarity_1_5 FROM consumer_events WHERE 1=1`
	var args []any

	if filter.Store != "" {
		args = append(args, filter.Store)
		query += placeholderClause(` AND store = `, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += placeholderClause(` AND category = `, len(args))
	}
	query += ` ORDER BY date`

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list events")
	}
	defer rows.Close()

	var events []model.ConsumerEvent
	for rows.Next() {
		var e model.ConsumerEvent
		err := rows.Scan(&e.EventID, &e.Store, &e.Category, &e.Date, &e.StockoutFlag, &e.SubstitutionFlag,
			&e.DecisionTimeSec, &e.UnitPriceVisibleFlag, &e.LabelReadTimeSec, &e.LabelClarity)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan event")
		}
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "postgres: list events iterate")
}

func (s *PostgresStore) RecordUpload(ctx context.Context, upload Upload) error {
	if upload.ID == "" {
		upload.ID = uuid.New().String()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO uploads (id, filename, data_type, records, created_at) VALUES ($1, $2, $3, $4, $5)`,
		upload.ID, upload.Filename, upload.DataType, upload.Records, upload.CreatedAt,
	)
	return eris.Wrap(err, "postgres: record upload")
}

func (s *PostgresStore) ListUploads(ctx context.Context, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, filename, data_type, records, created_at FROM uploads ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list uploads")
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.Filename, &u.DataType, &u.Records, &u.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan upload")
		}
		uploads = append(uploads, u)
	}
	return uploads, eris.Wrap(rows.Err(), "postgres: list uploads iterate")
}

// placeholderClause appends a positional placeholder to a clause fragment.
func placeholderClause(clause string, n int) string {
	return fmt.Sprintf("%s$%d", clause, n)
}
