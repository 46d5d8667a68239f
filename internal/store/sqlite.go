package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS suppliers (
	supplier_id              TEXT PRIMARY KEY,
	name                     TEXT NOT NULL,
	country                  TEXT NOT NULL DEFAULT '',
	region                   TEXT NOT NULL DEFAULT '',
	city                     TEXT NOT NULL DEFAULT '',
	category                 TEXT NOT NULL DEFAULT '',
	certifications           TEXT NOT NULL DEFAULT '[]',
	is_active                INTEGER NOT NULL DEFAULT 1,
	lat                      REAL,
	lon                      REAL,
	unit_cost                REAL,
	lead_time_days           REAL,
	lead_time_sigma          REAL,
	distance_km              REAL,
	quality_score_1_5        REAL,
	service_score_1_5        REAL,
	sustainability_score_1_5 REAL,
	otif_pct                 REAL,
	capacity_units_month     REAL,
	moq                      REAL,
	risk_score_1_5           REAL,
	payment_terms_days       INTEGER NOT NULL DEFAULT 30,
	contact_email            TEXT NOT NULL DEFAULT '',
	notes                    TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS orders (
	order_id      TEXT PRIMARY KEY,
	supplier_id   TEXT NOT NULL,
	sku           TEXT NOT NULL,
	category      TEXT NOT NULL DEFAULT '',
	order_date    DATETIME NOT NULL,
	promise_date  DATETIME NOT NULL,
	delivery_date DATETIME,
	qty_ordered   REAL NOT NULL DEFAULT 0,
	qty_received  REAL NOT NULL DEFAULT 0,
	unit_price    REAL NOT NULL DEFAULT 0,
	incoterm      TEXT NOT NULL DEFAULT '',
	site          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS payments (
	invoice_id     TEXT PRIMARY KEY,
	supplier_id    TEXT NOT NULL,
	invoice_date   DATETIME NOT NULL,
	due_date       DATETIME NOT NULL,
	paid_date      DATETIME,
	amount         REAL NOT NULL DEFAULT 0,
	payment_method TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS inventory (
	id           TEXT PRIMARY KEY,
	site         TEXT NOT NULL,
	sku          TEXT NOT NULL,
	date         DATETIME NOT NULL,
	on_hand      REAL NOT NULL DEFAULT 0,
	safety_stock REAL NOT NULL DEFAULT 0,
	daily_demand REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS consumer_events (
	event_id                TEXT PRIMARY KEY,
	store                   TEXT NOT NULL DEFAULT '',
	category                TEXT NOT NULL DEFAULT '',
	date                    DATETIME NOT NULL,
	stockout_flag           INTEGER NOT NULL DEFAULT 0,
	substitution_flag       INTEGER NOT NULL DEFAULT 0,
	decision_time_sec       REAL NOT NULL DEFAULT 0,
	unit_price_visible_flag INTEGER NOT NULL DEFAULT 0,
	label_read_time_sec     REAL NOT NULL DEFAULT 0,
	label_clarity_1_5       REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS uploads (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	data_type  TEXT NOT NULL,
	records    INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_suppliers_country ON suppliers(country);
CREATE INDEX IF NOT EXISTS idx_suppliers_category ON suppliers(category);
CREATE INDEX IF NOT EXISTS idx_orders_supplier_id ON orders(supplier_id);
CREATE INDEX IF NOT EXISTS idx_payments_supplier_id ON payments(supplier_id);
CREATE INDEX IF NOT EXISTS idx_inventory_site_sku ON inventory(site, sku);
CREATE INDEX IF NOT EXISTS idx_events_category ON consumer_events(category);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ReplaceSuppliers(ctx context.Context, suppliers []model.Supplier) (int, error) {
	const q = `INSERT OR REPLACE INTO suppliers (
		supplier_id, name, country, region, city, category, certifications, is_active,
		lat, lon, unit_cost, lead_time_days, lead_time_sigma, distance_km,
		quality_score_1_5, service_score_1_5, sustainability_score_1_5, otif_pct,
		capacity_units_month, moq, risk_score_1_5, payment_terms_days, contact_email, notes
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var n int
	for i := range suppliers {
		sup := &suppliers[i]
		certs, err := json.Marshal(sup.Certifications)
		if err != nil {
			return n, eris.Wrapf(err, "sqlite: marshal certifications %s", sup.SupplierID)
		}
		_, err = s.db.ExecContext(ctx, q,
			sup.SupplierID, sup.Name, sup.Country, sup.Region, sup.City, sup.Category, string(certs), sup.IsActive,
			sup.Lat, sup.Lon, sup.UnitCost, sup.LeadTimeDays, sup.LeadTimeSigma, sup.DistanceKM,
			sup.QualityScore, sup.ServiceScore, sup.SustainabilityScore, sup.OTIFPct,
			sup.CapacityUnitsMonth, sup.MOQ, sup.RiskScore, sup.PaymentTermsDays, sup.ContactEmail, sup.Notes,
		)
		if err != nil {
			return n, eris.Wrapf(err, "sqlite: upsert supplier %s", sup.SupplierID)
		}
		n++
	}
	return n, nil
}

func (s *SQLiteStore) ListSuppliers(ctx context.Context, filter SupplierFilter) ([]model.Supplier, error) {
	query := `SELECT supplier_id, name, country, region, city, category, certifications, is_active,
		lat, lon, unit_cost, lead_time_days, lead_time_sigma, distance_km,
		quality_score_1_5, service_score_1_5, sustainability_score_1_5, otif_pct,
		capacity_units_month, moq, risk_score_1_5, payment_terms_days, contact_email, notes
		FROM suppliers WHERE 1=1`
	var args []any

	if filter.Country != "" {
		query += ` AND country = ?`
		args = append(args, filter.Country)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	if filter.ActiveOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY supplier_id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list suppliers")
	}
	defer rows.Close()

	var suppliers []model.Supplier
	for rows.Next() {
		var sup model.Supplier
		var certsJSON string
		err := rows.Scan(
			&sup.SupplierID, &sup.Name, &sup.Country, &sup.Region, &sup.City, &sup.Category, &certsJSON, &sup.IsActive,
			&sup.Lat, &sup.Lon, &sup.UnitCost, &sup.LeadTimeDays, &sup.LeadTimeSigma, &sup.DistanceKM,
			&sup.QualityScore, &sup.ServiceScore, &sup.SustainabilityScore, &sup.OTIFPct,
			&sup.CapacityUnitsMonth, &sup.MOQ, &sup.RiskScore, &sup.PaymentTermsDays, &sup.ContactEmail, &sup.Notes,
		)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan supplier")
		}
		if err := json.Unmarshal([]byte(certsJSON), &sup.Certifications); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal certifications %s", sup.SupplierID)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, eris.Wrap(rows.Err(), "sqlite: list suppliers iterate")
}

func (s *SQLiteStore) ReplaceOrders(ctx context.Context, orders []model.Order) (int, error) {
	const q = `INSERT OR REPLACE INTO orders (
		order_id, supplier_id, sku, category, order_date, promise_date, delivery_date,
		qty_ordered, qty_received, unit_price, incoterm, site
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var n int
	for i := range orders {
		o := &orders[i]
		_, err := s.db.ExecContext(ctx, q,
			o.OrderID, o.SupplierID, o.SKU, o.Category, o.OrderDate, o.PromiseDate, o.DeliveryDate,
			o.QtyOrdered, o.QtyReceived, o.UnitPrice, o.Incoterm, o.Site,
		)
		if err != nil {
			return n, eris.Wrapf(err, "sqlite: upsert order %s", o.OrderID)
		}
		n++
	}
	return n, nil
}

func (s *SQLiteStore) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error) {
	query := `SELECT order_id, supplier_id, sku, category, order_date, promise_date, delivery_date,
		qty_ordered, qty_received, unit_price, incoterm, site FROM orders WHERE 1=1`
	var args []any

	if filter.SupplierID != "" {
		query += ` AND supplier_id = ?`
		args = append(args, filter.SupplierID)
	}
	if filter.Site != "" {
		query += ` AND site = ?`
		args = append(args, filter.Site)
	}
	query += ` ORDER BY order_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list orders")
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		var delivery sql.NullTime
		err := rows.Scan(&o.OrderID, &o.SupplierID, &o.SKU, &o.Category, &o.OrderDate, &o.PromiseDate, &delivery,
			&o.QtyOrdered, &o.QtyReceived, &o.UnitPrice, &o.Incoterm, &o.Site)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan order")
		}
		if delivery.Valid {
			t := delivery.Time
			o.DeliveryDate = &t
		}
		orders = append(orders, o)
	}
	return orders, eris.Wrap(rows.Err(), "sqlite: list orders iterate")
}

func (s *SQLiteStore) ReplacePayments(ctx context.Context, payments []model.Payment) (int, error) {
	const q = `INSERT OR REPLACE INTO payments (
		invoice_id, supplier_id, invoice_date, due_date, paid_date, amount, payment_method
	) VALUES (?, ?, ?, ?, ?, ?, ?)`

	var n int
	for i := range payments {
		p := &payments[i]
		_, err := s.db.ExecContext(ctx, q,
			p.InvoiceID, p.SupplierID, p.InvoiceDate, p.DueDate, p.PaidDate, p.Amount, p.PaymentMethod,
		)
		if err != nil {
			return n, eris.Wrapf(err, "sqlite: upsert payment %s", p.InvoiceID)
		}
		n++
	}
	return n, nil
}

func (s *SQLiteStore) ListPayments(ctx context.Context, filter PaymentFilter) ([]model.Payment, error) {
	query := `SELECT invoice_id, supplier_id, invoice_date, due_date, paid_date, amount, payment_method
		FROM payments WHERE 1=1`
	var args []any

	if filter.SupplierID != "" {
		query += ` AND supplier_id = ?`
		args = append(args, filter.SupplierID)
	}
	query += ` ORDER BY invoice_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list payments")
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		var paid sql.NullTime
		err := rows.Scan(&p.InvoiceID, &p.SupplierID, &p.InvoiceDate, &p.DueDate, &paid, &p.Amount, &p.PaymentMethod)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan payment")
		}
		if paid.Valid {
			t := paid.Time
			p.PaidDate = &t
		}
		payments = append(payments, p)
	}
	return payments, eris.Wrap(rows.Err(), "sqlite: list payments iterate")
}

func (s *SQLiteStore) ReplaceInventory(ctx context.Context, records []model.InventoryRecord) (int, error) {
	const q = `INSERT INTO inventory (id, site, sku, date, on_hand, safety_stock, daily_demand)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	var n int
	for i := range records {
		r := &records[i]
		_, err := s.db.ExecContext(ctx, q,
			uuid.New().String(), r.Site, r.SKU, r.Date, r.OnHand, r.SafetyStock, r.DailyDemand,
		)
		if err != nil {
			return n, eris.Wrapf(err, "sqlite: insert inventory %s/%s", r.Site, r.SKU)
		}
		n++
	}
	return n, nil
}

func (s *SQLiteStore) ListInventory(ctx context.Context, filter InventoryFilter) ([]model.InventoryRecord, error) {
	query := `SELECT site, sku, date, on_hand, safety_stock, daily_demand FROM inventory WHERE 1=1`
	var args []any

	if filter.Site != "" {
		query += ` AND site = ?`
		args = append(args, filter.Site)
	}
	if filter.SKU != "" {
		query += ` AND sku = ?`
		args = append(args, filter.SKU)
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list inventory")
	}
	defer rows.Close()

	var records []model.InventoryRecord
	for rows.Next() {
		var r model.InventoryRecord
		if err := rows.Scan(&r.Site, &r.SKU, &r.Date, &r.OnHand, &r.SafetyStock, &r.DailyDemand); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan inventory")
		}
		records = append(records, r)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: list inventory iterate")
}

func (s *SQLiteStore) ReplaceEvents(ctx context.Context, events []model.ConsumerEvent) (int, error) {
	const q = `INSERT OR REPLACE INTO consumer_events (
		event_id, store, category, date, stockout_flag, substitution_flag, decision_time_sec,
		unit_price_visible_flag, label_read_time_sec, label_clarity_1_5
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var n int
	for i := range events {
		e := &events[i]
		_, err := s.db.ExecContext(ctx, q,
			e.EventID, e.Store, e.Category, e.Date, e.StockoutFlag, e.SubstitutionFlag, e.DecisionTimeSec,
			e.UnitPriceVisibleFlag, e.LabelReadTimeSec, e.LabelClarity,
		)
		if err != nil {
			return n, eris.Wrapf(err, "sqlite: upsert event %s", e.EventID)
		}
		n++
	}
	return n, nil
}

func (s *SQLiteStore) ListEvents(ctx context.Context, filter EventFilter) ([]model.ConsumerEvent, error) {
	query := `SELECT event_id, store, category, date, stockout_flag, substitution_flag, decision_time_sec,
		unit_price_visible_flag, label_read_time_sec, label_clarity_1_5 FROM consumer_events WHERE 1=1`
	var args []any

	if filter.Store != "" {
		query += ` AND store = ?`
		args = append(args, filter.Store)
	}
	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list events")
	}
	defer rows.Close()

	var events []model.ConsumerEvent
	for rows.Next() {
		var e model.ConsumerEvent
		err := rows.Scan(&e.EventID, &e.Store, &e.Category, &e.Date, &e.StockoutFlag, &e.SubstitutionFlag,
			&e.DecisionTimeSec, &e.UnitPriceVisibleFlag, &e.LabelReadTimeSec, &e.LabelClarity)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan event")
		}
		events = append(events, e)
	}
	return events, eris.Wrap(rows.Err(), "sqlite: list events iterate")
}

func (s *SQLiteStore) RecordUpload(ctx context.Context, upload Upload) error {
	if upload.ID == "" {
		upload.ID = uuid.New().String()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (id, filename, data_type, records, created_at) VALUES (?, ?, ?, ?, ?)`,
		upload.ID, upload.Filename, upload.DataType, upload.Records, upload.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: record upload")
}

func (s *SQLiteStore) ListUploads(ctx context.Context, limit int) ([]Upload, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, data_type, records, created_at FROM uploads ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list uploads")
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		var u Upload
		if err := rows.Scan(&u.ID, &u.Filename, &u.DataType, &u.Records, &u.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan upload")
		}
		uploads = append(uploads, u)
	}
	return uploads, eris.Wrap(rows.Err(), "sqlite: list uploads iterate")
}
