// Package store persists the loaded record collections between commands.
// The analytics core never touches it: commands read batches out and pass
// them to the scoring and KPI functions as plain slices.
package store

import (
	"context"
	"time"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// Upload is the bookkeeping entry for one ingested file.
type Upload struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	DataType  string    `json:"data_type"`
	Records   int       `json:"records"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierFilter narrows supplier listings. Zero values mean no filter.
type SupplierFilter struct {
	Country    string
	Category   string
	ActiveOnly bool
}

// OrderFilter narrows order listings.
type OrderFilter struct {
	SupplierID string
	Site       string
}

// PaymentFilter narrows payment listings.
type PaymentFilter struct {
	SupplierID string
}

// InventoryFilter narrows inventory listings.
type InventoryFilter struct {
	Site string
	SKU  string
}

// EventFilter narrows consumer event listings.
type EventFilter struct {
	Store    string
	Category string
}

// Store is the persistence interface behind the CLI commands. Replace
// methods upsert by primary key so re-importing a corrected file is safe;
// inventory snapshots have no natural key and are appended.
type Store interface {
	ReplaceSuppliers(ctx context.Context, suppliers []model.Supplier) (int, error)
	ListSuppliers(ctx context.Context, filter SupplierFilter) ([]model.Supplier, error)

	ReplaceOrders(ctx context.Context, orders []model.Order) (int, error)
	ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, error)

	ReplacePayments(ctx context.Context, payments []model.Payment) (int, error)
	ListPayments(ctx context.Context, filter PaymentFilter) ([]model.Payment, error)

	ReplaceInventory(ctx context.Context, records []model.InventoryRecord) (int, error)
	ListInventory(ctx context.Context, filter InventoryFilter) ([]model.InventoryRecord, error)

	ReplaceEvents(ctx context.Context, events []model.ConsumerEvent) (int, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]model.ConsumerEvent, error)

	RecordUpload(ctx context.Context, upload Upload) error
	ListUploads(ctx context.Context, limit int) ([]Upload, error)

	Migrate(ctx context.Context) error
	Close() error
}
