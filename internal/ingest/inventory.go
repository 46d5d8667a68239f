package ingest

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/synergic-nexum/supplier-cli/internal/fetcher"
	"github.com/synergic-nexum/supplier-cli/internal/model"
)

var inventoryAliases = map[string][]string{
	"site":         {"site", "sitio"},
	"sku":          {"sku"},
	"date":         {"date", "fecha"},
	"on_hand":      {"on_hand", "existencias"},
	"safety_stock": {"safety_stock", "stock_seguridad"},
	"daily_demand": {"daily_demand", "demanda_diaria"},
}

// MapInventory converts a parsed table into inventory records.
func MapInventory(table *fetcher.Table) ([]model.InventoryRecord, error) {
	idx := resolveHeader(table.Header, inventoryAliases)

	var records []model.InventoryRecord
	for n, row := range table.Rows {
		sku := idx.cell(row, "sku")
		if sku == "" {
			zap.L().Warn("ingest: skipping inventory row without sku", zap.Int("row", n+2))
			continue
		}

		date, err := parseDate(idx.cell(row, "date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: inventory sku %s date", sku)
		}

		records = append(records, model.InventoryRecord{
			Site:        idx.cell(row, "site"),
			SKU:         sku,
			Date:        date,
			OnHand:      floatOr(idx.cell(row, "on_hand"), 0),
			SafetyStock: floatOr(idx.cell(row, "safety_stock"), 0),
			DailyDemand: floatOr(idx.cell(row, "daily_demand"), 0),
		})
	}

	return records, nil
}
