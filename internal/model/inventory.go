package model

import "time"

// InventoryRecord is a per-site, per-SKU stock observation.
type InventoryRecord struct {
	Site        string    `json:"site"`
	SKU         string    `json:"sku"`
	Date        time.Time `json:"date"`
	OnHand      float64   `json:"on_hand"`
	SafetyStock float64   `json:"safety_stock"`
	DailyDemand float64   `json:"daily_demand,omitempty"`
}

// Healthy reports whether on-hand stock covers the safety stock level.
func (r *InventoryRecord) Healthy() bool {
	return r.OnHand >= r.SafetyStock
}
