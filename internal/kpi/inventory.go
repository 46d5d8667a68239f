package kpi

import "github.com/synergic-nexum/supplier-cli/internal/model"

// InventoryHealth returns the percentage of records with on-hand stock at
// or above safety stock.
func InventoryHealth(records []model.InventoryRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var healthy int
	for i := range records {
		if records[i].Healthy() {
			healthy++
		}
	}
	return float64(healthy) / float64(len(records)) * 100
}
