package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

func TestCompute_EmptyDataset(t *testing.T) {
	s := Compute(Dataset{}, time.Now(), []int{7, 30})

	assert.Zero(t, s.OTIFPct)
	assert.Zero(t, s.FillRatePct)
	assert.Zero(t, s.DSODays)
	assert.Zero(t, s.InventoryHealthPct)
	assert.Equal(t, map[int]float64{7: 0, 30: 0}, s.PaymentWithinPct)
}

func TestCompute_Windows(t *testing.T) {
	inv := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	paid10 := inv.AddDate(0, 0, 10)

	ds := Dataset{
		Payments: []model.Payment{
			{InvoiceID: "F1", InvoiceDate: inv, DueDate: inv.AddDate(0, 0, 30), PaidDate: &paid10, Amount: 100},
		},
	}
	s := Compute(ds, inv.AddDate(0, 0, 60), []int{7, 30})

	// Paid after 10 days: misses the 7-day window, makes the 30-day one.
	assert.InDelta(t, 0, s.PaymentWithinPct[7], 1e-9)
	assert.InDelta(t, 100, s.PaymentWithinPct[30], 1e-9)
	assert.InDelta(t, 10, s.DSODays, 1e-9)
}
