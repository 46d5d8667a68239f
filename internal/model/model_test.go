package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dateptr(s string) *time.Time {
	t := date(s)
	return &t
}

func TestSupplierMetric(t *testing.T) {
	s := Supplier{
		SupplierID:   "SUP-001",
		UnitCost:     fptr(125.5),
		QualityScore: fptr(4.2),
		RiskScore:    fptr(math.NaN()),
	}

	tests := []struct {
		key    string
		want   float64
		wantOK bool
	}{
		{"unit_cost", 125.5, true},
		{"quality_score_1_5", 4.2, true},
		{"lead_time_days", 0, false},  // absent
		{"risk_score_1_5", 0, false},  // NaN counts as absent
		{"not_a_metric", 0, false},    // unknown key
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := s.Metric(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderLifecycle(t *testing.T) {
	pending := Order{OrderDate: date("2024-01-01"), PromiseDate: date("2024-01-10")}
	assert.False(t, pending.Delivered())
	assert.False(t, pending.OnTimeInFull())
	assert.Zero(t, pending.LeadTimeDays())

	delivered := Order{
		OrderDate:    date("2024-01-01"),
		PromiseDate:  date("2024-01-10"),
		DeliveryDate: dateptr("2024-01-10"),
		QtyOrdered:   100,
		QtyReceived:  100,
	}
	assert.True(t, delivered.Delivered())
	assert.True(t, delivered.OnTimeInFull())
	assert.InDelta(t, 9, delivered.LeadTimeDays(), 1e-9)

	late := delivered
	late.DeliveryDate = dateptr("2024-01-11")
	assert.False(t, late.OnTimeInFull())

	short := delivered
	short.QtyReceived = 90
	assert.False(t, short.OnTimeInFull())
}

func TestPaymentAgeDays(t *testing.T) {
	paid := Payment{InvoiceDate: date("2024-01-01"), PaidDate: dateptr("2024-01-08")}
	assert.True(t, paid.Paid())
	assert.InDelta(t, 7, paid.AgeDays(date("2024-06-01")), 1e-9)

	open := Payment{InvoiceDate: date("2024-01-01")}
	assert.False(t, open.Paid())
	assert.InDelta(t, 31, open.AgeDays(date("2024-02-01")), 1e-9)
}

func TestInventoryHealthy(t *testing.T) {
	assert.True(t, (&InventoryRecord{OnHand: 50, SafetyStock: 50}).Healthy())
	assert.False(t, (&InventoryRecord{OnHand: 49, SafetyStock: 50}).Healthy())
}
