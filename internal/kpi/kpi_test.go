package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

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

func fptr(v float64) *float64 { return &v }

func TestOTIF(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Zero(t, OTIF(nil))
	})

	t.Run("pending orders excluded from denominator", func(t *testing.T) {
		orders := []model.Order{
			{OrderDate: date("2024-01-01"), PromiseDate: date("2024-01-10")},
		}
		assert.Zero(t, OTIF(orders))
	})

	t.Run("single on-time in-full order", func(t *testing.T) {
		orders := []model.Order{
			{
				OrderDate:    date("2024-01-01"),
				PromiseDate:  date("2024-01-10"),
				DeliveryDate: dateptr("2024-01-10"),
				QtyOrdered:   100,
				QtyReceived:  100,
			},
		}
		assert.InDelta(t, 100, OTIF(orders), 1e-9)
		assert.InDelta(t, 100, FillRate(orders), 1e-9)
	})

	t.Run("late and short deliveries miss", func(t *testing.T) {
		orders := []model.Order{
			{PromiseDate: date("2024-01-10"), DeliveryDate: dateptr("2024-01-10"), QtyOrdered: 100, QtyReceived: 100},
			{PromiseDate: date("2024-01-10"), DeliveryDate: dateptr("2024-01-12"), QtyOrdered: 100, QtyReceived: 100},
			{PromiseDate: date("2024-01-10"), DeliveryDate: dateptr("2024-01-09"), QtyOrdered: 100, QtyReceived: 80},
			{PromiseDate: date("2024-01-10")}, // pending, excluded
		}
		assert.InDelta(t, 100.0/3, OTIF(orders), 1e-9)
	})
}

func TestFillRate(t *testing.T) {
	assert.Zero(t, FillRate(nil))

	orders := []model.Order{
		{DeliveryDate: dateptr("2024-01-05"), QtyOrdered: 100, QtyReceived: 90},
		{DeliveryDate: dateptr("2024-01-06"), QtyOrdered: 100, QtyReceived: 100},
		{QtyOrdered: 500, QtyReceived: 0}, // pending, excluded
	}
	assert.InDelta(t, 95, FillRate(orders), 1e-9)
}

func TestLeadTime(t *testing.T) {
	assert.Zero(t, LeadTime(nil))
	assert.Zero(t, LeadTimeVariability(nil))

	orders := []model.Order{
		{OrderDate: date("2024-01-01"), DeliveryDate: dateptr("2024-01-06")}, // 5 days
		{OrderDate: date("2024-01-01"), DeliveryDate: dateptr("2024-01-16")}, // 15 days
	}
	assert.InDelta(t, 10, LeadTime(orders), 1e-9)
	// Population sigma of {5, 15} is 5.
	assert.InDelta(t, 5, LeadTimeVariability(orders), 1e-9)
}

func TestDSO(t *testing.T) {
	asOf := date("2024-02-01")
	assert.Zero(t, DSO(nil, asOf))

	t.Run("paid invoice ages to paid date", func(t *testing.T) {
		payments := []model.Payment{
			{InvoiceDate: date("2024-01-01"), PaidDate: dateptr("2024-01-08")},
		}
		assert.InDelta(t, 7, DSO(payments, asOf), 1e-9)
	})

	t.Run("open invoice ages to asOf", func(t *testing.T) {
		payments := []model.Payment{
			{InvoiceDate: date("2024-01-01")},
		}
		assert.InDelta(t, 31, DSO(payments, asOf), 1e-9)
	})
}

func TestPaymentWithin(t *testing.T) {
	assert.Zero(t, PaymentWithin(nil, 30))

	payments := []model.Payment{
		{InvoiceDate: date("2024-01-01"), PaidDate: dateptr("2024-01-05")}, // 4 days
		{InvoiceDate: date("2024-01-01"), PaidDate: dateptr("2024-01-31")}, // 30 days
		{InvoiceDate: date("2024-01-01"), PaidDate: dateptr("2024-02-15")}, // 45 days
		{InvoiceDate: date("2024-01-01")},                                  // open, excluded
	}
	assert.InDelta(t, 100.0/3, PaymentWithin(payments, 7), 1e-9)
	assert.InDelta(t, 200.0/3, PaymentWithin(payments, 30), 1e-9)
}

func TestStockoutAndSubstitutionRates(t *testing.T) {
	assert.Zero(t, StockoutRate(nil))
	assert.Zero(t, SubstitutionRate(nil))

	events := []model.ConsumerEvent{
		{StockoutFlag: true, SubstitutionFlag: true},
		{StockoutFlag: true},
		{},
		{},
	}
	assert.InDelta(t, 50, StockoutRate(events), 1e-9)
	assert.InDelta(t, 25, SubstitutionRate(events), 1e-9)
}

func TestMedianDecisionTime(t *testing.T) {
	assert.Zero(t, MedianDecisionTime(nil))

	even := []model.ConsumerEvent{{DecisionTimeSec: 15}, {DecisionTimeSec: 5}}
	assert.InDelta(t, 10, MedianDecisionTime(even), 1e-9)

	odd := []model.ConsumerEvent{{DecisionTimeSec: 15}, {DecisionTimeSec: 5}, {DecisionTimeSec: 10}}
	assert.InDelta(t, 10, MedianDecisionTime(odd), 1e-9)
}

func TestInventoryHealth(t *testing.T) {
	assert.Zero(t, InventoryHealth(nil))

	records := []model.InventoryRecord{
		{OnHand: 100, SafetyStock: 50},
		{OnHand: 50, SafetyStock: 50},
		{OnHand: 10, SafetyStock: 50},
		{OnHand: 0, SafetyStock: 50},
	}
	assert.InDelta(t, 50, InventoryHealth(records), 1e-9)
}

func TestSupplierAggregates(t *testing.T) {
	assert.Zero(t, AvgQuality(nil))
	assert.Zero(t, CertificationRate(nil))

	suppliers := []model.Supplier{
		{IsActive: true, QualityScore: fptr(4), ServiceScore: fptr(5), SustainabilityScore: fptr(3), Certifications: []string{"ISO9001"}},
		{IsActive: true, QualityScore: fptr(2), ServiceScore: fptr(3), SustainabilityScore: fptr(4)},
		{IsActive: false, QualityScore: fptr(1), Certifications: []string{"RSPO"}}, // inactive, excluded
	}
	assert.InDelta(t, 3, AvgQuality(suppliers), 1e-9)
	assert.InDelta(t, 4, AvgService(suppliers), 1e-9)
	assert.InDelta(t, 3.5, AvgSustainability(suppliers), 1e-9)
	assert.InDelta(t, 50, CertificationRate(suppliers), 1e-9)

	t.Run("no active suppliers", func(t *testing.T) {
		inactive := []model.Supplier{{IsActive: false, QualityScore: fptr(5)}}
		assert.Zero(t, AvgQuality(inactive))
		assert.Zero(t, CertificationRate(inactive))
	})
}
