package kpi

import (
	"time"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// Dataset bundles the records a summary is computed over.
type Dataset struct {
	Suppliers []model.Supplier
	Orders    []model.Order
	Payments  []model.Payment
	Inventory []model.InventoryRecord
	Events    []model.ConsumerEvent
}

// Summary aggregates every indicator over one dataset. Percentages are
// 0-100, durations are days unless noted.
type Summary struct {
	OTIFPct             float64         `json:"otif_pct"`
	FillRatePct         float64         `json:"fill_rate_pct"`
	LeadTimeDays        float64         `json:"lead_time_days"`
	LeadTimeSigma       float64         `json:"lead_time_sigma"`
	DSODays             float64         `json:"dso_days"`
	PaymentWithinPct    map[int]float64 `json:"payment_within_pct"`
	StockoutRatePct     float64         `json:"stockout_rate_pct"`
	SubstitutionRatePct float64         `json:"substitution_rate_pct"`
	MedianDecisionSec   float64         `json:"median_decision_sec"`
	InventoryHealthPct  float64         `json:"inventory_health_pct"`
	AvgQuality          float64         `json:"avg_quality"`
	AvgService          float64         `json:"avg_service"`
	AvgSustainability   float64         `json:"avg_sustainability"`
	CertificationPct    float64         `json:"certification_pct"`
}

// Compute evaluates all indicators over the dataset. asOf anchors open
// invoice aging; windows lists the payment punctuality horizons in days.
func Compute(ds Dataset, asOf time.Time, windows []int) Summary {
	s := Summary{
		OTIFPct:             OTIF(ds.Orders),
		FillRatePct:         FillRate(ds.Orders),
		LeadTimeDays:        LeadTime(ds.Orders),
		LeadTimeSigma:       LeadTimeVariability(ds.Orders),
		DSODays:             DSO(ds.Payments, asOf),
		PaymentWithinPct:    make(map[int]float64, len(windows)),
		StockoutRatePct:     StockoutRate(ds.Events),
		SubstitutionRatePct: SubstitutionRate(ds.Events),
		MedianDecisionSec:   MedianDecisionTime(ds.Events),
		InventoryHealthPct:  InventoryHealth(ds.Inventory),
		AvgQuality:          AvgQuality(ds.Suppliers),
		AvgService:          AvgService(ds.Suppliers),
		AvgSustainability:   AvgSustainability(ds.Suppliers),
		CertificationPct:    CertificationRate(ds.Suppliers),
	}
	for _, w := range windows {
		s.PaymentWithinPct[w] = PaymentWithin(ds.Payments, w)
	}
	return s
}
