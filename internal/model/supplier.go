// Package model defines the record types the analytics core operates on:
// suppliers, orders, payments, inventory snapshots, and consumer events.
package model

import "math"

// Supplier is a single supplier master record. The eleven scoring metrics
// are pointers: a nil metric was absent from the source data and is
// excluded from range computation by the scoring engine.
type Supplier struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`

	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`

	Category       string   `json:"category,omitempty"`
	Certifications []string `json:"certifications,omitempty"`
	IsActive       bool     `json:"is_active"`

	Lat *float64 `json:"lat,omitempty"`
	Lon *float64 `json:"lon,omitempty"`

	UnitCost            *float64 `json:"unit_cost,omitempty"`
	LeadTimeDays        *float64 `json:"lead_time_days,omitempty"`
	LeadTimeSigma       *float64 `json:"lead_time_sigma,omitempty"`
	DistanceKM          *float64 `json:"distance_km,omitempty"`
	QualityScore        *float64 `json:"quality_score_1_5,omitempty"`
	ServiceScore        *float64 `json:"service_score_1_5,omitempty"`
	SustainabilityScore *float64 `json:"sustainability_score_1_5,omitempty"`
	OTIFPct             *float64 `json:"otif_pct,omitempty"`
	CapacityUnitsMonth  *float64 `json:"capacity_units_month,omitempty"`
	MOQ                 *float64 `json:"moq,omitempty"`
	RiskScore           *float64 `json:"risk_score_1_5,omitempty"`

	PaymentTermsDays int    `json:"payment_terms_days,omitempty"`
	ContactEmail     string `json:"contact_email,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// Metric returns the raw value for the given scoring field key and whether
// it is present and finite. Non-finite values count as absent.
func (s *Supplier) Metric(key string) (float64, bool) {
	var v *float64
	switch key {
	case "unit_cost":
		v = s.UnitCost
	case "lead_time_days":
		v = s.LeadTimeDays
	case "lead_time_sigma":
		v = s.LeadTimeSigma
	case "distance_km":
		v = s.DistanceKM
	case "quality_score_1_5":
		v = s.QualityScore
	case "service_score_1_5":
		v = s.ServiceScore
	case "sustainability_score_1_5":
		v = s.SustainabilityScore
	case "otif_pct":
		v = s.OTIFPct
	case "capacity_units_month":
		v = s.CapacityUnitsMonth
	case "moq":
		v = s.MOQ
	case "risk_score_1_5":
		v = s.RiskScore
	}
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0, false
	}
	return *v, true
}

// Certified reports whether the supplier holds at least one certification.
func (s *Supplier) Certified() bool {
	return len(s.Certifications) > 0
}
