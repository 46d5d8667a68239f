// Package scorer ranks suppliers with a multi-criteria weighted-scoring
// model: per-KPI min-max normalization, weight normalization, weighted
// totals, and dense 1-based ranking.
package scorer

import "github.com/rotisserie/eris"

// KPI identifies one of the eleven supplier scoring metrics.
type KPI string

const (
	KPIUnitCost       KPI = "unit_cost"
	KPILeadTimeDays   KPI = "lead_time_days"
	KPILeadTimeSigma  KPI = "lead_time_sigma"
	KPIDistanceKM     KPI = "distance_km"
	KPIQuality        KPI = "quality_score_1_5"
	KPIService        KPI = "service_score_1_5"
	KPISustainability KPI = "sustainability_score_1_5"
	KPIOTIFPct        KPI = "otif_pct"
	KPICapacity       KPI = "capacity_units_month"
	KPIMOQ            KPI = "moq"
	KPIRisk           KPI = "risk_score_1_5"
)

// Kind is the polarity of a KPI: for cost KPIs a lower raw value is
// better, for benefit KPIs a higher raw value is better. Polarity is
// fixed metadata, never data.
type Kind string

const (
	KindCost    Kind = "cost"
	KindBenefit Kind = "benefit"
)

// Definition holds the fixed metadata for a KPI.
type Definition struct {
	Label string
	Kind  Kind
}

// Definitions maps each KPI to its display label and polarity.
var Definitions = map[KPI]Definition{
	KPIUnitCost:       {Label: "Unit Cost", Kind: KindCost},
	KPILeadTimeDays:   {Label: "Lead Time", Kind: KindCost},
	KPILeadTimeSigma:  {Label: "LT Variability", Kind: KindCost},
	KPIDistanceKM:     {Label: "Distance", Kind: KindCost},
	KPIQuality:        {Label: "Quality", Kind: KindBenefit},
	KPIService:        {Label: "Service", Kind: KindBenefit},
	KPISustainability: {Label: "Sustainability", Kind: KindBenefit},
	KPIOTIFPct:        {Label: "OTIF %", Kind: KindBenefit},
	KPICapacity:       {Label: "Capacity", Kind: KindBenefit},
	KPIMOQ:            {Label: "MOQ", Kind: KindCost},
	KPIRisk:           {Label: "Risk", Kind: KindCost},
}

// AllKPIs returns every KPI in canonical display order.
func AllKPIs() []KPI {
	return []KPI{
		KPIUnitCost,
		KPILeadTimeDays,
		KPILeadTimeSigma,
		KPIDistanceKM,
		KPIQuality,
		KPIService,
		KPISustainability,
		KPIOTIFPct,
		KPICapacity,
		KPIMOQ,
		KPIRisk,
	}
}

// ParseKPI validates a raw KPI key.
func ParseKPI(s string) (KPI, error) {
	k := KPI(s)
	if _, ok := Definitions[k]; !ok {
		return "", eris.Errorf("scorer: unknown KPI %q", s)
	}
	return k, nil
}
