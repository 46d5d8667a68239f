package model

// ESGThreshold is the minimum sustainability score a supplier needs to
// pass the ESG gate.
const ESGThreshold = 3.5

// SupplierCriteria selects a subset of suppliers for display or scoring.
// Zero values leave the corresponding dimension unfiltered.
type SupplierCriteria struct {
	Country           string
	Category          string
	MinQuality        float64
	MinService        float64
	MinSustainability float64
	ESGGate           bool
	ActiveOnly        bool
}

// FilterSuppliers returns the suppliers matching all set criteria,
// preserving input order. Minimum-score criteria exclude suppliers whose
// metric is absent.
func FilterSuppliers(suppliers []Supplier, c SupplierCriteria) []Supplier {
	var out []Supplier
	for i := range suppliers {
		s := &suppliers[i]
		if c.Country != "" && s.Country != c.Country {
			continue
		}
		if c.Category != "" && s.Category != c.Category {
			continue
		}
		if c.ActiveOnly && !s.IsActive {
			continue
		}
		if !metricAtLeast(s.QualityScore, c.MinQuality) {
			continue
		}
		if !metricAtLeast(s.ServiceScore, c.MinService) {
			continue
		}
		if !metricAtLeast(s.SustainabilityScore, c.MinSustainability) {
			continue
		}
		if c.ESGGate && !metricAtLeast(s.SustainabilityScore, ESGThreshold) {
			continue
		}
		out = append(out, *s)
	}
	return out
}

func metricAtLeast(v *float64, min float64) bool {
	if min <= 0 {
		return true
	}
	return v != nil && *v >= min
}
