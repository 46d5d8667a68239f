package kpi

import "github.com/synergic-nexum/supplier-cli/internal/model"

// AvgQuality returns the mean quality score across active suppliers.
func AvgQuality(suppliers []model.Supplier) float64 {
	return activeMean(suppliers, func(s *model.Supplier) *float64 { return s.QualityScore })
}

// AvgService returns the mean service score across active suppliers.
func AvgService(suppliers []model.Supplier) float64 {
	return activeMean(suppliers, func(s *model.Supplier) *float64 { return s.ServiceScore })
}

// AvgSustainability returns the mean sustainability score across active
// suppliers.
func AvgSustainability(suppliers []model.Supplier) float64 {
	return activeMean(suppliers, func(s *model.Supplier) *float64 { return s.SustainabilityScore })
}

func activeMean(suppliers []model.Supplier, metric func(*model.Supplier) *float64) float64 {
	var sum float64
	var n int
	for i := range suppliers {
		if !suppliers[i].IsActive {
			continue
		}
		n++
		if v := metric(&suppliers[i]); v != nil {
			sum += *v
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// CertificationRate returns the percentage of active suppliers holding at
// least one certification.
func CertificationRate(suppliers []model.Supplier) float64 {
	var active, certified int
	for i := range suppliers {
		if !suppliers[i].IsActive {
			continue
		}
		active++
		if suppliers[i].Certified() {
			certified++
		}
	}
	if active == 0 {
		return 0
	}
	return float64(certified) / float64(active) * 100
}
