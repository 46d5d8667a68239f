package scorer

import (
	"sort"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// NormalizedScore is the engine output for one supplier. It is ephemeral:
// recomputed on every call and never persisted by the engine.
type NormalizedScore struct {
	SupplierID string          `json:"supplier_id"`
	Name       string          `json:"name"`
	Scores     map[KPI]float64 `json:"scores"`
	TotalScore float64         `json:"total_score"`
	Rank       int             `json:"rank"`
}

type kpiRange struct {
	min, max float64
}

// Score ranks suppliers against the active KPIs with the given raw weights.
// Pure function: no side effects, no errors. Empty suppliers or empty
// activeKPIs yields an empty result. Missing or non-finite metric values
// are excluded from range computation and contribute zero to the total
// regardless of weight (documented behavior, not neutral imputation).
func Score(suppliers []model.Supplier, activeKPIs []KPI, weights map[KPI]float64) []NormalizedScore {
	if len(suppliers) == 0 || len(activeKPIs) == 0 {
		return nil
	}

	// Observed min/max per active KPI, skipping absent values. A KPI with
	// no valid values gets no range and contributes nothing.
	ranges := make(map[KPI]kpiRange, len(activeKPIs))
	for _, k := range activeKPIs {
		first := true
		var r kpiRange
		for i := range suppliers {
			v, ok := suppliers[i].Metric(string(k))
			if !ok {
				continue
			}
			if first {
				r = kpiRange{min: v, max: v}
				first = false
				continue
			}
			if v < r.min {
				r.min = v
			}
			if v > r.max {
				r.max = v
			}
		}
		if !first {
			ranges[k] = r
		}
	}

	normWeights := normalizeWeights(activeKPIs, weights)

	results := make([]NormalizedScore, 0, len(suppliers))
	for i := range suppliers {
		s := &suppliers[i]
		scores := make(map[KPI]float64, len(activeKPIs))
		var total float64
		for _, k := range activeKPIs {
			v, ok := s.Metric(string(k))
			r, hasRange := ranges[k]
			if !ok || !hasRange {
				scores[k] = 0
				continue
			}
			n := Normalize(v, r.min, r.max, Definitions[k].Kind)
			scores[k] = n
			total += n * normWeights[k]
		}
		results = append(results, NormalizedScore{
			SupplierID: s.SupplierID,
			Name:       s.Name,
			Scores:     scores,
			TotalScore: total,
		})
	}

	// Stable sort keeps input order on ties; rank is the 1-based position.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results
}

// Normalize maps a raw value into [0,1] given the observed range and the
// KPI polarity. A flat range (max == min) yields 1.0 for benefit KPIs and
// 0.5 for cost KPIs.
func Normalize(v, min, max float64, kind Kind) float64 {
	if max == min {
		if kind == KindBenefit {
			return 1.0
		}
		return 0.5
	}
	if kind == KindBenefit {
		return (v - min) / (max - min)
	}
	return (max - v) / (max - min)
}

// normalizeWeights scales the active KPIs' weights to sum to 1. If the
// input weights sum to zero, every normalized weight is zero and all
// totals come out zero.
func normalizeWeights(activeKPIs []KPI, weights map[KPI]float64) map[KPI]float64 {
	var sum float64
	for _, k := range activeKPIs {
		sum += weights[k]
	}

	out := make(map[KPI]float64, len(activeKPIs))
	if sum <= 0 {
		for _, k := range activeKPIs {
			out[k] = 0
		}
		return out
	}
	for _, k := range activeKPIs {
		out[k] = weights[k] / sum
	}
	return out
}
