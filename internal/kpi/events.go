package kpi

import (
	"sort"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// StockoutRate returns the percentage of events flagged as stockouts.
func StockoutRate(events []model.ConsumerEvent) float64 {
	return flagRate(events, func(e *model.ConsumerEvent) bool { return e.StockoutFlag })
}

// SubstitutionRate returns the percentage of events where the shopper
// substituted another product.
func SubstitutionRate(events []model.ConsumerEvent) float64 {
	return flagRate(events, func(e *model.ConsumerEvent) bool { return e.SubstitutionFlag })
}

func flagRate(events []model.ConsumerEvent, flagged func(*model.ConsumerEvent) bool) float64 {
	if len(events) == 0 {
		return 0
	}
	var n int
	for i := range events {
		if flagged(&events[i]) {
			n++
		}
	}
	return float64(n) / float64(len(events)) * 100
}

// MedianDecisionTime returns the median shopper decision time in seconds.
// Even-length sequences average the two middle values.
func MedianDecisionTime(events []model.ConsumerEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	times := make([]float64, len(events))
	for i := range events {
		times[i] = events[i].DecisionTimeSec
	}
	sort.Float64s(times)

	mid := len(times) / 2
	if len(times)%2 == 0 {
		return (times[mid-1] + times[mid]) / 2
	}
	return times[mid]
}
