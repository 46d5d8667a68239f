// Package kpi holds the pure reducers behind the dashboard metrics. Every
// function returns 0 for an empty collection (or an empty delivered/paid
// subset) rather than NaN or an error.
package kpi

import (
	"math"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// OTIF returns the On-Time-In-Full percentage over delivered orders.
// Pending orders are excluded from both numerator and denominator.
func OTIF(orders []model.Order) float64 {
	var delivered, otif int
	for i := range orders {
		if !orders[i].Delivered() {
			continue
		}
		delivered++
		if orders[i].OnTimeInFull() {
			otif++
		}
	}
	if delivered == 0 {
		return 0
	}
	return float64(otif) / float64(delivered) * 100
}

// FillRate returns received quantity as a percentage of ordered quantity
// over delivered orders.
func FillRate(orders []model.Order) float64 {
	var ordered, received float64
	for i := range orders {
		if !orders[i].Delivered() {
			continue
		}
		ordered += orders[i].QtyOrdered
		received += orders[i].QtyReceived
	}
	if ordered == 0 {
		return 0
	}
	return received / ordered * 100
}

// LeadTime returns the mean order-to-delivery span in days over delivered
// orders.
func LeadTime(orders []model.Order) float64 {
	times := leadTimes(orders)
	if len(times) == 0 {
		return 0
	}
	return mean(times)
}

// LeadTimeVariability returns the population standard deviation of
// per-order lead times over delivered orders.
func LeadTimeVariability(orders []model.Order) float64 {
	times := leadTimes(orders)
	if len(times) == 0 {
		return 0
	}
	avg := mean(times)
	var variance float64
	for _, t := range times {
		variance += (t - avg) * (t - avg)
	}
	return math.Sqrt(variance / float64(len(times)))
}

func leadTimes(orders []model.Order) []float64 {
	var times []float64
	for i := range orders {
		if orders[i].Delivered() {
			times = append(times, orders[i].LeadTimeDays())
		}
	}
	return times
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
