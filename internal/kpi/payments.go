package kpi

import (
	"time"

	"github.com/synergic-nexum/supplier-cli/internal/model"
)

// DSO returns the mean invoice age in days over all payments. Open
// invoices age to asOf, so outstanding receivables keep raising the
// figure until they are settled.
func DSO(payments []model.Payment, asOf time.Time) float64 {
	if len(payments) == 0 {
		return 0
	}
	var sum float64
	for i := range payments {
		sum += payments[i].AgeDays(asOf)
	}
	return sum / float64(len(payments))
}

// PaymentWithin returns the percentage of paid invoices settled within
// maxDays of the invoice date. Unpaid invoices are excluded entirely.
func PaymentWithin(payments []model.Payment, maxDays int) float64 {
	var paid, within int
	for i := range payments {
		p := &payments[i]
		if !p.Paid() {
			continue
		}
		paid++
		if p.PaidDate.Sub(p.InvoiceDate).Hours()/24 <= float64(maxDays) {
			within++
		}
	}
	if paid == 0 {
		return 0
	}
	return float64(within) / float64(paid) * 100
}
