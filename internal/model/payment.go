package model

import "time"

// Payment is a supplier invoice. An invoice is open until PaidDate is set.
type Payment struct {
	InvoiceID  string `json:"invoice_id"`
	SupplierID string `json:"supplier_id"`

	InvoiceDate time.Time  `json:"invoice_date"`
	DueDate     time.Time  `json:"due_date"`
	PaidDate    *time.Time `json:"paid_date,omitempty"`

	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

// Paid reports whether the invoice has been settled.
func (p *Payment) Paid() bool {
	return p.PaidDate != nil
}

// AgeDays returns the invoice age in fractional days: paid invoices age
// from invoice date to paid date, open invoices age to asOf.
func (p *Payment) AgeDays(asOf time.Time) float64 {
	end := asOf
	if p.PaidDate != nil {
		end = *p.PaidDate
	}
	return end.Sub(p.InvoiceDate).Hours() / 24
}
