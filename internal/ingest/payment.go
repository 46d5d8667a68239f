package ingest

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/synergic-nexum/supplier-cli/internal/fetcher"
	"github.com/synergic-nexum/supplier-cli/internal/model"
)

var paymentAliases = map[string][]string{
	"invoice_id":     {"invoice_id", "factura"},
	"supplier_id":    {"supplier_id", "proveedor"},
	"invoice_date":   {"invoice_date", "fecha_factura"},
	"due_date":       {"due_date", "fecha_vencimiento"},
	"paid_date":      {"paid_date", "fecha_pago"},
	"amount":         {"amount", "monto"},
	"payment_method": {"payment_method", "metodo_pago"},
}

// MapPayments converts a parsed table into payment records. A missing
// paid date means the invoice is still open.
func MapPayments(table *fetcher.Table) ([]model.Payment, error) {
	idx := resolveHeader(table.Header, paymentAliases)

	var payments []model.Payment
	for n, row := range table.Rows {
		id := idx.cell(row, "invoice_id")
		if id == "" {
			zap.L().Warn("ingest: skipping payment row without invoice_id", zap.Int("row", n+2))
			continue
		}

		invoiceDate, err := parseDate(idx.cell(row, "invoice_date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: invoice %s invoice_date", id)
		}
		dueDate, err := parseDate(idx.cell(row, "due_date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: invoice %s due_date", id)
		}
		paidDate, err := parseDatePtr(idx.cell(row, "paid_date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: invoice %s paid_date", id)
		}

		payments = append(payments, model.Payment{
			InvoiceID:     id,
			SupplierID:    idx.cell(row, "supplier_id"),
			InvoiceDate:   invoiceDate,
			DueDate:       dueDate,
			PaidDate:      paidDate,
			Amount:        floatOr(idx.cell(row, "amount"), 0),
			PaymentMethod: idx.cell(row, "payment_method"),
		})
	}

	return payments, nil
}
