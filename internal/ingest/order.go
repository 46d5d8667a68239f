package ingest

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/synergic-nexum/supplier-cli/internal/fetcher"
	"github.com/synergic-nexum/supplier-cli/internal/model"
)

var orderAliases = map[string][]string{
	"order_id":      {"order_id", "id", "pedido"},
	"supplier_id":   {"supplier_id", "proveedor"},
	"sku":           {"sku"},
	"category":      {"category", "categoria"},
	"order_date":    {"order_date", "fecha_pedido"},
	"promise_date":  {"promise_date", "fecha_promesa"},
	"delivery_date": {"delivery_date", "fecha_entrega"},
	"qty_ordered":   {"qty_ordered", "cantidad_pedida"},
	"qty_received":  {"qty_received", "cantidad_recibida"},
	"unit_price":    {"unit_price", "precio_unitario"},
	"incoterm":      {"incoterm"},
	"site":          {"site", "sitio"},
}

// MapOrders converts a parsed table into order records. Order and promise
// dates are required; a missing delivery date means the order is still
// pending.
func MapOrders(table *fetcher.Table) ([]model.Order, error) {
	idx := resolveHeader(table.Header, orderAliases)

	var orders []model.Order
	for n, row := range table.Rows {
		id := idx.cell(row, "order_id")
		if id == "" {
			zap.L().Warn("ingest: skipping order row without order_id", zap.Int("row", n+2))
			continue
		}

		orderDate, err := parseDate(idx.cell(row, "order_date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: order %s order_date", id)
		}
		promiseDate, err := parseDate(idx.cell(row, "promise_date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: order %s promise_date", id)
		}
		deliveryDate, err := parseDatePtr(idx.cell(row, "delivery_date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: order %s delivery_date", id)
		}

		orders = append(orders, model.Order{
			OrderID:      id,
			SupplierID:   idx.cell(row, "supplier_id"),
			SKU:          idx.cell(row, "sku"),
			Category:     idx.cell(row, "category"),
			OrderDate:    orderDate,
			PromiseDate:  promiseDate,
			DeliveryDate: deliveryDate,
			QtyOrdered:   floatOr(idx.cell(row, "qty_ordered"), 0),
			QtyReceived:  floatOr(idx.cell(row, "qty_received"), 0),
			UnitPrice:    floatOr(idx.cell(row, "unit_price"), 0),
			Incoterm:     idx.cell(row, "incoterm"),
			Site:         idx.cell(row, "site"),
		})
	}

	return orders, nil
}
