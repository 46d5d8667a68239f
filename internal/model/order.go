package model

import "time"

// Order is a purchase order line. An order starts pending (no delivery
// date) and becomes delivered once DeliveryDate is set; delivered orders
// are immutable.
type Order struct {
	OrderID    string `json:"order_id"`
	SupplierID string `json:"supplier_id"`
	SKU        string `json:"sku"`
	Category   string `json:"category,omitempty"`

	OrderDate    time.Time  `json:"order_date"`
	PromiseDate  time.Time  `json:"promise_date"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`

	QtyOrdered  float64 `json:"qty_ordered"`
	QtyReceived float64 `json:"qty_received"`
	UnitPrice   float64 `json:"unit_price"`

	Incoterm string `json:"incoterm,omitempty"`
	Site     string `json:"site,omitempty"`
}

// Delivered reports whether the order has a delivery date.
func (o *Order) Delivered() bool {
	return o.DeliveryDate != nil
}

// OnTimeInFull reports whether a delivered order arrived on or before the
// promise date with at least the ordered quantity. False for pending orders.
func (o *Order) OnTimeInFull() bool {
	if o.DeliveryDate == nil {
		return false
	}
	return !o.DeliveryDate.After(o.PromiseDate) && o.QtyReceived >= o.QtyOrdered
}

// LeadTimeDays returns the order-to-delivery span in fractional days.
// Zero for pending orders.
func (o *Order) LeadTimeDays() float64 {
	if o.DeliveryDate == nil {
		return 0
	}
	return o.DeliveryDate.Sub(o.OrderDate).Hours() / 24
}
