package model

import "time"

// ConsumerEvent is a single shopper observation captured at the shelf.
type ConsumerEvent struct {
	EventID  string    `json:"event_id"`
	Store    string    `json:"store,omitempty"`
	Category string    `json:"category,omitempty"`
	Date     time.Time `json:"date"`

	StockoutFlag     bool    `json:"stockout_flag"`
	SubstitutionFlag bool    `json:"substitution_flag"`
	DecisionTimeSec  float64 `json:"decision_time_sec"`

	UnitPriceVisibleFlag bool    `json:"unit_price_visible_flag,omitempty"`
	LabelReadTimeSec     float64 `json:"label_read_time_sec,omitempty"`
	LabelClarity         float64 `json:"label_clarity_1_5,omitempty"`
}
