package ingest

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/synergic-nexum/supplier-cli/internal/fetcher"
	"github.com/synergic-nexum/supplier-cli/internal/model"
)

var eventAliases = map[string][]string{
	"event_id":                {"event_id", "id"},
	"store":                   {"store", "tienda"},
	"category":                {"category", "categoria"},
	"date":                    {"date", "fecha"},
	"stockout_flag":           {"stockout_flag", "quiebre"},
	"substitution_flag":       {"substitution_flag", "sustitucion"},
	"decision_time_sec":       {"decision_time_sec", "tiempo_decision"},
	"unit_price_visible_flag": {"unit_price_visible_flag", "precio_visible"},
	"label_read_time_sec":     {"label_read_time_sec", "tiempo_lectura"},
	"label_clarity_1_5":       {"label_clarity_1_5", "claridad_etiqueta"},
}

// MapEvents converts a parsed table into consumer event records.
func MapEvents(table *fetcher.Table) ([]model.ConsumerEvent, error) {
	idx := resolveHeader(table.Header, eventAliases)

	var events []model.ConsumerEvent
	for n, row := range table.Rows {
		id := idx.cell(row, "event_id")
		if id == "" {
			zap.L().Warn("ingest: skipping event row without event_id", zap.Int("row", n+2))
			continue
		}

		date, err := parseDate(idx.cell(row, "date"))
		if err != nil {
			return nil, eris.Wrapf(err, "ingest: event %s date", id)
		}

		events = append(events, model.ConsumerEvent{
			EventID:              id,
			Store:                idx.cell(row, "store"),
			Category:             idx.cell(row, "category"),
			Date:                 date,
			StockoutFlag:         parseBool(idx.cell(row, "stockout_flag"), false),
			SubstitutionFlag:     parseBool(idx.cell(row, "substitution_flag"), false),
			DecisionTimeSec:      floatOr(idx.cell(row, "decision_time_sec"), 0),
			UnitPriceVisibleFlag: parseBool(idx.cell(row, "unit_price_visible_flag"), false),
			LabelReadTimeSec:     floatOr(idx.cell(row, "label_read_time_sec"), 0),
			LabelClarity:         floatOr(idx.cell(row, "label_clarity_1_5"), 0),
		})
	}

	return events, nil
}
