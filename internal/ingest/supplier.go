package ingest

import (
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/synergic-nexum/supplier-cli/internal/fetcher"
	"github.com/synergic-nexum/supplier-cli/internal/model"
	"github.com/synergic-nexum/supplier-cli/internal/scorer"
)

// Documented neutral defaults for fields absent after alias mapping.
const (
	defaultScore        = 3.0
	defaultPaymentTerms = 30
)

// supplierAliases lists the ordered candidate keys per supplier field.
var supplierAliases = map[string][]string{
	"supplier_id":              {"supplier_id", "id"},
	"name":                     {"name", "nombre"},
	"country":                  {"country", "pais"},
	"region":                   {"region", "zona"},
	"city":                     {"city", "ciudad"},
	"category":                 {"category", "categoria"},
	"certifications":           {"certifications", "certificaciones"},
	"is_active":                {"is_active", "activo"},
	"lat":                      {"lat", "latitud"},
	"lon":                      {"lon", "longitud"},
	"unit_cost":                {"unit_cost", "costo_unitario", "precio"},
	"lead_time_days":           {"lead_time_days", "lead_time", "tiempo_entrega"},
	"lead_time_sigma":          {"lead_time_sigma", "variabilidad_lt"},
	"distance_km":              {"distance_km", "distancia"},
	"quality_score_1_5":        {"quality_score_1_5", "calidad"},
	"service_score_1_5":        {"service_score_1_5", "servicio"},
	"sustainability_score_1_5": {"sustainability_score_1_5", "sostenibilidad"},
	"otif_pct":                 {"otif_pct", "otif"},
	"capacity_units_month":     {"capacity_units_month", "capacidad"},
	"moq":                      {"moq", "pedido_minimo"},
	"risk_score_1_5":           {"risk_score_1_5", "riesgo"},
	"payment_terms_days":       {"payment_terms_days", "terminos_pago"},
	"contact_email":            {"contact_email", "email", "correo"},
	"notes":                    {"notes", "notas"},
}

// MapSuppliers converts a parsed table into supplier records. Rows without
// a supplier_id or name are skipped with a warning; quality, service,
// sustainability, and risk default to 3, payment terms to 30 days, and
// is_active to true.
func MapSuppliers(table *fetcher.Table) []model.Supplier {
	idx := resolveHeader(table.Header, supplierAliases)

	var suppliers []model.Supplier
	for n, row := range table.Rows {
		id := idx.cell(row, "supplier_id")
		name := idx.cell(row, "name")
		if id == "" || name == "" {
			zap.L().Warn("ingest: skipping supplier row without id or name", zap.Int("row", n+2))
			continue
		}

		s := model.Supplier{
			SupplierID:     id,
			Name:           name,
			Country:        idx.cell(row, "country"),
			Region:         idx.cell(row, "region"),
			City:           idx.cell(row, "city"),
			Category:       idx.cell(row, "category"),
			Certifications: splitList(idx.cell(row, "certifications")),
			IsActive:       parseBool(idx.cell(row, "is_active"), true),

			Lat: floatPtr(idx.cell(row, "lat")),
			Lon: floatPtr(idx.cell(row, "lon")),

			UnitCost:            floatPtr(idx.cell(row, "unit_cost")),
			LeadTimeDays:        floatPtr(idx.cell(row, "lead_time_days")),
			LeadTimeSigma:       floatPtr(idx.cell(row, "lead_time_sigma")),
			DistanceKM:          floatPtr(idx.cell(row, "distance_km")),
			OTIFPct:             floatPtr(idx.cell(row, "otif_pct")),
			CapacityUnitsMonth:  floatPtr(idx.cell(row, "capacity_units_month")),
			MOQ:                 floatPtr(idx.cell(row, "moq")),
			QualityScore:        scoreOrDefault(idx.cell(row, "quality_score_1_5")),
			ServiceScore:        scoreOrDefault(idx.cell(row, "service_score_1_5")),
			SustainabilityScore: scoreOrDefault(idx.cell(row, "sustainability_score_1_5")),
			RiskScore:           scoreOrDefault(idx.cell(row, "risk_score_1_5")),

			PaymentTermsDays: intOr(idx.cell(row, "payment_terms_days"), defaultPaymentTerms),
			ContactEmail:     idx.cell(row, "contact_email"),
			Notes:            idx.cell(row, "notes"),
		}

		suppliers = append(suppliers, s)
	}

	return suppliers
}

func scoreOrDefault(s string) *float64 {
	v := floatOr(s, defaultScore)
	return &v
}

// EnrichDistances fills distance_km from coordinates for suppliers that
// have lat/lon but no distance, measured from the given origin (lon/lat).
func EnrichDistances(suppliers []model.Supplier, origin geom.Coord) {
	for i := range suppliers {
		s := &suppliers[i]
		if s.DistanceKM != nil || s.Lat == nil || s.Lon == nil {
			continue
		}
		d := scorer.Haversine(origin, geom.Coord{*s.Lon, *s.Lat})
		s.DistanceKM = &d
	}
}
