package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSuppliers(t *testing.T) {
	suppliers := []Supplier{
		{SupplierID: "S1", Country: "Chile", Category: "lacteos", IsActive: true, QualityScore: fptr(4), SustainabilityScore: fptr(4)},
		{SupplierID: "S2", Country: "Chile", Category: "panaderia", IsActive: true, QualityScore: fptr(3), SustainabilityScore: fptr(3.5)},
		{SupplierID: "S3", Country: "Peru", Category: "lacteos", IsActive: false, QualityScore: fptr(5), SustainabilityScore: fptr(5)},
		{SupplierID: "S4", Country: "Chile", Category: "lacteos", IsActive: true}, // no scores
	}

	ids := func(got []Supplier) []string {
		var out []string
		for _, s := range got {
			out = append(out, s.SupplierID)
		}
		return out
	}

	tests := []struct {
		name     string
		criteria SupplierCriteria
		want     []string
	}{
		{"no criteria keeps all", SupplierCriteria{}, []string{"S1", "S2", "S3", "S4"}},
		{"country", SupplierCriteria{Country: "Peru"}, []string{"S3"}},
		{"category", SupplierCriteria{Category: "lacteos"}, []string{"S1", "S3", "S4"}},
		{"active only", SupplierCriteria{ActiveOnly: true}, []string{"S1", "S2", "S4"}},
		{"min quality excludes absent", SupplierCriteria{MinQuality: 4}, []string{"S1", "S3"}},
		{"esg gate boundary is inclusive", SupplierCriteria{ESGGate: true}, []string{"S1", "S2", "S3"}},
		{"min sustainability", SupplierCriteria{MinSustainability: 4}, []string{"S1", "S3"}},
		{"combined", SupplierCriteria{Country: "Chile", Category: "lacteos", ActiveOnly: true, ESGGate: true}, []string{"S1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSuppliers(suppliers, tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}
