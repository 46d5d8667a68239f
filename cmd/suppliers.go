package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/synergic-nexum/supplier-cli/internal/model"
	"github.com/synergic-nexum/supplier-cli/internal/store"
)

var suppliersCmd = &cobra.Command{
	Use:   "suppliers",
	Short: "List suppliers with optional filters",
	Long: `Lists the supplier master. Minimum-score filters exclude suppliers whose
metric is missing; --esg keeps only those at or above the sustainability
gate.

Examples:
  nexum suppliers --country Chile --category lacteos
  nexum suppliers --esg --min-quality 4`,
	RunE: runSuppliers,
}

func init() {
	f := suppliersCmd.Flags()
	f.String("country", "", "filter by country")
	f.String("category", "", "filter by category")
	f.Float64("min-quality", 0, "minimum quality score (1-5)")
	f.Float64("min-service", 0, "minimum service score (1-5)")
	f.Float64("min-sustainability", 0, "minimum sustainability score (1-5)")
	f.Bool("esg", false, "only suppliers passing the ESG sustainability gate")
	f.Bool("all", false, "include inactive suppliers")

	rootCmd.AddCommand(suppliersCmd)
}

func runSuppliers(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	country, _ := cmd.Flags().GetString("country")
	category, _ := cmd.Flags().GetString("category")
	all, _ := cmd.Flags().GetBool("all")

	suppliers, err := st.ListSuppliers(ctx, store.SupplierFilter{
		Country:    country,
		Category:   category,
		ActiveOnly: !all,
	})
	if err != nil {
		return err
	}

	minQuality, _ := cmd.Flags().GetFloat64("min-quality")
	minService, _ := cmd.Flags().GetFloat64("min-service")
	minSustainability, _ := cmd.Flags().GetFloat64("min-sustainability")
	esg, _ := cmd.Flags().GetBool("esg")

	suppliers = model.FilterSuppliers(suppliers, model.SupplierCriteria{
		MinQuality:        minQuality,
		MinService:        minService,
		MinSustainability: minSustainability,
		ESGGate:           esg,
	})

	if len(suppliers) == 0 {
		fmt.Println("No suppliers match.")
		return nil
	}

	fmt.Printf("%-12s %-32s %-12s %-14s %7s %7s %7s %6s\n",
		"ID", "Name", "Country", "Category", "Qual", "Serv", "Sust", "Active")
	fmt.Println(strings.Repeat("-", 102))
	for i := range suppliers {
		s := &suppliers[i]
		name := s.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		fmt.Printf("%-12s %-32s %-12s %-14s %7s %7s %7s %6v\n",
			s.SupplierID, name, s.Country, s.Category,
			fmtScore(s.QualityScore), fmtScore(s.ServiceScore), fmtScore(s.SustainabilityScore),
			s.IsActive)
	}
	fmt.Printf("\n%d supplier(s)\n", len(suppliers))
	return nil
}

func fmtScore(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *v)
}
