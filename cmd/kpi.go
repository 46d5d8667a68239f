package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/synergic-nexum/supplier-cli/internal/kpi"
	"github.com/synergic-nexum/supplier-cli/internal/store"
)

var kpiCmd = &cobra.Command{
	Use:   "kpi",
	Short: "Compute supply-chain KPIs over the imported data",
	Long: `Aggregates delivery, payment, inventory and consumer-behavior indicators.
By default the whole dataset is covered; --supplier narrows orders and
payments to one supplier.

Examples:
  # Full dataset
  nexum kpi

  # One supplier's delivery and payment record
  nexum kpi --supplier PRV-001

  # Age open invoices to a reporting date
  nexum kpi --as-of 2025-06-30`,
	RunE: runKPI,
}

func init() {
	f := kpiCmd.Flags()
	f.String("supplier", "", "restrict orders and payments to one supplier ID")
	f.String("site", "", "restrict orders and inventory to one site")
	f.String("as-of", "", "reference date for open invoice aging (YYYY-MM-DD, default today)")

	rootCmd.AddCommand(kpiCmd)
}

func runKPI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	asOf := time.Now().UTC()
	if v, _ := cmd.Flags().GetString("as-of"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return eris.Errorf("kpi: invalid --as-of date %q (want YYYY-MM-DD)", v)
		}
		asOf = t
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	supplierID, _ := cmd.Flags().GetString("supplier")
	site, _ := cmd.Flags().GetString("site")

	suppliers, err := st.ListSuppliers(ctx, store.SupplierFilter{})
	if err != nil {
		return err
	}
	orders, err := st.ListOrders(ctx, store.OrderFilter{SupplierID: supplierID, Site: site})
	if err != nil {
		return err
	}
	payments, err := st.ListPayments(ctx, store.PaymentFilter{SupplierID: supplierID})
	if err != nil {
		return err
	}
	inventory, err := st.ListInventory(ctx, store.InventoryFilter{Site: site})
	if err != nil {
		return err
	}
	events, err := st.ListEvents(ctx, store.EventFilter{})
	if err != nil {
		return err
	}

	summary := kpi.Compute(kpi.Dataset{
		Suppliers: suppliers,
		Orders:    orders,
		Payments:  payments,
		Inventory: inventory,
		Events:    events,
	}, asOf, cfg.KPI.PaymentWindows)

	printSummary(summary, asOf, supplierID)
	return nil
}

func printSummary(s kpi.Summary, asOf time.Time, supplierID string) {
	scope := "all suppliers"
	if supplierID != "" {
		scope = supplierID
	}
	fmt.Printf("KPI summary (%s, as of %s)\n\n", scope, asOf.Format("2006-01-02"))

	fmt.Println("Deliveries")
	fmt.Printf("  OTIF:                  %.1f%%\n", s.OTIFPct)
	fmt.Printf("  Fill rate:             %.1f%%\n", s.FillRatePct)
	fmt.Printf("  Lead time:             %.1f days (sigma %.1f)\n", s.LeadTimeDays, s.LeadTimeSigma)

	fmt.Println("Payments")
	fmt.Printf("  DSO:                   %.1f days\n", s.DSODays)
	windows := make([]int, 0, len(s.PaymentWithinPct))
	for w := range s.PaymentWithinPct {
		windows = append(windows, w)
	}
	sort.Ints(windows)
	for _, w := range windows {
		fmt.Printf("  Paid within %d days:   %.1f%%\n", w, s.PaymentWithinPct[w])
	}

	fmt.Println("Inventory & shelf")
	fmt.Printf("  Inventory health:      %.1f%%\n", s.InventoryHealthPct)
	fmt.Printf("  Stockout rate:         %.1f%%\n", s.StockoutRatePct)
	fmt.Printf("  Substitution rate:     %.1f%%\n", s.SubstitutionRatePct)
	fmt.Printf("  Median decision time:  %.1f s\n", s.MedianDecisionSec)

	fmt.Println("Supplier base")
	fmt.Printf("  Avg quality:           %.2f / 5\n", s.AvgQuality)
	fmt.Printf("  Avg service:           %.2f / 5\n", s.AvgService)
	fmt.Printf("  Avg sustainability:    %.2f / 5\n", s.AvgSustainability)
	fmt.Printf("  Certified:             %.1f%%\n", s.CertificationPct)
}
