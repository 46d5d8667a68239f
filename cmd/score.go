package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/synergic-nexum/supplier-cli/internal/model"
	"github.com/synergic-nexum/supplier-cli/internal/scorer"
	"github.com/synergic-nexum/supplier-cli/internal/store"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Rank suppliers with weighted multi-criteria scoring",
	Long: `Normalizes each active metric to [0,1] over the candidate set (inverted
for cost-direction metrics), weights the normalized scores, and ranks
suppliers by total. Weights are relative: any scale works, they are
normalized to sum 1 before scoring.

Examples:
  # Rank with the balanced preset
  nexum score

  # Cheapest-first ranking, exported to CSV
  nexum score --preset cost --format csv --output ranking.csv

  # Custom criteria and weights
  nexum score --weights unit_cost=50,quality_score_1_5=30,otif_pct=20

  # Only ESG-compliant dairy suppliers
  nexum score --category lacteos --esg`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("preset", "", "weight preset: cost, proximity, quality_service or balanced (default from config)")
	f.String("kpis", "", "comma-separated metric keys to score on (equal weights unless --weights given)")
	f.String("weights", "", "comma-separated metric=weight pairs (overrides preset)")
	f.String("country", "", "restrict candidates to a country")
	f.String("category", "", "restrict candidates to a category")
	f.Bool("esg", false, "only suppliers passing the ESG sustainability gate")
	f.Bool("include-inactive", false, "include inactive suppliers in the ranking")
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "csv" {
		return eris.Errorf("score: --format must be table or csv (got %q)", format)
	}

	activeKPIs, weights, presetName, err := resolveWeights(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	country, _ := cmd.Flags().GetString("country")
	category, _ := cmd.Flags().GetString("category")
	includeInactive, _ := cmd.Flags().GetBool("include-inactive")
	esg, _ := cmd.Flags().GetBool("esg")

	suppliers, err := st.ListSuppliers(ctx, store.SupplierFilter{
		Country:    country,
		Category:   category,
		ActiveOnly: !includeInactive,
	})
	if err != nil {
		return err
	}
	if esg {
		suppliers = model.FilterSuppliers(suppliers, model.SupplierCriteria{ESGGate: true})
	}

	zap.L().Info("scoring suppliers",
		zap.String("preset", presetName),
		zap.Int("candidates", len(suppliers)),
		zap.Int("criteria", len(activeKPIs)),
	)

	scores := scorer.Score(suppliers, activeKPIs, weights)
	if len(scores) == 0 {
		fmt.Println("No suppliers to score.")
		return nil
	}

	outputPath, _ := cmd.Flags().GetString("output")
	return outputRanking(scores, activeKPIs, format, outputPath)
}

// resolveWeights picks the scoring criteria: explicit --weights wins, then
// --kpis with equal weights, then the named (or configured) preset.
func resolveWeights(cmd *cobra.Command) ([]scorer.KPI, map[scorer.KPI]float64, string, error) {
	weightsFlag, _ := cmd.Flags().GetString("weights")
	kpisFlag, _ := cmd.Flags().GetString("kpis")

	if weightsFlag != "" {
		weights, err := parseWeights(weightsFlag)
		if err != nil {
			return nil, nil, "", err
		}
		kpis := make([]scorer.KPI, 0, len(weights))
		for _, k := range scorer.AllKPIs() {
			if _, ok := weights[k]; ok {
				kpis = append(kpis, k)
			}
		}
		return kpis, weights, "custom", nil
	}

	if kpisFlag != "" {
		kpis, err := parseKPIList(kpisFlag)
		if err != nil {
			return nil, nil, "", err
		}
		return kpis, scorer.DefaultWeights(kpis), "custom", nil
	}

	name, _ := cmd.Flags().GetString("preset")
	if name == "" {
		name = cfg.Scoring.DefaultPreset
	}

	if cfg.Scoring.PresetFile != "" {
		presets, err := scorer.LoadPresetFile(cfg.Scoring.PresetFile)
		if err != nil {
			return nil, nil, "", err
		}
		for _, p := range presets {
			if p.Name == name {
				return p.ActiveKPIs, p.Weights, p.Name, nil
			}
		}
	}

	p := scorer.PresetByName(name)
	return p.ActiveKPIs, p.Weights, p.Name, nil
}

func parseWeights(s string) (map[scorer.KPI]float64, error) {
	weights := make(map[scorer.KPI]float64)
	for _, pair := range strings.Split(s, ",") {
		key, val, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, eris.Errorf("score: malformed weight %q (want metric=number)", pair)
		}
		kpi, err := scorer.ParseKPI(strings.TrimSpace(key))
		if err != nil {
			return nil, err
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, eris.Errorf("score: invalid weight for %s: %q", key, val)
		}
		if w < 0 {
			return nil, eris.Errorf("score: negative weight for %s", key)
		}
		weights[kpi] = w
	}
	return weights, nil
}

func parseKPIList(s string) ([]scorer.KPI, error) {
	var kpis []scorer.KPI
	for _, part := range strings.Split(s, ",") {
		kpi, err := scorer.ParseKPI(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		kpis = append(kpis, kpi)
	}
	return kpis, nil
}

func outputRanking(scores []scorer.NormalizedScore, kpis []scorer.KPI, format, outputPath string) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "score: create output file %s", outputPath)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	if format == "csv" {
		return writeRankingCSV(w, scores, kpis)
	}
	return writeRankingTable(w, scores)
}

func writeRankingCSV(w io.Writer, scores []scorer.NormalizedScore, kpis []scorer.KPI) error {
	cw := csv.NewWriter(w)

	header := []string{"rank", "supplier_id", "name", "total_score"}
	for _, k := range kpis {
		header = append(header, string(k))
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "score: write CSV header")
	}

	for _, s := range scores {
		row := []string{
			strconv.Itoa(s.Rank),
			s.SupplierID,
			s.Name,
			fmt.Sprintf("%.4f", s.TotalScore),
		}
		for _, k := range kpis {
			row = append(row, fmt.Sprintf("%.4f", s.Scores[k]))
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "score: write CSV row")
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeRankingTable(w io.Writer, scores []scorer.NormalizedScore) error {
	if _, err := fmt.Fprintf(w, "%-5s %-12s %-40s %10s\n", "Rank", "ID", "Supplier", "Score"); err != nil {
		return eris.Wrap(err, "score: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 70)); err != nil {
		return err
	}
	for _, s := range scores {
		name := s.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		if _, err := fmt.Fprintf(w, "%-5d %-12s %-40s %10.4f\n", s.Rank, s.SupplierID, name, s.TotalScore); err != nil {
			return eris.Wrap(err, "score: write table row")
		}
	}
	return nil
}
