package scorer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetByName(t *testing.T) {
	cost := PresetByName("cost")
	assert.Equal(t, "cost", cost.Name)
	assert.Equal(t, []KPI{KPIUnitCost, KPILeadTimeDays, KPIMOQ, KPIDistanceKM}, cost.ActiveKPIs)
	assert.InDelta(t, 40, cost.Weights[KPIUnitCost], 1e-9)

	t.Run("unknown name falls back to balanced", func(t *testing.T) {
		p := PresetByName("no-such-preset")
		assert.Equal(t, "balanced", p.Name)
	})
}

func TestBuiltinPresetWeightsSumTo100(t *testing.T) {
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			p := PresetByName(name)
			var sum float64
			for _, k := range p.ActiveKPIs {
				sum += p.Weights[k]
			}
			assert.InDelta(t, 100, sum, 1e-9)
		})
	}
}

func TestDefaultWeights(t *testing.T) {
	kpis := []KPI{KPIUnitCost, KPIQuality, KPIService, KPIOTIFPct}
	weights := DefaultWeights(kpis)
	require.Len(t, weights, 4)
	for _, k := range kpis {
		assert.InDelta(t, 25, weights[k], 1e-9)
	}

	assert.Empty(t, DefaultWeights(nil))
}

func TestLoadPresetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
- name: local_first
  kpis: [distance_km, lead_time_days]
  weights:
    distance_km: 70
    lead_time_days: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	presets, err := LoadPresetFile(path)
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, "local_first", presets[0].Name)
	assert.InDelta(t, 70, presets[0].Weights[KPIDistanceKM], 1e-9)
}

func TestLoadPresetFileRejectsUnknownKPI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	content := `
- name: bad
  kpis: [not_a_kpi]
  weights:
    not_a_kpi: 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadPresetFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown KPI")
}
