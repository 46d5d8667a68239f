package scorer

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Preset is a named bundle of active KPIs and raw weights. Weights are
// expressed as shares of 100 and normalized by the engine at scoring time.
type Preset struct {
	Name       string          `yaml:"name"`
	ActiveKPIs []KPI           `yaml:"kpis"`
	Weights    map[KPI]float64 `yaml:"weights"`
}

// DefaultPreset is used when no preset is named.
const DefaultPreset = "balanced"

var builtinPresets = map[string]Preset{
	"cost": {
		Name:       "cost",
		ActiveKPIs: []KPI{KPIUnitCost, KPILeadTimeDays, KPIMOQ, KPIDistanceKM},
		Weights: map[KPI]float64{
			KPIUnitCost:     40,
			KPILeadTimeDays: 25,
			KPIMOQ:          20,
			KPIDistanceKM:   15,
		},
	},
	"proximity": {
		Name:       "proximity",
		ActiveKPIs: []KPI{KPIDistanceKM, KPILeadTimeDays, KPIService, KPIQuality},
		Weights: map[KPI]float64{
			KPIDistanceKM:   40,
			KPILeadTimeDays: 30,
			KPIService:      15,
			KPIQuality:      15,
		},
	},
	"quality_service": {
		Name:       "quality_service",
		ActiveKPIs: []KPI{KPIQuality, KPIService, KPIOTIFPct, KPISustainability},
		Weights: map[KPI]float64{
			KPIQuality:        35,
			KPIService:        30,
			KPIOTIFPct:        25,
			KPISustainability: 10,
		},
	},
	"balanced": {
		Name:       "balanced",
		ActiveKPIs: []KPI{KPIUnitCost, KPIQuality, KPIService, KPILeadTimeDays, KPIOTIFPct, KPISustainability},
		Weights: map[KPI]float64{
			KPIUnitCost:       20,
			KPIQuality:        20,
			KPIService:        20,
			KPILeadTimeDays:   15,
			KPIOTIFPct:        15,
			KPISustainability: 10,
		},
	},
}

// PresetByName returns the named preset, falling back to the balanced
// preset for unknown names.
func PresetByName(name string) Preset {
	if p, ok := builtinPresets[name]; ok {
		return p
	}
	return builtinPresets[DefaultPreset]
}

// PresetNames returns the built-in preset names in stable order.
func PresetNames() []string {
	return []string{"balanced", "cost", "proximity", "quality_service"}
}

// DefaultWeights assigns every KPI an equal share of 100.
func DefaultWeights(kpis []KPI) map[KPI]float64 {
	weights := make(map[KPI]float64, len(kpis))
	if len(kpis) == 0 {
		return weights
	}
	share := 100.0 / float64(len(kpis))
	for _, k := range kpis {
		weights[k] = share
	}
	return weights
}

// LoadPresetFile reads additional presets from a YAML file. File presets
// may not reference unknown KPI keys.
func LoadPresetFile(path string) ([]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "scorer: read preset file")
	}

	var presets []Preset
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, eris.Wrap(err, "scorer: parse preset file")
	}

	for _, p := range presets {
		if p.Name == "" {
			return nil, eris.New("scorer: preset without a name")
		}
		for _, k := range p.ActiveKPIs {
			if _, err := ParseKPI(string(k)); err != nil {
				return nil, eris.Wrapf(err, "scorer: preset %q", p.Name)
			}
		}
		for k := range p.Weights {
			if _, err := ParseKPI(string(k)); err != nil {
				return nil, eris.Wrapf(err, "scorer: preset %q", p.Name)
			}
		}
	}

	return presets, nil
}
