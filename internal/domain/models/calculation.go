package models

import "strings"

// SystemType enumerates supported cultivation methods.
type SystemType string

const (
	SystemSoil       SystemType = "soil"
	SystemSoilless   SystemType = "soilless"
	SystemHydroponic SystemType = "hydroponics"
	SystemAeroponic  SystemType = "aeroponics"
	SystemVertical   SystemType = "vertical"
)

// SetupLevel enumerates capital-intensity tiers. The level affects the
// capital-cost baseline only.
type SetupLevel string

const (
	SetupLocal    SetupLevel = "local"
	SetupStandard SetupLevel = "standard"
	SetupHighTech SetupLevel = "hightech"
)

// ParseSystemType maps free-form input to a known system type, defaulting to
// soilless when the value is not recognized.
func ParseSystemType(value string) SystemType {
	switch SystemType(strings.TrimSpace(strings.ToLower(value))) {
	case SystemSoil:
		return SystemSoil
	case SystemSoilless:
		return SystemSoilless
	case SystemHydroponic:
		return SystemHydroponic
	case SystemAeroponic:
		return SystemAeroponic
	case SystemVertical:
		return SystemVertical
	default:
		return SystemSoilless
	}
}

// ParseSetupLevel maps free-form input to a known setup level, defaulting to
// standard when the value is not recognized.
func ParseSetupLevel(value string) SetupLevel {
	switch SetupLevel(strings.TrimSpace(strings.ToLower(value))) {
	case SetupLocal:
		return SetupLocal
	case SetupStandard:
		return SetupStandard
	case SetupHighTech:
		return SetupHighTech
	default:
		return SetupStandard
	}
}

// SetupLabel returns the human-readable label used on rendered results.
func SetupLabel(level SetupLevel) string {
	switch level {
	case SetupLocal:
		return "Local / low-cost"
	case SetupHighTech:
		return "High-tech"
	default:
		return "Standard"
	}
}

// CalculationInput is the normalized calculation request. All monetary
// overrides are zero when the user left them blank; the engine substitutes
// computed baselines for zero values.
type CalculationInput struct {
	AreaM2           float64    `json:"area_m2"`
	Crop             string     `json:"crop"`
	SystemType       SystemType `json:"system_type"`
	SetupLevel       SetupLevel `json:"setup_level"`
	CountryCode      string     `json:"country"`
	CurrencyOverride string     `json:"currency_override,omitempty"`
	UseSolar         bool       `json:"use_solar"`

	// User overrides; > 0 wins over the computed baseline.
	ProductionCost float64 `json:"annual_production_cost,omitempty"`
	PricePerKg     float64 `json:"price_per_unit,omitempty"`
	CapexPerM2     float64 `json:"capex_per_m2,omitempty"`
}

// CalculationResult is the full financial projection for one request. All
// monetary figures are expressed in the display currency. Values are rounded
// for presentation; the engine computes at full precision internally.
type CalculationResult struct {
	// Scale
	AreaM2 float64 `json:"area_m2"`
	Plants float64 `json:"plants"`

	// Production
	AnnualYieldKg       float64 `json:"annual_yield_kg"`
	CropsPerYear        float64 `json:"crops_per_year"`
	NutrientsPerCropKg  float64 `json:"nutrients_per_crop_kg"`
	NutrientsPerYearKg  float64 `json:"nutrients_per_year_kg"`
	NutrientsPerPlantKg float64 `json:"nutrients_per_plant_kg"`

	// Cost
	GrossProductionCost float64 `json:"gross_production_cost"`
	SolarSavings        float64 `json:"solar_savings"`
	NetProductionCost   float64 `json:"net_production_cost"`
	CostPerKg           float64 `json:"cost_per_kg"`
	CostPerPlant        float64 `json:"cost_per_plant"`
	CostPerM2           float64 `json:"cost_per_m2"`

	// Revenue
	PricePerKg      float64 `json:"price_per_kg"`
	AnnualRevenue   float64 `json:"annual_revenue"`
	RevenuePerPlant float64 `json:"revenue_per_plant"`
	RevenuePerM2    float64 `json:"revenue_per_m2"`

	// Profit
	AnnualProfit   float64 `json:"annual_profit"`
	ProfitPerPlant float64 `json:"profit_per_plant"`
	ProfitPerM2    float64 `json:"profit_per_m2"`
	ProfitPerKg    float64 `json:"profit_per_kg"`

	// Capital
	CapexPerM2     float64  `json:"capex_per_m2"`
	TotalSetupCost float64  `json:"total_setup_cost"`
	PaybackYears   *float64 `json:"payback_years,omitempty"`

	// Context
	CurrencyCode   string `json:"currency_code"`
	CurrencySymbol string `json:"currency_symbol"`
	CountryCode    string `json:"country"`
	SetupLabel     string `json:"setup_label"`

	// Resolution provenance for the table lookups (country, global or
	// canonical), useful for debugging curated-data coverage.
	AgronomicSource string `json:"agronomic_source"`
	PriceSource     string `json:"price_source"`
	CapexSource     string `json:"capex_source"`
}
