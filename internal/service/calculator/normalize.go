package calculator

import (
	"strconv"
	"strings"

	"greencalc/internal/domain/models"
)

// Form field names recognized by the normalizer.
const (
	FieldArea             = "area_m2"
	FieldCrop             = "crop"
	FieldSystemType       = "system_type"
	FieldSetupLevel       = "setup_level"
	FieldCountry          = "country"
	FieldCurrencyOverride = "currency_override"
	FieldUseSolar         = "use_solar"
	FieldProductionCost   = "annual_production_cost"
	FieldPricePerKg       = "price_per_unit"
	FieldCapexPerM2       = "capex_per_m2"
)

// Normalize coerces raw form values into a CalculationInput. Malformed or
// missing numbers count as absent. Optional economics fields that come out
// absent or non-positive are pre-filled with the engine's baseline estimates
// so the user sees the numbers the projection will use; area alone is
// mandatory and fails validation when it is not a positive number. The raw
// map is never mutated.
func (e *Engine) Normalize(raw map[string]string, country *models.Country) (models.CalculationInput, error) {
	input := models.CalculationInput{
		Crop:             strings.TrimSpace(strings.ToLower(raw[FieldCrop])),
		SystemType:       models.ParseSystemType(raw[FieldSystemType]),
		SetupLevel:       models.ParseSetupLevel(raw[FieldSetupLevel]),
		CountryCode:      normalizeCountry(raw[FieldCountry]),
		CurrencyOverride: strings.ToUpper(strings.TrimSpace(raw[FieldCurrencyOverride])),
		UseSolar:         parseBool(raw[FieldUseSolar]),
	}
	if input.Crop == "" {
		input.Crop = canonicalCrop
	}

	input.AreaM2 = parseFloat(raw[FieldArea])
	if input.AreaM2 <= 0 {
		return models.CalculationInput{}, NewValidationError(FieldArea, "greenhouse area must be greater than zero")
	}

	currencyCode, _ := e.ResolveCurrency(input, country)

	input.ProductionCost = parseFloat(raw[FieldProductionCost])
	if input.ProductionCost <= 0 {
		input.ProductionCost = e.BaselineProductionCost(input.AreaM2, input.SystemType, input.SetupLevel, country, currencyCode)
	}

	input.PricePerKg = parseFloat(raw[FieldPricePerKg])
	if input.PricePerKg <= 0 {
		input.PricePerKg = e.BaselinePricePerKg(input.Crop, country, currencyCode)
	}

	input.CapexPerM2 = parseFloat(raw[FieldCapexPerM2])
	if input.CapexPerM2 <= 0 {
		input.CapexPerM2 = e.BaselineCapexPerM2(input.SetupLevel, country, currencyCode)
	}

	return input, nil
}

// parseFloat treats malformed values as absent rather than failing.
func parseFloat(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// parseBool recognizes the marker values HTML checkboxes submit.
func parseBool(value string) bool {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "on", "true", "1", "yes", "y":
		return true
	default:
		return false
	}
}
