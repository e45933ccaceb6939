package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greencalc/internal/domain/models"
)

func rawForm(area string) map[string]string {
	return map[string]string{
		FieldArea:       area,
		FieldCrop:       "Tomato",
		FieldSystemType: "soil",
		FieldSetupLevel: "standard",
		FieldCountry:    "us",
	}
}

func TestNormalizeRequiresArea(t *testing.T) {
	engine := NewEngine(nil, nil, nil)

	for _, area := range []string{"", "0", "-5", "not-a-number"} {
		_, err := engine.Normalize(rawForm(area), usCountry())
		require.Error(t, err, "area=%q", area)

		verr, ok := AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, FieldArea, verr.Field)
	}
}

func TestNormalizeFillsBaselines(t *testing.T) {
	engine := NewEngine(DefaultTables(), NeutralProfile{}, nil)
	country := usCountry()

	input, err := engine.Normalize(rawForm("2000"), country)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, input.AreaM2)
	assert.Equal(t, "tomato", input.Crop)
	assert.Equal(t, models.SystemSoil, input.SystemType)
	assert.Equal(t, "US", input.CountryCode)
	assert.False(t, input.UseSolar)

	assert.InDelta(t, engine.BaselineProductionCost(2000, models.SystemSoil, models.SetupStandard, country, "USD"), input.ProductionCost, 1e-9)
	assert.InDelta(t, engine.BaselinePricePerKg("tomato", country, "USD"), input.PricePerKg, 1e-9)
	assert.InDelta(t, engine.BaselineCapexPerM2(models.SetupStandard, country, "USD"), input.CapexPerM2, 1e-9)
}

func TestNormalizeTreatsMalformedNumbersAsMissing(t *testing.T) {
	engine := NewEngine(DefaultTables(), NeutralProfile{}, nil)

	raw := rawForm("1000")
	raw[FieldProductionCost] = "12,50" // not parseable
	raw[FieldPricePerKg] = "abc"

	input, err := engine.Normalize(raw, usCountry())
	require.NoError(t, err)

	assert.Positive(t, input.ProductionCost)
	assert.Positive(t, input.PricePerKg)
}

func TestNormalizeKeepsUserOverrides(t *testing.T) {
	engine := NewEngine(DefaultTables(), NeutralProfile{}, nil)

	raw := rawForm("1000")
	raw[FieldProductionCost] = "9999.5"
	raw[FieldPricePerKg] = "3.25"
	raw[FieldCapexPerM2] = "88"
	raw[FieldUseSolar] = "on"
	raw[FieldCurrencyOverride] = "eur"

	input, err := engine.Normalize(raw, usCountry())
	require.NoError(t, err)

	assert.Equal(t, 9999.5, input.ProductionCost)
	assert.Equal(t, 3.25, input.PricePerKg)
	assert.Equal(t, 88.0, input.CapexPerM2)
	assert.True(t, input.UseSolar)
	assert.Equal(t, "EUR", input.CurrencyOverride)
}

func TestNormalizeBooleanMarkers(t *testing.T) {
	engine := NewEngine(DefaultTables(), NeutralProfile{}, nil)

	tests := []struct {
		value    string
		expected bool
	}{
		{"on", true},
		{"true", true},
		{"1", true},
		{"YES", true},
		{"", false},
		{"off", false},
		{"0", false},
	}

	for _, tt := range tests {
		raw := rawForm("100")
		raw[FieldUseSolar] = tt.value

		input, err := engine.Normalize(raw, usCountry())
		require.NoError(t, err)
		assert.Equal(t, tt.expected, input.UseSolar, "value=%q", tt.value)
	}
}

func TestNormalizeDoesNotMutateRawMap(t *testing.T) {
	engine := NewEngine(DefaultTables(), NeutralProfile{}, nil)

	raw := rawForm("500")
	snapshot := map[string]string{}
	for k, v := range raw {
		snapshot[k] = v
	}

	_, err := engine.Normalize(raw, usCountry())
	require.NoError(t, err)
	assert.Equal(t, snapshot, raw)
}

func TestNormalizeDefaultsUnknownEnums(t *testing.T) {
	engine := NewEngine(DefaultTables(), NeutralProfile{}, nil)

	raw := rawForm("100")
	raw[FieldSystemType] = "underwater"
	raw[FieldSetupLevel] = "platinum"
	raw[FieldCrop] = ""

	input, err := engine.Normalize(raw, usCountry())
	require.NoError(t, err)

	assert.Equal(t, models.SystemSoilless, input.SystemType)
	assert.Equal(t, models.SetupStandard, input.SetupLevel)
	assert.Equal(t, "tomato", input.Crop)
}
