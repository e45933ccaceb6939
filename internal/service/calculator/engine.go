package calculator

import (
	"go.uber.org/zap"

	"greencalc/internal/domain/models"
	"greencalc/pkg/mathutil"
)

// SolarSavingsRate is the fraction of gross production cost offset when the
// farm runs on solar power.
const SolarSavingsRate = 0.20

// SourceUser tags a figure taken from a user override instead of the tables.
const SourceUser Source = "user"

// scaleTier applies an economy-of-scale multiplier to the baseline operating
// cost. The tiering is a tuning knob, not a physical law; adjust the bands
// here when better cost data is curated.
type scaleTier struct {
	MinArea    float64
	Multiplier float64
}

var scaleTiers = []scaleTier{
	{MinArea: 5000, Multiplier: 0.80},
	{MinArea: 2000, Multiplier: 0.90},
	{MinArea: 500, Multiplier: 1.00},
	{MinArea: 0, Multiplier: 1.15},
}

// ScaleMultiplier returns the economy-of-scale factor for a farm area.
func ScaleMultiplier(areaM2 float64) float64 {
	for _, tier := range scaleTiers {
		if areaM2 >= tier.MinArea {
			return tier.Multiplier
		}
	}
	return 1.0
}

// Engine turns a normalized calculation input into a full financial
// projection. It is pure and stateless: the tables and profile are read-only
// after construction, so Compute is safe to call from concurrent requests.
type Engine struct {
	tables  *Tables
	profile Profile
	logger  *zap.Logger
}

// NewEngine wires an engine instance. A nil profile means no regional
// adjustment; a nil logger is replaced with a no-op one.
func NewEngine(tables *Tables, profile Profile, logger *zap.Logger) *Engine {
	if tables == nil {
		tables = DefaultTables()
	}
	if profile == nil {
		profile = NeutralProfile{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{tables: tables, profile: profile, logger: logger}
}

// Tables exposes the parameter tables for form rendering and the normalizer.
func (e *Engine) Tables() *Tables {
	return e.tables
}

// BaselineProductionCost estimates the annual operating cost for a farm in
// the display currency, including the economy-of-scale multiplier and the
// regional labor index. The setup level is accepted for signature parity with
// the capex baseline; operating cost is a function of the cultivation system
// only.
func (e *Engine) BaselineProductionCost(areaM2 float64, system models.SystemType, _ models.SetupLevel, country *models.Country, currencyCode string) float64 {
	costPerM2, _ := e.tables.LookupCostPerM2(system, countryCodeOf(country))
	usd := costPerM2 * areaM2 * ScaleMultiplier(areaM2) * e.profile.Indices(country).Labor
	return e.tables.ToDisplay(usd, currencyCode)
}

// BaselinePricePerKg estimates the market price of a crop in the display
// currency, adjusted by the regional price index.
func (e *Engine) BaselinePricePerKg(crop string, country *models.Country, currencyCode string) float64 {
	price, _ := e.tables.LookupPricePerKg(crop, countryCodeOf(country))
	return e.tables.ToDisplay(price*e.profile.Indices(country).Price, currencyCode)
}

// BaselineCapexPerM2 estimates the capital cost per m² in the display
// currency, adjusted by the regional capex index.
func (e *Engine) BaselineCapexPerM2(level models.SetupLevel, country *models.Country, currencyCode string) float64 {
	capex, _ := e.tables.LookupCapexPerM2(level, countryCodeOf(country))
	return e.tables.ToDisplay(capex*e.profile.Indices(country).Capex, currencyCode)
}

// ResolveCurrency picks the display currency: the explicit override wins,
// then the country's native currency, then USD.
func (e *Engine) ResolveCurrency(input models.CalculationInput, country *models.Country) (code, symbol string) {
	code = input.CurrencyOverride
	if code == "" && country != nil {
		code = country.CurrencyCode
	}
	if code == "" {
		code = "USD"
	}
	_, symbol = e.tables.Currency(code)
	return code, symbol
}

// Compute produces the financial projection for one request. A nil country
// falls back to the default reference country; the engine never fails on
// country resolution, only on a non-positive area.
func (e *Engine) Compute(input models.CalculationInput, country *models.Country) (*models.CalculationResult, error) {
	if input.AreaM2 <= 0 {
		return nil, NewValidationError("area_m2", "greenhouse area must be greater than zero")
	}

	if country == nil {
		fallback := models.DefaultCountry
		country = &fallback
	}

	currencyCode, currencySymbol := e.ResolveCurrency(input, country)
	idx := e.profile.Indices(country)

	countryCode := input.CountryCode
	if countryCode == "" {
		countryCode = country.Code
	}

	agro, agroSource := e.tables.LookupAgronomic(countryCode, input.SystemType, input.Crop)
	plants := input.AreaM2 * agro.PlantsPerM2
	annualYield := input.AreaM2 * agro.YieldPerM2PerCrop * agro.CropsPerYear * idx.Yield

	nutrientsPerCrop := agro.NutrientsPerM2PerCrop * input.AreaM2
	nutrientsPerYear := nutrientsPerCrop * agro.CropsPerYear
	nutrientsPerPlant := mathutil.SafeDiv(agro.NutrientsPerM2PerCrop, agro.PlantsPerM2)

	grossCost := input.ProductionCost
	if grossCost <= 0 {
		grossCost = e.BaselineProductionCost(input.AreaM2, input.SystemType, input.SetupLevel, country, currencyCode)
	}

	var solarSavings float64
	if input.UseSolar {
		solarSavings = grossCost * SolarSavingsRate * idx.Solar
	}
	netCost := grossCost - solarSavings

	pricePerKg := input.PricePerKg
	priceSource := SourceUser
	if pricePerKg <= 0 {
		pricePerKg = e.BaselinePricePerKg(input.Crop, country, currencyCode)
		_, priceSource = e.tables.LookupPricePerKg(input.Crop, countryCode)
	}

	annualRevenue := annualYield * pricePerKg
	annualProfit := annualRevenue - netCost

	capexPerM2 := input.CapexPerM2
	capexSource := SourceUser
	if capexPerM2 <= 0 {
		capexPerM2 = e.BaselineCapexPerM2(input.SetupLevel, country, currencyCode)
		_, capexSource = e.tables.LookupCapexPerM2(input.SetupLevel, countryCode)
	}
	totalSetupCost := capexPerM2 * input.AreaM2

	// Simple payback is defined only for a strictly positive profit.
	var payback *float64
	if annualProfit > 0 {
		years := totalSetupCost / annualProfit
		payback = &years
	}

	e.logger.Debug("calculation complete",
		zap.String("crop", input.Crop),
		zap.String("system", string(input.SystemType)),
		zap.String("country", countryCode),
		zap.String("currency", currencyCode),
		zap.String("agronomic_source", string(agroSource)),
		zap.Float64("annual_profit", annualProfit))

	// All derived per-unit figures guard their denominator; the terminal
	// monetary and yield figures are rounded here, at the presentation
	// boundary, after every dependent quantity has been computed at full
	// precision.
	return &models.CalculationResult{
		AreaM2: input.AreaM2,
		Plants: plants,

		AnnualYieldKg:       mathutil.Round2(annualYield),
		CropsPerYear:        agro.CropsPerYear,
		NutrientsPerCropKg:  mathutil.Round2(nutrientsPerCrop),
		NutrientsPerYearKg:  mathutil.Round2(nutrientsPerYear),
		NutrientsPerPlantKg: mathutil.Round2(nutrientsPerPlant),

		GrossProductionCost: mathutil.Round2(grossCost),
		SolarSavings:        mathutil.Round2(solarSavings),
		NetProductionCost:   mathutil.Round2(netCost),
		CostPerKg:           mathutil.Round2(mathutil.SafeDiv(netCost, annualYield)),
		CostPerPlant:        mathutil.Round2(mathutil.SafeDiv(netCost, plants)),
		CostPerM2:           mathutil.Round2(netCost / input.AreaM2),

		PricePerKg:      pricePerKg,
		AnnualRevenue:   mathutil.Round2(annualRevenue),
		RevenuePerPlant: mathutil.Round2(mathutil.SafeDiv(annualRevenue, plants)),
		RevenuePerM2:    mathutil.Round2(annualRevenue / input.AreaM2),

		AnnualProfit:   mathutil.Round2(annualProfit),
		ProfitPerPlant: mathutil.Round2(mathutil.SafeDiv(annualProfit, plants)),
		ProfitPerM2:    mathutil.Round2(annualProfit / input.AreaM2),
		ProfitPerKg:    mathutil.Round2(mathutil.SafeDiv(annualProfit, annualYield)),

		CapexPerM2:     mathutil.Round2(capexPerM2),
		TotalSetupCost: mathutil.Round2(totalSetupCost),
		PaybackYears:   payback,

		CurrencyCode:   currencyCode,
		CurrencySymbol: currencySymbol,
		CountryCode:    countryCode,
		SetupLabel:     models.SetupLabel(input.SetupLevel),

		AgronomicSource: string(agroSource),
		PriceSource:     string(priceSource),
		CapexSource:     string(capexSource),
	}, nil
}

func countryCodeOf(country *models.Country) string {
	if country == nil {
		return ""
	}
	return country.Code
}
