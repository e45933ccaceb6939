package calculator

import (
	"sort"
	"strings"

	"greencalc/internal/domain/models"
)

// Source identifies which tier of a parameter table satisfied a lookup.
type Source string

const (
	// SourceCountry means a curated country-specific entry was found.
	SourceCountry Source = "country"
	// SourceGlobal means the lookup degraded to the GLOBAL tier.
	SourceGlobal Source = "global"
	// SourceCanonical means even the GLOBAL tier was missing and the
	// canonical soilless/tomato entry was used.
	SourceCanonical Source = "canonical"
)

// globalKey is the country key of the GLOBAL tier.
const globalKey = "GLOBAL"

// Canonical pair used as the lookup of last resort.
const (
	canonicalCrop   = "tomato"
	canonicalSystem = models.SystemSoilless
)

// AgronomicParams are the per-m² growing parameters for a crop under a
// cultivation system.
type AgronomicParams struct {
	PlantsPerM2           float64
	CropsPerYear          float64
	YieldPerM2PerCrop     float64
	NutrientsPerM2PerCrop float64
}

type agronomicKey struct {
	System models.SystemType
	Crop   string
}

type priceKey struct {
	Country string
	Crop    string
}

type capexKey struct {
	Country string
	Level   models.SetupLevel
}

type costKey struct {
	Country string
	System  models.SystemType
}

type currencyInfo struct {
	// RatePerUSD is units of the currency per one US dollar.
	RatePerUSD float64
	Symbol     string
}

// Tables holds every static parameter table the engine consults. Built once
// at startup and treated as read-only afterwards, so concurrent Compute calls
// need no locking.
type Tables struct {
	agronomic  map[string]map[agronomicKey]AgronomicParams
	pricePerKg map[priceKey]float64
	capexPerM2 map[capexKey]float64
	costPerM2  map[costKey]float64
	currencies map[string]currencyInfo
	crops      []string
}

// DefaultTables returns the curated parameter set. Country tiers cover a
// handful of markets with better data; everything else resolves through the
// GLOBAL tier.
func DefaultTables() *Tables {
	t := &Tables{
		agronomic:  map[string]map[agronomicKey]AgronomicParams{},
		pricePerKg: map[priceKey]float64{},
		capexPerM2: map[capexKey]float64{},
		costPerM2:  map[costKey]float64{},
		currencies: defaultCurrencies(),
	}

	t.buildGlobalAgronomics()

	// Country-specific agronomic overrides.
	t.setAgronomic("US", models.SystemSoil, "tomato", AgronomicParams{2.5, 2, 13, 0.9})
	t.setAgronomic("US", models.SystemHydroponic, "tomato", AgronomicParams{3.0, 2.6, 18, 1.08})
	t.setAgronomic("NL", models.SystemHydroponic, "tomato", AgronomicParams{3.2, 2.8, 20, 1.1})

	// Market prices, USD per kg.
	for crop, price := range map[string]float64{
		"tomato":     2.0,
		"cucumber":   1.6,
		"lettuce":    2.8,
		"strawberry": 5.5,
		"pepper":     2.5,
	} {
		t.pricePerKg[priceKey{globalKey, crop}] = price
	}
	t.pricePerKg[priceKey{"US", "tomato"}] = 2.2
	t.pricePerKg[priceKey{"US", "lettuce"}] = 3.2
	t.pricePerKg[priceKey{"NL", "tomato"}] = 2.4
	t.pricePerKg[priceKey{"ES", "tomato"}] = 1.8

	// Capital cost, USD per m².
	for level, capex := range map[models.SetupLevel]float64{
		models.SetupLocal:    45,
		models.SetupStandard: 100,
		models.SetupHighTech: 250,
	} {
		t.capexPerM2[capexKey{globalKey, level}] = capex
	}
	t.capexPerM2[capexKey{"US", models.SetupLocal}] = 60
	t.capexPerM2[capexKey{"US", models.SetupStandard}] = 110
	t.capexPerM2[capexKey{"US", models.SetupHighTech}] = 300
	t.capexPerM2[capexKey{"NL", models.SetupStandard}] = 140
	t.capexPerM2[capexKey{"NL", models.SetupHighTech}] = 350

	// Annual operating cost, USD per m².
	for system, cost := range map[models.SystemType]float64{
		models.SystemSoil:       18,
		models.SystemSoilless:   22,
		models.SystemHydroponic: 30,
		models.SystemAeroponic:  35,
		models.SystemVertical:   40,
	} {
		t.costPerM2[costKey{globalKey, system}] = cost
	}
	t.costPerM2[costKey{"US", models.SystemSoil}] = 20
	t.costPerM2[costKey{"US", models.SystemHydroponic}] = 34
	t.costPerM2[costKey{"NL", models.SystemSoil}] = 24

	return t
}

// buildGlobalAgronomics composes the GLOBAL tier from per-crop soil baselines
// and per-system factors. The composition happens once; lookups only see the
// materialized table.
func (t *Tables) buildGlobalAgronomics() {
	bases := map[string]AgronomicParams{
		"tomato":     {2.5, 2, 12, 0.9},
		"cucumber":   {1.8, 3, 10, 0.8},
		"lettuce":    {16, 6, 3.5, 0.25},
		"strawberry": {6, 2, 4.5, 0.4},
		"pepper":     {2.2, 2, 8, 0.7},
	}

	factors := map[models.SystemType]AgronomicParams{
		models.SystemSoil:       {1, 1, 1, 1},
		models.SystemSoilless:   {1.1, 1.1, 1.25, 1.1},
		models.SystemHydroponic: {1.2, 1.3, 1.5, 1.2},
		models.SystemAeroponic:  {1.2, 1.4, 1.6, 1.05},
		models.SystemVertical:   {2.2, 1.5, 2.0, 1.3},
	}

	for crop, base := range bases {
		t.crops = append(t.crops, crop)
		for system, f := range factors {
			t.setAgronomic(globalKey, system, crop, AgronomicParams{
				PlantsPerM2:           base.PlantsPerM2 * f.PlantsPerM2,
				CropsPerYear:          base.CropsPerYear * f.CropsPerYear,
				YieldPerM2PerCrop:     base.YieldPerM2PerCrop * f.YieldPerM2PerCrop,
				NutrientsPerM2PerCrop: base.NutrientsPerM2PerCrop * f.NutrientsPerM2PerCrop,
			})
		}
	}
	sort.Strings(t.crops)
}

func (t *Tables) setAgronomic(country string, system models.SystemType, crop string, params AgronomicParams) {
	tier, ok := t.agronomic[country]
	if !ok {
		tier = map[agronomicKey]AgronomicParams{}
		t.agronomic[country] = tier
	}
	tier[agronomicKey{system, crop}] = params
}

// Crops lists the crop keys present in the GLOBAL tier, sorted.
func (t *Tables) Crops() []string {
	out := make([]string, len(t.crops))
	copy(out, t.crops)
	return out
}

// LookupAgronomic resolves the growing parameters for a country, system and
// crop. Resolution order: exact country entry, then the GLOBAL tier, then the
// canonical soilless/tomato entry. The lookup never fails; missing curation
// degrades to a global average.
func (t *Tables) LookupAgronomic(countryCode string, system models.SystemType, crop string) (AgronomicParams, Source) {
	key := agronomicKey{system, crop}

	if tier, ok := t.agronomic[normalizeCountry(countryCode)]; ok {
		if params, ok := tier[key]; ok {
			return params, SourceCountry
		}
	}
	if params, ok := t.agronomic[globalKey][key]; ok {
		return params, SourceGlobal
	}
	return t.agronomic[globalKey][agronomicKey{canonicalSystem, canonicalCrop}], SourceCanonical
}

// LookupPricePerKg resolves the USD market price of a crop, country tier
// first, then GLOBAL, then the canonical tomato price.
func (t *Tables) LookupPricePerKg(crop, countryCode string) (float64, Source) {
	if price, ok := t.pricePerKg[priceKey{normalizeCountry(countryCode), crop}]; ok {
		return price, SourceCountry
	}
	if price, ok := t.pricePerKg[priceKey{globalKey, crop}]; ok {
		return price, SourceGlobal
	}
	return t.pricePerKg[priceKey{globalKey, canonicalCrop}], SourceCanonical
}

// LookupCapexPerM2 resolves the USD capital cost per m² for a setup level,
// defaulting to the standard level when the requested one is not curated.
func (t *Tables) LookupCapexPerM2(level models.SetupLevel, countryCode string) (float64, Source) {
	country := normalizeCountry(countryCode)
	if capex, ok := t.capexPerM2[capexKey{country, level}]; ok {
		return capex, SourceCountry
	}
	if capex, ok := t.capexPerM2[capexKey{globalKey, level}]; ok {
		return capex, SourceGlobal
	}
	return t.capexPerM2[capexKey{globalKey, models.SetupStandard}], SourceCanonical
}

// LookupCostPerM2 resolves the annual USD operating cost per m² for a
// cultivation system. The setup level does not change operating cost; it is
// a capital-intensity tier only.
func (t *Tables) LookupCostPerM2(system models.SystemType, countryCode string) (float64, Source) {
	if cost, ok := t.costPerM2[costKey{normalizeCountry(countryCode), system}]; ok {
		return cost, SourceCountry
	}
	if cost, ok := t.costPerM2[costKey{globalKey, system}]; ok {
		return cost, SourceGlobal
	}
	return t.costPerM2[costKey{globalKey, canonicalSystem}], SourceCanonical
}

// Currency returns the conversion rate (units per USD) and display symbol for
// a currency code. Unknown codes pass through at rate 1.0 with the code
// itself as symbol; the table is a static snapshot, not a live feed.
func (t *Tables) Currency(code string) (float64, string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return 1.0, "$"
	}
	if info, ok := t.currencies[code]; ok {
		return info.RatePerUSD, info.Symbol
	}
	return 1.0, code
}

// ToDisplay converts a USD amount into the display currency.
func (t *Tables) ToDisplay(usd float64, currencyCode string) float64 {
	rate, _ := t.Currency(currencyCode)
	return usd * rate
}

// ToReference converts a display-currency amount back to USD.
func (t *Tables) ToReference(amount float64, currencyCode string) float64 {
	rate, _ := t.Currency(currencyCode)
	return amount / rate
}

func defaultCurrencies() map[string]currencyInfo {
	return map[string]currencyInfo{
		"USD": {1.0, "$"},
		"EUR": {0.92, "€"},
		"GBP": {0.79, "£"},
		"JPY": {148, "¥"},
		"CAD": {1.36, "C$"},
		"AUD": {1.52, "A$"},
		"INR": {83, "₹"},
		"KES": {129, "KSh"},
		"NGN": {1500, "₦"},
		"XOF": {600, "CFA"},
		"GNF": {8600, "FG"},
		"MAD": {9.8, "DH"},
		"EGP": {48, "E£"},
		"ZAR": {18.2, "R"},
		"BRL": {5.4, "R$"},
		"MXN": {17.5, "MX$"},
	}
}

func normalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
