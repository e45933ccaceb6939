package calculator

import (
	"math"

	"greencalc/internal/domain/models"
)

// Indices are the regional adjustment multipliers applied on top of the
// GLOBAL parameter tables. A value of 1.0 is always a no-op.
type Indices struct {
	Solar float64
	Labor float64
	Price float64
	Capex float64
	Yield float64
}

// Neutral is the identity adjustment.
func Neutral() Indices {
	return Indices{Solar: 1, Labor: 1, Price: 1, Capex: 1, Yield: 1}
}

// Profile derives regional adjustment indices for a country. Implementations
// must be pure; the engine may call them from concurrent requests.
type Profile interface {
	Indices(country *models.Country) Indices
}

// NeutralProfile applies no regional adjustment. This is the default.
type NeutralProfile struct{}

// Indices returns the identity multipliers for any country.
func (NeutralProfile) Indices(*models.Country) Indices {
	return Neutral()
}

// LatitudeProfile approximates regional economics from the country's
// latitude: tropical locations get more solar benefit and cheaper labor,
// high-latitude locations the opposite. This is a stand-in for real
// country-level economic data and stays disabled unless configured.
type LatitudeProfile struct{}

// Indices maps absolute latitude to one of three coarse bands. Countries
// without a known latitude get the identity multipliers.
func (LatitudeProfile) Indices(country *models.Country) Indices {
	if country == nil || country.Latitude == nil {
		return Neutral()
	}

	switch lat := math.Abs(*country.Latitude); {
	case lat <= 23.5: // tropics
		return Indices{Solar: 1.15, Labor: 0.85, Price: 0.9, Capex: 0.9, Yield: 1.05}
	case lat <= 45: // temperate
		return Neutral()
	default: // high latitude
		return Indices{Solar: 0.85, Labor: 1.15, Price: 1.1, Capex: 1.1, Yield: 0.95}
	}
}
