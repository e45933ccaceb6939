package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"greencalc/internal/domain/models"
)

func countryAtLatitude(lat float64) *models.Country {
	return &models.Country{Code: "XX", CurrencyCode: "USD", Latitude: &lat}
}

func TestNeutralProfileIsIdentity(t *testing.T) {
	idx := NeutralProfile{}.Indices(countryAtLatitude(5))
	assert.Equal(t, Neutral(), idx)

	idx = NeutralProfile{}.Indices(nil)
	assert.Equal(t, Neutral(), idx)
}

func TestLatitudeProfileBands(t *testing.T) {
	profile := LatitudeProfile{}

	tests := []struct {
		name  string
		lat   float64
		solar float64
	}{
		{"equator", 0, 1.15},
		{"tropic edge", 23.5, 1.15},
		{"southern tropics", -10, 1.15},
		{"temperate", 40, 1.0},
		{"high latitude", 60, 0.85},
		{"deep south", -55, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := profile.Indices(countryAtLatitude(tt.lat))
			assert.Equal(t, tt.solar, idx.Solar)
		})
	}
}

func TestLatitudeProfileWithoutLatitudeIsNeutral(t *testing.T) {
	profile := LatitudeProfile{}

	assert.Equal(t, Neutral(), profile.Indices(nil))
	assert.Equal(t, Neutral(), profile.Indices(&models.Country{Code: "XX"}))
}
