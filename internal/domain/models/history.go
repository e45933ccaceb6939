package models

import "time"

// HistoryRecord is the append-only row persisted after each successful
// calculation.
type HistoryRecord struct {
	ID           int64     `db:"id" bson:"-" json:"id"`
	AreaM2       float64   `db:"area_m2" bson:"area_m2" json:"area_m2"`
	SystemType   string    `db:"system_type" bson:"system_type" json:"system_type"`
	Crop         string    `db:"crop" bson:"crop" json:"crop"`
	CountryCode  string    `db:"country" bson:"country" json:"country"`
	CurrencyCode string    `db:"currency_code" bson:"currency_code" json:"currency_code"`
	AnnualYield  float64   `db:"annual_yield_kg" bson:"annual_yield_kg" json:"annual_yield_kg"`
	AnnualProfit float64   `db:"annual_profit" bson:"annual_profit" json:"annual_profit"`
	SolarSavings float64   `db:"solar_savings" bson:"solar_savings" json:"solar_savings"`
	CreatedAt    time.Time `db:"created_at" bson:"created_at" json:"created_at"`
}

// NewHistoryRecord snapshots the fields of a result worth keeping in history.
func NewHistoryRecord(input CalculationInput, result CalculationResult, now time.Time) HistoryRecord {
	return HistoryRecord{
		AreaM2:       input.AreaM2,
		SystemType:   string(input.SystemType),
		Crop:         input.Crop,
		CountryCode:  result.CountryCode,
		CurrencyCode: result.CurrencyCode,
		AnnualYield:  result.AnnualYieldKg,
		AnnualProfit: result.AnnualProfit,
		SolarSavings: result.SolarSavings,
		CreatedAt:    now.UTC(),
	}
}
