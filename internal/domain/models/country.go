package models

// Country holds the country metadata the calculator needs: display name,
// currency and an optional latitude used by the regional economics profile.
type Country struct {
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	CurrencyCode   string   `json:"currency_code"`
	CurrencySymbol string   `json:"currency_symbol"`
	Latitude       *float64 `json:"latitude,omitempty"`
}

// DefaultCountry is the reference country used when a code cannot be
// resolved. Keeping it here means every layer degrades to the same record.
var DefaultCountry = Country{
	Code:           "US",
	Name:           "United States",
	CurrencyCode:   "USD",
	CurrencySymbol: "$",
}
