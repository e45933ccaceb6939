package restcountries

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"greencalc/internal/config"
	"greencalc/internal/domain/models"
)

// Client exposes the country-directory operations used by the application.
type Client interface {
	FetchAll(ctx context.Context) ([]models.Country, error)
}

// APIClient is a resty-backed implementation of Client talking to the REST
// Countries v3.1 API.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a REST Countries client from the provided configuration.
func NewClient(cfg config.CountriesConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// countryPayload mirrors the fields requested from the API.
type countryPayload struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	CCA2       string `json:"cca2"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	LatLng []float64 `json:"latlng"`
}

// FetchAll retrieves every country with its primary currency and latitude,
// sorted by display name.
func (c *APIClient) FetchAll(ctx context.Context) ([]models.Country, error) {
	var payload []countryPayload

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("fields", "name,cca2,currencies,latlng").
		SetResult(&payload).
		Get("/v3.1/all")
	if err != nil {
		return nil, fmt.Errorf("fetch countries: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, fmt.Errorf("rest countries api error: status=%d", resp.StatusCode())
	}

	countries := make([]models.Country, 0, len(payload))
	for _, entry := range payload {
		if entry.CCA2 == "" {
			continue
		}

		country := models.Country{
			Code:           entry.CCA2,
			Name:           entry.Name.Common,
			CurrencyCode:   "USD",
			CurrencySymbol: "$",
		}

		// Map iteration order is random; sort the codes so the chosen
		// primary currency is stable across fetches.
		if len(entry.Currencies) > 0 {
			codes := make([]string, 0, len(entry.Currencies))
			for code := range entry.Currencies {
				codes = append(codes, code)
			}
			sort.Strings(codes)

			primary := codes[0]
			country.CurrencyCode = primary
			country.CurrencySymbol = entry.Currencies[primary].Symbol
			if country.CurrencySymbol == "" {
				country.CurrencySymbol = primary
			}
		}

		if len(entry.LatLng) > 0 {
			lat := entry.LatLng[0]
			country.Latitude = &lat
		}

		countries = append(countries, country)
	}

	sort.Slice(countries, func(i, j int) bool {
		return countries[i].Name < countries[j].Name
	})

	return countries, nil
}
