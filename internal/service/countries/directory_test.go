package countries

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greencalc/internal/domain/models"
)

type stubFetcher struct {
	countries []models.Country
	err       error
}

func (s *stubFetcher) FetchAll(context.Context) ([]models.Country, error) {
	return s.countries, s.err
}

func sampleCountries() []models.Country {
	return []models.Country{
		{Code: "FR", Name: "France", CurrencyCode: "EUR", CurrencySymbol: "€"},
		{Code: "SN", Name: "Senegal", CurrencyCode: "XOF", CurrencySymbol: "CFA"},
	}
}

func TestDirectoryStartsWithFallback(t *testing.T) {
	d := NewDirectory(&stubFetcher{}, nil)

	require.Equal(t, 1, d.Len())
	found := d.Find("US")
	require.NotNil(t, found)
	assert.Equal(t, "USD", found.CurrencyCode)
}

func TestDirectoryRefreshSwapsSnapshot(t *testing.T) {
	fetcher := &stubFetcher{countries: sampleCountries()}
	d := NewDirectory(fetcher, nil)

	require.NoError(t, d.Refresh(context.Background()))
	assert.Equal(t, 2, d.Len())

	assert.Nil(t, d.Find("US"))
	require.NotNil(t, d.Find("SN"))
	assert.Equal(t, "XOF", d.Find("SN").CurrencyCode)
}

func TestDirectoryRefreshFailureKeepsPrevious(t *testing.T) {
	fetcher := &stubFetcher{countries: sampleCountries()}
	d := NewDirectory(fetcher, nil)
	require.NoError(t, d.Refresh(context.Background()))

	fetcher.countries = nil
	fetcher.err = errors.New("network down")
	require.Error(t, d.Refresh(context.Background()))

	assert.Equal(t, 2, d.Len())
	assert.NotNil(t, d.Find("FR"))
}

func TestDirectoryRejectsEmptyFetch(t *testing.T) {
	fetcher := &stubFetcher{countries: []models.Country{}}
	d := NewDirectory(fetcher, nil)

	require.Error(t, d.Refresh(context.Background()))
	assert.Equal(t, 1, d.Len())
}

func TestDirectoryFind(t *testing.T) {
	d := NewDirectory(&stubFetcher{countries: sampleCountries()}, nil)
	require.NoError(t, d.Refresh(context.Background()))

	assert.NotNil(t, d.Find("fr"))
	assert.NotNil(t, d.Find(" FR "))
	assert.Nil(t, d.Find(""))
	assert.Nil(t, d.Find("ZZ"))

	// The returned record is a copy; mutating it must not leak into the
	// snapshot.
	found := d.Find("FR")
	found.CurrencyCode = "MUTATED"
	assert.Equal(t, "EUR", d.Find("FR").CurrencyCode)
}

func TestDirectoryListReturnsCopy(t *testing.T) {
	d := NewDirectory(&stubFetcher{countries: sampleCountries()}, nil)
	require.NoError(t, d.Refresh(context.Background()))

	list := d.List()
	require.Len(t, list, 2)
	list[0].Name = "Mutated"

	assert.Equal(t, "France", d.List()[0].Name)
}
