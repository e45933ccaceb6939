package countries

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"greencalc/internal/domain/models"
)

// Fetcher retrieves the full country list from a remote directory.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.Country, error)
}

// fallbackCountries keeps the calculator usable when the remote directory has
// never been reachable.
var fallbackCountries = []models.Country{models.DefaultCountry}

// Directory holds an immutable snapshot of country records. Refresh swaps the
// whole snapshot atomically; readers never observe a partial update, so Find
// and List are safe from concurrent request handlers.
type Directory struct {
	fetcher  Fetcher
	logger   *zap.Logger
	snapshot atomic.Pointer[[]models.Country]
}

// NewDirectory creates a directory seeded with the static fallback list.
func NewDirectory(fetcher Fetcher, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Directory{fetcher: fetcher, logger: logger}
	seed := fallbackCountries
	d.snapshot.Store(&seed)
	return d
}

// Refresh fetches the country list and swaps it in. On failure the previous
// snapshot stays in place and the error is returned for the caller to log.
func (d *Directory) Refresh(ctx context.Context) error {
	fetched, err := d.fetcher.FetchAll(ctx)
	if err != nil {
		return fmt.Errorf("refresh country directory: %w", err)
	}
	if len(fetched) == 0 {
		return fmt.Errorf("refresh country directory: empty response")
	}

	d.snapshot.Store(&fetched)
	d.logger.Info("country directory refreshed", zap.Int("countries", len(fetched)))
	return nil
}

// List returns a copy of the current snapshot, sorted by display name.
func (d *Directory) List() []models.Country {
	current := *d.snapshot.Load()
	out := make([]models.Country, len(current))
	copy(out, current)
	return out
}

// Find resolves a country by its code, returning nil when unknown. The
// calculator treats nil as "use the default reference country".
func (d *Directory) Find(code string) *models.Country {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}

	for _, country := range *d.snapshot.Load() {
		if country.Code == code {
			found := country
			return &found
		}
	}
	return nil
}

// Len reports the number of countries in the current snapshot.
func (d *Directory) Len() int {
	return len(*d.snapshot.Load())
}
