package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"greencalc/internal/domain/models"
	"greencalc/internal/repository"
	sheetsrepo "greencalc/internal/repository/sheets"
	"greencalc/pkg/mathutil"
)

const (
	dateLayout       = "2006-01-02"
	exportRange      = "History!A:G"
	exportBatchLimit = 500
)

// Summary aggregates the calculation history captured in one export window.
type Summary struct {
	Since          time.Time
	Calculations   int
	TotalAreaM2    float64
	TotalYieldKg   float64
	TotalProfit    float64
	TotalSolarSave float64
}

// Service exports periodic calculation-history summaries to a spreadsheet.
type Service struct {
	history repository.HistoryRepository
	sheets  sheetsrepo.Repository
	logger  *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(history repository.HistoryRepository, sheets sheetsrepo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{history: history, sheets: sheets, logger: logger}
}

// Summarize aggregates the records created since the given time.
func (s *Service) Summarize(ctx context.Context, since time.Time) (Summary, error) {
	records, err := s.history.List(ctx, exportBatchLimit)
	if err != nil {
		return Summary{}, fmt.Errorf("load history: %w", err)
	}

	summary := Summary{Since: since}
	for _, record := range records {
		if record.CreatedAt.Before(since) {
			continue
		}
		summary.Calculations++
		summary.TotalAreaM2 += record.AreaM2
		summary.TotalYieldKg += record.AnnualYield
		summary.TotalProfit += record.AnnualProfit
		summary.TotalSolarSave += record.SolarSavings
	}
	return summary, nil
}

// Export appends a one-row summary of the past week to the export sheet.
func (s *Service) Export(ctx context.Context, now time.Time) error {
	since := now.AddDate(0, 0, -7)

	summary, err := s.Summarize(ctx, since)
	if err != nil {
		return err
	}

	row := summaryRow(summary, now)
	if err := s.sheets.AppendRow(ctx, exportRange, row); err != nil {
		return fmt.Errorf("export history summary: %w", err)
	}

	s.logger.Info("history summary exported",
		zap.Int("calculations", summary.Calculations),
		zap.String("since", since.Format(dateLayout)))
	return nil
}

func summaryRow(summary Summary, now time.Time) []interface{} {
	return []interface{}{
		now.Format(dateLayout),
		summary.Since.Format(dateLayout),
		summary.Calculations,
		mathutil.Round2(summary.TotalAreaM2),
		mathutil.Round2(summary.TotalYieldKg),
		mathutil.Round2(summary.TotalProfit),
		mathutil.Round2(summary.TotalSolarSave),
	}
}

// RecentRecords returns the latest history entries, capped at the export
// batch size, for ad hoc inspection.
func (s *Service) RecentRecords(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	if limit <= 0 || limit > exportBatchLimit {
		limit = exportBatchLimit
	}
	return s.history.List(ctx, limit)
}
