// Package repository defines the persistence contracts for calculation
// history. Concrete backends live in the subpackages.
package repository

import (
	"context"

	"greencalc/internal/domain/models"
)

// HistoryRepository is an append-only store of calculation records.
type HistoryRepository interface {
	// Append persists one calculation record.
	Append(ctx context.Context, record models.HistoryRecord) error
	// List returns up to limit records, most recent first. A non-positive
	// limit applies the backend's default.
	List(ctx context.Context, limit int) ([]models.HistoryRecord, error)
}
