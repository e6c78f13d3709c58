// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never driver rows or infrastructure types
//   - Methods represent report queries, not CRUD operations
package ports

import (
	"context"

	"github.com/jsamuelsen/wine-dashboard/internal/domain"
)

// WineRepository is the read-only query layer over the wine dataset.
// Every method is deterministic for a given data store snapshot and
// returns an error, never a partial result, when the store fails.
type WineRepository interface {
	// HighlightedWines returns dated, non-discounted vintages matching the
	// filter thresholds, ordered by ascending price.
	HighlightedWines(ctx context.Context, filter domain.HighlightFilter) ([]domain.HighlightedVintage, error)

	// TasteKeywordWines returns one row per (wine, keyword group) for wines
	// carrying every keyword of the query above its count threshold.
	TasteKeywordWines(ctx context.Context, query domain.TasteKeywordQuery) ([]domain.TasteKeywordRow, error)

	// TopWinesForGrape returns the best rated wines of countries where the
	// grape is among the most used, ordered by rating then rating count.
	TopWinesForGrape(ctx context.Context, grapeID int64, query domain.GrapeRankingQuery) ([]domain.GrapeRanking, error)

	// TopWinesPerGrape concatenates TopWinesForGrape for each grape,
	// preserving grape order.
	TopWinesPerGrape(ctx context.Context, grapeIDs []int64, query domain.GrapeRankingQuery) ([]domain.GrapeRanking, error)
}

// ImageStore resolves the pre-rendered report images.
type ImageStore interface {
	// Resolve returns the image with the given file name.
	// Returns domain.ErrNotFound if the file does not exist.
	Resolve(ctx context.Context, name string) (*domain.Image, error)
}
