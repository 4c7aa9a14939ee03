package usecases

import (
	"YT_genre_collector/internal/core/domain"
	"context"
	"fmt"
	"strings"
)

// ResolveCategory maps a free-text genre to the platform category whose
// title matches it, case-insensitively. No match is a configuration
// error and stops the run before any search traffic is issued.
func (uc *collectorUseCase) ResolveCategory(ctx context.Context, genre string) (domain.Category, error) {
	uc.log.Info("Init Resolve Category")

	genre = strings.TrimSpace(genre)
	if genre == "" {
		return domain.Category{}, fmt.Errorf("genre cannot be empty")
	}

	categories, err := uc.service.ListCategories(ctx)
	if err != nil {
		uc.log.Error("Failed to list video categories", err)
		return domain.Category{}, fmt.Errorf("error while listing video categories: %w", err)
	}

	for _, category := range categories {
		if strings.EqualFold(category.Title, genre) {
			uc.log.Info(fmt.Sprintf("Genre %q resolved to category %s", genre, category.ID))
			return category, nil
		}
	}

	return domain.Category{}, fmt.Errorf("unknown genre %q", genre)
}
