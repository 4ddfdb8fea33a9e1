package awards

import (
	"context"
	"fmt"
	"strings"

	"entrepreneurawards/pkg/types"
)

func (s *Service) Categories(ctx context.Context) ([]*types.IndustryCategory, error) {
	return s.categories.Categories(ctx)
}

// CreateCategory adds a category unless one with the same name, ignoring
// case, already exists.
func (s *Service) CreateCategory(ctx context.Context, name string) (*types.IndustryCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &types.ValidationError{FieldErrors: map[string]string{"name": "Category name is required."}}
	}

	existing, err := s.categories.CategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing category: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrCategoryExists, existing.Name)
	}

	category := &types.IndustryCategory{Name: name}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.WithField("category_id", category.ID).Info("industry category created")

	return category, nil
}
