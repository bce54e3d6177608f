package category

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("category not found")

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns up to `limit` category items.
func (s *Service) List(limit int) []CategoryItem {
	items, err := s.repo.List(limit)
	if err != nil {
		return []CategoryItem{}
	}
	return items
}

// Subcategories returns the children of parentID.
func (s *Service) Subcategories(parentID int) []CategoryItem {
	items, err := s.repo.ListChildren(parentID)
	if err != nil {
		return []CategoryItem{}
	}
	return items
}

// FindByNames resolves display names to category rows.
func (s *Service) FindByNames(ctx context.Context, names []string) ([]CategoryItem, error) {
	return s.repo.FindByNames(ctx, names)
}
