package product

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []Product {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListByCategoryID(catID int) []Product {
	return s.repo.ListByCategoryID(catID)
}

// ScorePopularity ranks the whole catalog by its stored score.
type ScorePopularity struct {
	catalog Catalog
}

func NewScorePopularity(c Catalog) *ScorePopularity {
	return &ScorePopularity{catalog: c}
}

func (p *ScorePopularity) Popular(ctx context.Context, exclude []int, limit int) ([]Candidate, error) {
	return p.catalog.ListPopular(ctx, exclude, limit)
}
