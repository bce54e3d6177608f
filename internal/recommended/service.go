package recommended

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultListLimit is the page size of the score-ranked list.
const DefaultListLimit = 12

// Service serves the score-ranked product list shown without a cart.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, logger: log.With().Str("component", "recommended_list").Logger()}
}

// List returns one page of products ordered by score. limit is clamped to
// 1..MaxLimit and a negative offset starts at zero. A repository failure is
// logged and yields an empty page.
func (s *Service) List(limit int, offset int) []RecommendedItem {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Int("limit", limit).Int("offset", offset).Msg("failed to list recommended products")
		return []RecommendedItem{}
	}
	return items
}
