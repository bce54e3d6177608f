package cart

import "time"

// Service orchestrates cart operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) AddToCart(userID int, productID int, qty int) ([]Item, error) {
	if userID <= 0 || productID <= 0 {
		return nil, ErrNotFound
	}
	// zero qty does nothing, but we still call repo to get current cart
	if qty == 0 {
		return s.repo.GetCart(userID)
	}
	return s.repo.AddToCart(userID, productID, qty, s.stamp())
}

func (s *Service) GetCart(userID int) ([]Item, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.GetCart(userID)
}

// ClearCart empties a user's cart.
func (s *Service) ClearCart(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.ClearCart(userID, s.stamp())
}

func (s *Service) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
