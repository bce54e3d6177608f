package cart

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrNotFound = errors.New("cart not found")
	// ErrInvalidCartID marks an id that can never name a cart.
	ErrInvalidCartID = errors.New("invalid cart id")
)

// Item describes a product along with its quantity in the cart.
type Item struct {
	ProductID    int     `json:"productID"`
	ProductName  string  `json:"productName"`
	ProductPrice int     `json:"productPrice"`
	ProductImg   *string `json:"productImg,omitempty"`
	Subcategory  *string `json:"subcategory,omitempty"`
	Quantity     int     `json:"quantity"`
}

// LineView is the projection of a cart line used to derive subcategories.
// SubcategoryLabel is the raw display name and may be empty.
type LineView struct {
	ProductID        int
	SubcategoryLabel string
}

// Owner holds a cart. Carts live on the user row, so the cart id is the user id.
type Owner struct {
	ID        int
	Cart      map[int]int
	UpdatedAt string
}

// ParseCartID validates a cart id taken from a path or claim.
func ParseCartID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, ErrInvalidCartID
	}
	return id, nil
}
