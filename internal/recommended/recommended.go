package recommended

import "github.com/wichananm65/online-supermarket/internal/product"

// RecommendedItem is the public DTO returned by the score-ranked list.
type RecommendedItem struct {
	ProductID     int     `json:"productID"`
	ProductImg    *string `json:"productImg,omitempty"`
	ProductName   *string `json:"productName,omitempty"`   // English or primary name
	ProductNameTH *string `json:"productNameTH,omitempty"` // Thai / localized name
	ProductPrice  *int    `json:"productPrice,omitempty"`
	Score         *int    `json:"score,omitempty"`
}

const (
	MsgRetrieved = "recommended products retrieved"
	MsgNotFound  = "no products found"
	MsgError     = "error retrieving recommended products"
)

// Result is the outcome of one basket recommendation. Success is false when
// nothing could be recommended; that is not an error.
type Result struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Products []product.Candidate `json:"products"`
}
