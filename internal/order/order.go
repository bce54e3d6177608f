package order

import "time"

// Order represents a purchase made by a user. Cart maps product ids to units.
type Order struct {
	OrderID    int            `json:"orderID"`
	Cart       map[string]int `json:"cart"`
	Quantity   int            `json:"quantity"`
	GrandPrice float64        `json:"grandPrice"`
	Status     string         `json:"status"`
	CreatedAt  string         `json:"createdAt"`
}

// StatusCancelled orders never count as sales.
const StatusCancelled = "cancelled"

// Sale is the number of units of one product sold in a window.
type Sale struct {
	ProductID int
	Units     int
}

func (o Order) placedAt() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, o.CreatedAt)
	return t, err == nil
}
