package product

// Product represents a product in the system and maps to the `public.product` table.
// JSON tags follow the camelCase convention used elsewhere in the project.
type Product struct {
	ID            int     `json:"productId"`
	Name          string  `json:"productName"`
	NameEn        *string `json:"productNameEn,omitempty"`
	Price         int     `json:"productPrice"`
	Score         int     `json:"score"`
	Description   string  `json:"productDesc"`
	SubcategoryID *int    `json:"subcategoryId,omitempty"`
	Subcategory   *string `json:"subcategory,omitempty"`
	Pic           *string `json:"productPic,omitempty"`
	PicSecond     *string `json:"productPicSecond,omitempty"`
	CreatedAt     *string `json:"createdAt,omitempty"`
	UpdatedAt     *string `json:"updatedAt,omitempty"`
}

// Candidate is the display projection handed out by the recommendation API.
type Candidate struct {
	ID          int      `json:"productId"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Images      []string `json:"images"`
	Subcategory string   `json:"subcategory,omitempty"`
}

// Candidate projects p for display.
func (p Product) Candidate() Candidate {
	c := Candidate{ID: p.ID, Name: p.Name, Price: p.Price, Images: make([]string, 0, 2)}
	if p.Pic != nil && *p.Pic != "" {
		c.Images = append(c.Images, *p.Pic)
	}
	if p.PicSecond != nil && *p.PicSecond != "" {
		c.Images = append(c.Images, *p.PicSecond)
	}
	if p.Subcategory != nil {
		c.Subcategory = *p.Subcategory
	}
	return c
}
