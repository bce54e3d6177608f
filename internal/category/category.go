package category

// Key is a normalized subcategory token, e.g. "dieu_hoa" for "Điều hòa".
// Two labels that only differ in case, accents or spacing share the same Key.
type Key string

// CategoryItem is the public DTO returned by the category API.
// JSON tags follow the camelCase convention used elsewhere in the project.
// Subcategories carry the id of their parent category.
type CategoryItem struct {
	CategoryID       int     `json:"categoryID"`
	CategoryName     string  `json:"categoryName"`
	CategoryNameTH   *string `json:"categoryNameTH,omitempty"`
	CategoryImg      *string `json:"categoryImg,omitempty"`
	ParentCategoryID *int    `json:"parentCategoryID,omitempty"`
}

// IsSubcategory reports whether the item hangs below a parent category.
func (c CategoryItem) IsSubcategory() bool {
	return c.ParentCategoryID != nil
}
