package category

type Category struct {
	ID            string         `json:"id" validate:"required"`
	Slug          string         `json:"slug" validate:"required"`
	Name          string         `json:"name"`
	Subcategories []*Subcategory `json:"subcategories,omitempty" validate:"dive"`
}

type Subcategory struct {
	ID         string `json:"id" validate:"required"`
	CategoryID string `json:"categoryID,omitempty"`
	Name       string `json:"name"`
}
