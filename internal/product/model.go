package product

// Product is a catalog entry as the storefront sees it.
// Category is the category reference: it starts with the id of the
// category or subcategory the product belongs to. Empty means unassigned.
type Product struct {
	ID          string   `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Discount    *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	New         bool     `json:"new"`
}

// OnSale reports whether the product carries a positive discount.
func (p *Product) OnSale() bool {
	return p.Discount != nil && *p.Discount > 0
}
