package product

// Product version tags
const (
	VersionDigital  = "digital"
	VersionPhysical = "physical"
)

// Product represents a catalog product.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency"`
	CategoryID  string   `json:"categoryId"`
	Versions    []string `json:"versions"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
}

// Category represents a product category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
