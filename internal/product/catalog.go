package product

const (
	imgWheat  = "https://images.unsplash.com/photo-1574323347407-f5e1ad6d020b?auto=format&fit=crop&w=400&q=80"
	imgUrea   = "https://images.unsplash.com/photo-1628352081506-83c43123ed6d?auto=format&fit=crop&w=400&q=80"
	imgPotato = "https://images.unsplash.com/photo-1518977676601-b53f82aba655?auto=format&fit=crop&w=400&q=80"
)

// Catalog is the read-only marketplace listing. Filtering for a role is
// left to callers.
type Catalog interface {
	List() []Product
	Get(id string) (Product, bool)
	ByCategory(c Category) []Product
}

type catalog struct {
	products []Product
}

// NewCatalog freezes a copy of products.
func NewCatalog(products []Product) Catalog {
	cp := make([]Product, len(products))
	copy(cp, products)
	return &catalog{products: cp}
}

// DefaultProducts is the bundled marketplace listing.
func DefaultProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Premium Wheat Seeds", Category: CategoryInput, Price: 500, Unit: "kg", Quantity: 100, SellerID: "s1", Image: imgWheat},
		{ID: "p2", Name: "Nano Urea Fertilizer", Category: CategoryInput, Price: 1200, Unit: "bottle", Quantity: 50, SellerID: "s2", Image: imgUrea},
		{ID: "p3", Name: "Fresh Potatoes", Category: CategoryCrop, Price: 25, Unit: "kg", Quantity: 500, SellerID: "f1", Image: imgPotato},
		{ID: "p4", Name: "Organic Red Tomatoes", Category: CategoryCrop, Price: 40, Unit: "kg", Quantity: 300, SellerID: "f1", Image: imgPotato},
	}
}

func (c *catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *catalog) Get(id string) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (c *catalog) ByCategory(cat Category) []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}
