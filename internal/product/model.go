package product

type Category string

const (
	CategoryCrop  Category = "CROP"
	CategoryInput Category = "INPUT"
)

func (c Category) Valid() bool {
	return c == CategoryCrop || c == CategoryInput
}

type Product struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   Category `json:"category"`
	Price      float64  `json:"price"`
	Unit       string   `json:"unit"`
	Quantity   int      `json:"quantity"`
	SellerID   string   `json:"sellerId"`
	ExpiryDate string   `json:"expiryDate,omitempty"`
	Image      string   `json:"image"`
}
