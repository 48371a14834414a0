package domain

// Product is the persisted catalog entity. Availability is derived from
// quantity by the store on every write; a client-supplied value never wins.
type Product struct {
	ID                string   `db:"id" json:"id"`
	Name              string   `db:"name" json:"name"`
	Category          string   `db:"category" json:"category"`
	Description       string   `db:"description" json:"description,omitempty"`
	Price             float64  `db:"price" json:"price"`
	Quantity          int      `db:"quantity" json:"quantity"`
	Availability      bool     `db:"availability" json:"availability"`
	ImageURL          string   `db:"image_url" json:"imageUrl"`
	FeaturesJSON      string   `db:"features_json" json:"-"`
	Features          []string `db:"-" json:"features,omitempty"`
	EstimatedDelivery string   `db:"estimated_delivery" json:"estimatedDelivery,omitempty"`
	CreatedAt         string   `db:"created_at" json:"createdAt"`
	UpdatedAt         string   `db:"updated_at" json:"updatedAt"`
}

// ProductInput carries the full field set for a create. Availability is
// accepted for wire compatibility and ignored by the store.
type ProductInput struct {
	Name              string   `json:"name" form:"name"`
	Category          string   `json:"category" form:"category"`
	Description       string   `json:"description" form:"description"`
	Price             float64  `json:"price" form:"price"`
	Quantity          int      `json:"quantity" form:"quantity"`
	Availability      bool     `json:"availability" form:"availability"`
	ImageURL          string   `json:"imageUrl" form:"image_url"`
	Features          []string `json:"features"`
	EstimatedDelivery string   `json:"estimatedDelivery" form:"estimated_delivery"`
}

// ProductPatch is a partial update. Empty text fields and nil numbers mean
// "no change", never "clear"; a nil Features slice keeps the stored list.
type ProductPatch struct {
	Name              string   `json:"name" form:"name"`
	Category          string   `json:"category" form:"category"`
	Description       string   `json:"description" form:"description"`
	Price             *float64 `json:"price" form:"price"`
	Quantity          *int     `json:"quantity" form:"quantity"`
	Availability      *bool    `json:"availability" form:"availability"`
	ImageURL          string   `json:"imageUrl" form:"image_url"`
	Features          []string `json:"features"`
	EstimatedDelivery string   `json:"estimatedDelivery" form:"estimated_delivery"`
}

// StockItem is the stock-page projection of a Product. DeliveryTier is
// computed at display time and never persisted.
type StockItem struct {
	Product
	DeliveryTier string `json:"deliveryTier"`
}
