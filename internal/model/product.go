package model

import (
	"time"

	"github.com/google/uuid"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

var ProductCategories = []string{
	"vegetables", "fruits", "grains", "spices", "herbs", "flowers", "other",
}

var ProductUnits = []string{
	"kg", "g", "lb", "ton", "piece", "dozen", "bunch", "bag", "box", "quintal",
}

var ProductGrades = []string{
	"premium", "grade-a", "grade-b", "standard", "commercial",
}

type Product struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey"`
	FarmerID    uuid.UUID `json:"farmerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory"`
	Origin      string    `json:"origin"`

	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Discount float64 `json:"discount"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	MOQ      float64 `json:"moq"`

	HarvestDate time.Time `json:"harvestDate"`
	ShelfLife   string    `json:"shelfLife"`
	Grade       string    `json:"grade"`
	Packaging   string    `json:"packaging"`
	SKU         string    `json:"sku"`
	Images      []string  `json:"images" gorm:"serializer:json"`

	Status    ProductStatus `json:"status"`
	Published bool          `json:"published"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Farmer *UserSummary `json:"farmer,omitempty" gorm:"-"`
}

func (Product) TableName() string { return "products" }
