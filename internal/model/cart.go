package model

import (
	"time"

	"github.com/google/uuid"
)

type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  float64   `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Product *Product `json:"product,omitempty" gorm:"-"`
}

func (CartItem) TableName() string { return "cart_items" }

type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		if item.Product != nil {
			total += item.Product.Price * item.Quantity
		}
	}
	return total
}
