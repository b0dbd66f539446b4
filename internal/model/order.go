package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentFailed   PaymentStatus = "Failed"
	PaymentRefunded PaymentStatus = "Refunded"
)

// OrderItem snapshots the product at purchase time so later product edits
// do not rewrite order history.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	FarmerID  uuid.UUID `json:"farmerId"`
	Title     string    `json:"title"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
}

func (OrderItem) TableName() string { return "order_items" }

type Order struct {
	ID              uuid.UUID     `json:"id" gorm:"primaryKey"`
	UserID          uuid.UUID     `json:"userId"`
	ShippingAddress Address       `json:"shippingAddress" gorm:"embedded;embeddedPrefix:ship_"`
	PaymentMethod   string        `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	TotalPrice      float64       `json:"totalPrice"`
	OrderStatus     OrderStatus   `json:"orderStatus"`
	DeliveredAt     *time.Time    `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`

	Items []OrderItem `json:"orderItems" gorm:"-"`
}

func (Order) TableName() string { return "orders" }
