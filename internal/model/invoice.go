package model

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "Paid"
	InvoicePending InvoiceStatus = "Pending"
	InvoiceOverdue InvoiceStatus = "Overdue"
)

type Invoice struct {
	ID            uuid.UUID     `json:"id" gorm:"primaryKey"`
	InvoiceNumber string        `json:"invoiceId"`
	UserID        uuid.UUID     `json:"userId"`
	FarmerID      uuid.UUID     `json:"farmerId"`
	OrderID       uuid.UUID     `json:"orderId"`
	Amount        float64       `json:"amount"`
	Status        InvoiceStatus `json:"status"`
	DueDate       time.Time     `json:"dueDate"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`

	Farmer *UserSummary `json:"farmer,omitempty" gorm:"-"`
	Buyer  *UserSummary `json:"buyer,omitempty" gorm:"-"`
	Order  *Order       `json:"order,omitempty" gorm:"-"`
}

func (Invoice) TableName() string { return "invoices" }
