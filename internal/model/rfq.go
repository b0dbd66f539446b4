package model

import (
	"time"

	"github.com/google/uuid"
)

type RFQType string

const (
	RFQTypePublic  RFQType = "public"
	RFQTypePrivate RFQType = "private"
)

type RFQStatus string

// Status moves forward only: open is the single non-terminal state.
const (
	RFQStatusOpen      RFQStatus = "open"
	RFQStatusClosed    RFQStatus = "closed"
	RFQStatusAccepted  RFQStatus = "accepted"
	RFQStatusCancelled RFQStatus = "cancelled"
)

type RFQ struct {
	ID               uuid.UUID   `json:"id" gorm:"primaryKey"`
	RFQNumber        string      `json:"rfqId"`
	BuyerID          uuid.UUID   `json:"buyerId"`
	Product          string      `json:"product"`
	Category         string      `json:"category"`
	Quantity         float64     `json:"quantity"`
	Unit             string      `json:"unit"`
	DeliveryDeadline time.Time   `json:"deliveryDeadline"`
	Attachments      []string    `json:"attachments" gorm:"serializer:json"`
	Type             RFQType     `json:"type"`
	InvitedFarmers   []uuid.UUID `json:"invitedFarmers" gorm:"serializer:json"`
	Status           RFQStatus   `json:"status"`
	AdditionalNotes  string      `json:"additionalNotes"`
	Region           string      `json:"region"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`

	Buyer *UserSummary `json:"buyer,omitempty" gorm:"-"`
}

func (RFQ) TableName() string { return "rfqs" }

func (r *RFQ) Open() bool { return r.Status == RFQStatusOpen }

// UserSummary is the slim participant view attached to RFQs, bids and
// conversations instead of the full account record.
type UserSummary struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"fullName"`
	CompanyName string    `json:"companyName,omitempty"`
	FarmName    string    `json:"farmName,omitempty"`
	Rating      float64   `json:"rating,omitempty"`
}
