package model

import (
	"time"

	"github.com/google/uuid"
)

type BidStatus string

const (
	BidStatusSubmitted BidStatus = "submitted"
	BidStatusAccepted  BidStatus = "accepted"
	BidStatusRejected  BidStatus = "rejected"
)

type DeliveryWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Bid struct {
	ID              uuid.UUID      `json:"id" gorm:"primaryKey"`
	BidNumber       string         `json:"bidId"`
	RFQID           uuid.UUID      `json:"rfqId"`
	FarmerID        uuid.UUID      `json:"farmerId"`
	PricePerUnit    float64        `json:"pricePerUnit"`
	DeliveryWindow  DeliveryWindow `json:"deliveryWindow" gorm:"embedded;embeddedPrefix:window_"`
	TransportMethod string         `json:"transportMethod"`
	Remarks         string         `json:"remarks"`
	Score           float64        `json:"score"`
	Status          BidStatus      `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`

	Farmer *UserSummary `json:"farmer,omitempty" gorm:"-"`
	RFQ    *RFQ         `json:"rfq,omitempty" gorm:"-"`
}

func (Bid) TableName() string { return "bids" }
