package model

import (
	"time"

	"github.com/google/uuid"
)

type AuditEntityType string

const (
	AuditEntityRFQ  AuditEntityType = "RFQ"
	AuditEntityBid  AuditEntityType = "Bid"
	AuditEntityUser AuditEntityType = "User"
)

const (
	AuditRFQCreated       = "rfq_created"
	AuditRFQStatusChanged = "rfq_status_changed"
	AuditBidSubmitted     = "bid_submitted"
	AuditBidAccepted      = "bid_accepted"
	AuditBidRejected      = "bid_rejected"
)

type AuditEntry struct {
	ID         uuid.UUID         `json:"id" gorm:"primaryKey"`
	EntityType AuditEntityType   `json:"entityType"`
	EntityID   uuid.UUID         `json:"entityId"`
	EventType  string            `json:"eventType"`
	UserID     *uuid.UUID        `json:"userId,omitempty"`
	Details    map[string]string `json:"details" gorm:"serializer:json"`
	CreatedAt  time.Time         `json:"createdAt"`
}

func (AuditEntry) TableName() string { return "audit_log" }
