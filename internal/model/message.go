package model

import (
	"time"

	"github.com/google/uuid"
)

type Conversation struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey"`
	ParticipantA uuid.UUID `json:"-"`
	ParticipantB uuid.UUID `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Participants []UserSummary `json:"participants" gorm:"-"`
}

func (Conversation) TableName() string { return "conversations" }

func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

type Message struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	RecipientID    uuid.UUID `json:"recipientId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (Message) TableName() string { return "messages" }
