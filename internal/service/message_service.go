package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type MessageStore interface {
	FindOrCreateConversation(ctx context.Context, a, b uuid.UUID) (*model.Conversation, error)
	GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error)
	CreateMessage(ctx context.Context, message *model.Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]model.Message, error)
}

type MessageService struct {
	messages MessageStore
	users    SummaryStore
}

func NewMessageService(messages MessageStore, users SummaryStore) *MessageService {
	return &MessageService{messages: messages, users: users}
}

type SendMessageInput struct {
	RecipientID uuid.UUID
	Body        string
	Principal   model.Principal
}

// Send delivers a message to the recipient, creating the conversation on
// first contact.
func (s *MessageService) Send(ctx context.Context, input SendMessageInput) (*model.Message, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", ErrInvalidInput)
	}
	if input.RecipientID == uuid.Nil || input.RecipientID == input.Principal.ID {
		return nil, fmt.Errorf("%w: invalid recipient", ErrInvalidInput)
	}

	recipients, err := s.users.SummariesByIDs(ctx, []uuid.UUID{input.RecipientID})
	if err != nil {
		return nil, err
	}
	if _, ok := recipients[input.RecipientID]; !ok {
		return nil, fmt.Errorf("%w: recipient", ErrNotFound)
	}

	conversation, err := s.messages.FindOrCreateConversation(ctx, input.Principal.ID, input.RecipientID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		ConversationID: conversation.ID,
		SenderID:       input.Principal.ID,
		RecipientID:    input.RecipientID,
		Body:           body,
	}
	if err := s.messages.CreateMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *MessageService) ListConversations(ctx context.Context, principal model.Principal) ([]model.Conversation, error) {
	conversations, err := s.messages.ListConversations(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(conversations)*2)
	for _, conversation := range conversations {
		ids = append(ids, conversation.ParticipantA, conversation.ParticipantB)
	}
	summaries, err := s.users.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range conversations {
		for _, id := range []uuid.UUID{conversations[i].ParticipantA, conversations[i].ParticipantB} {
			if summary, ok := summaries[id]; ok {
				conversations[i].Participants = append(conversations[i].Participants, summary)
			}
		}
	}
	return conversations, nil
}

func (s *MessageService) ListMessages(ctx context.Context, conversationID uuid.UUID, principal model.Principal) ([]model.Message, error) {
	conversation, err := s.messages.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: conversation", ErrNotFound)
		}
		return nil, err
	}
	if !conversation.HasParticipant(principal.ID) {
		return nil, ErrPermissionDenied
	}
	return s.messages.ListMessages(ctx, conversationID)
}
