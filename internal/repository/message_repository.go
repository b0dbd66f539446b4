package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// FindOrCreateConversation returns the conversation between the two users,
// creating it if none exists. Participants are stored in a stable order so
// the pair maps to exactly one row.
func (r *MessageRepository) FindOrCreateConversation(ctx context.Context, a, b uuid.UUID) (*model.Conversation, error) {
	first, second := a, b
	if second.String() < first.String() {
		first, second = second, first
	}

	var conversation model.Conversation
	err := r.db.WithContext(ctx).
		First(&conversation, "participant_a = ? AND participant_b = ?", first, second).Error
	if err == nil {
		return &conversation, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	conversation = model.Conversation{
		ID:           uuid.New(),
		ParticipantA: first,
		ParticipantB: second,
	}
	if err := r.db.WithContext(ctx).Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *MessageRepository) GetConversation(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *MessageRepository) ListConversations(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := r.db.WithContext(ctx).
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}

func (r *MessageRepository) CreateMessage(ctx context.Context, message *model.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Exec(`
			UPDATE conversations SET updated_at = NOW() WHERE id = ?
		`, message.ConversationID).Error
	})
}

func (r *MessageRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
