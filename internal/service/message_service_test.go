package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/farmkart/farmkart-api/internal/model"
)

type fakeMessageStore struct {
	conversations map[uuid.UUID]*model.Conversation
	messages      []model.Message
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{conversations: map[uuid.UUID]*model.Conversation{}}
}

func (f *fakeMessageStore) FindOrCreateConversation(_ context.Context, a, b uuid.UUID) (*model.Conversation, error) {
	for _, conversation := range f.conversations {
		if conversation.HasParticipant(a) && conversation.HasParticipant(b) {
			copied := *conversation
			return &copied, nil
		}
	}
	conversation := &model.Conversation{ID: uuid.New(), ParticipantA: a, ParticipantB: b}
	f.conversations[conversation.ID] = conversation
	copied := *conversation
	return &copied, nil
}

func (f *fakeMessageStore) GetConversation(_ context.Context, id uuid.UUID) (*model.Conversation, error) {
	conversation, ok := f.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *conversation
	return &copied, nil
}

func (f *fakeMessageStore) ListConversations(_ context.Context, userID uuid.UUID) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, conversation := range f.conversations {
		if conversation.HasParticipant(userID) {
			out = append(out, *conversation)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) CreateMessage(_ context.Context, message *model.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageStore) ListMessages(_ context.Context, conversationID uuid.UUID) ([]model.Message, error) {
	var out []model.Message
	for _, message := range f.messages {
		if message.ConversationID == conversationID {
			out = append(out, message)
		}
	}
	return out, nil
}

func newMessageTestService() (*MessageService, *fakeMessageStore, *fakeSummaryStore) {
	store := newFakeMessageStore()
	users := newFakeSummaryStore()
	return NewMessageService(store, users), store, users
}

func TestSendMessageReusesConversation(t *testing.T) {
	svc, store, users := newMessageTestService()
	sender := model.Principal{ID: uuid.New(), Role: model.RoleBusiness}
	recipient := uuid.New()
	users.summaries[recipient] = model.UserSummary{ID: recipient, FullName: "Ravi"}

	first, err := svc.Send(context.Background(), SendMessageInput{
		RecipientID: recipient,
		Body:        "Hello",
		Principal:   sender,
	})
	require.NoError(t, err)

	second, err := svc.Send(context.Background(), SendMessageInput{
		RecipientID: recipient,
		Body:        "Are the mangoes still available?",
		Principal:   sender,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ConversationID, second.ConversationID)
	assert.Len(t, store.conversations, 1)
}

func TestSendMessageValidation(t *testing.T) {
	svc, _, users := newMessageTestService()
	sender := model.Principal{ID: uuid.New(), Role: model.RoleFarmer}
	recipient := uuid.New()
	users.summaries[recipient] = model.UserSummary{ID: recipient}

	_, err := svc.Send(context.Background(), SendMessageInput{
		RecipientID: recipient,
		Body:        "   ",
		Principal:   sender,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Send(context.Background(), SendMessageInput{
		RecipientID: sender.ID,
		Body:        "note to self",
		Principal:   sender,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Send(context.Background(), SendMessageInput{
		RecipientID: uuid.New(),
		Body:        "hello stranger",
		Principal:   sender,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListMessagesParticipantOnly(t *testing.T) {
	svc, _, users := newMessageTestService()
	sender := model.Principal{ID: uuid.New(), Role: model.RoleBusiness}
	recipientID := uuid.New()
	users.summaries[recipientID] = model.UserSummary{ID: recipientID}

	message, err := svc.Send(context.Background(), SendMessageInput{
		RecipientID: recipientID,
		Body:        "Hello",
		Principal:   sender,
	})
	require.NoError(t, err)

	messages, err := svc.ListMessages(context.Background(), message.ConversationID, sender)
	require.NoError(t, err)
	assert.Len(t, messages, 1)

	recipient := model.Principal{ID: recipientID, Role: model.RoleFarmer}
	_, err = svc.ListMessages(context.Background(), message.ConversationID, recipient)
	assert.NoError(t, err)

	outsider := model.Principal{ID: uuid.New(), Role: model.RoleCustomer}
	_, err = svc.ListMessages(context.Background(), message.ConversationID, outsider)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}
