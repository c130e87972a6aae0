package repository

import (
	"context"

	"parley/internal/domain/entity"
)

// Attended pairs a conversation with the caller's unread-message count,
// as produced by the store's aggregate query.
type Attended struct {
	Conversation *entity.Conversation
	UnreadCount  int
}

type ConversationStore interface {
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)

	// Save commits the aggregate head plus any newly appended messages in
	// a single atomic write. Every mutating operation calls this exactly
	// once, after all validation.
	Save(ctx context.Context, conversation *entity.Conversation, appended []*entity.Message) error

	// FindDialogue returns the dialogue between the two participants, or
	// a NOT_FOUND error if none exists.
	FindDialogue(ctx context.Context, participantA, participantB string) (*entity.Conversation, error)

	FindAttended(ctx context.Context, participantID string, limit, offset int) ([]Attended, int64, error)
	CountUpdated(ctx context.Context, participantID string) (int, error)

	GetMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	GetMessagesByIDs(ctx context.Context, ids []string) ([]*entity.Message, error)
}
