package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"

	"parley/internal/domain/repository"
	"parley/pkg/errors"
)

// ReadTracker maintains per-participant read watermarks. A message is
// unread for a participant while its creation time is strictly after the
// participant's watermark.
type ReadTracker struct {
	store repository.ConversationStore
}

func NewReadTracker(store repository.ConversationStore) *ReadTracker {
	return &ReadTracker{store: store}
}

// MarkMessagesAsRead stores the maximum creation time among the given
// messages as the caller's watermark. The write is an unconditional
// overwrite of the prior watermark, not a monotonic max against it.
func (t *ReadTracker) MarkMessagesAsRead(ctx context.Context, caller Caller, conversationID string, messageIDs []string) error {
	if len(messageIDs) == 0 {
		return errors.Validation(map[string]string{"messageIds": "at least one message id is required"})
	}

	ids := lo.Uniq(messageIDs)
	messages, err := t.store.GetMessagesByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(messages) != len(ids) {
		return errors.NotFound("Message", nil)
	}

	for _, message := range messages {
		if message.ConversationID != conversationID {
			return errors.Forbidden("messages do not all belong to the given conversation", nil)
		}
	}

	conversation, err := t.store.GetByID(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conversation.HasParticipant(caller.ParticipantID) {
		return errors.Forbidden("caller is not a participant of this conversation", nil)
	}

	watermark := messages[0].CreatedAt
	for _, message := range messages[1:] {
		if message.CreatedAt.After(watermark) {
			watermark = message.CreatedAt
		}
	}

	if conversation.LastReadOn == nil {
		conversation.LastReadOn = make(map[string]time.Time)
	}
	conversation.LastReadOn[caller.ParticipantID] = watermark
	return t.store.Save(ctx, conversation, nil)
}
