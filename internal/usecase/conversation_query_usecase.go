package usecase

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"parley/internal/domain/entity"
	"parley/internal/domain/repository"
	"parley/pkg/errors"
)

// ConversationQueryUseCase serves display projections: paged threads,
// attended-conversation summaries and update counts. It never mutates.
type ConversationQueryUseCase struct {
	store     repository.ConversationStore
	directory repository.ParticipantDirectory
	localizer *SystemMessageLocalizer
}

func NewConversationQueryUseCase(store repository.ConversationStore, directory repository.ParticipantDirectory, localizer *SystemMessageLocalizer) *ConversationQueryUseCase {
	return &ConversationQueryUseCase{
		store:     store,
		directory: directory,
		localizer: localizer,
	}
}

// GetConversation returns the conversation plus one page of its messages.
// Pages are taken newest-first, then reversed so each page reads in
// chronological order.
func (uc *ConversationQueryUseCase) GetConversation(ctx context.Context, caller Caller, id string, limit, offset int) (*ConversationView, int64, error) {
	conversation, err := uc.store.GetByID(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if !conversation.HasParticipant(caller.ParticipantID) {
		return nil, 0, errors.Forbidden("caller is not a participant of this conversation", nil)
	}

	messages, total, err := uc.store.GetMessages(ctx, id, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]MessageView, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		message := uc.localizer.TranslateMessageIfSystem(messages[i], caller.Locale)
		views = append(views, MessageView{
			Message: message,
			Unread:  conversation.UnreadFor(caller.ParticipantID, message.CreatedAt),
		})
	}

	return &ConversationView{Conversation: conversation, Messages: views}, total, nil
}

func (uc *ConversationQueryUseCase) GetConversationsAttended(ctx context.Context, caller Caller, limit, offset int) ([]ConversationSummary, int64, error) {
	attended, total, err := uc.store.FindAttended(ctx, caller.ParticipantID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ConversationSummary, 0, len(attended))
	for _, item := range attended {
		conversation := item.Conversation

		summary := ConversationSummary{
			ID:          conversation.ID,
			Name:        conversation.Name,
			Type:        conversation.Type,
			Conversant:  conversantLabel(conversation, caller.ParticipantID),
			UnreadCount: item.UnreadCount,
		}

		if last := uc.localizer.TranslateLastMessage(conversation.LastMessage, caller.Locale); last != nil {
			summary.LastMessage = &LastMessageView{
				Text:       last.Text,
				AuthorName: last.AuthorName,
				CreatedAt:  last.CreatedAt,
				IsSystem:   last.IsSystem,
				Unread:     conversation.UnreadFor(caller.ParticipantID, last.CreatedAt),
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, total, nil
}

// CountUpdated reports how many of the caller's conversations hold unseen
// updates. The aggregate query belongs to the store; this only resolves
// the caller.
func (uc *ConversationQueryUseCase) CountUpdated(ctx context.Context, caller Caller) (int, error) {
	if _, err := uc.directory.GetByID(ctx, caller.ParticipantID); err != nil {
		return 0, err
	}
	return uc.store.CountUpdated(ctx, caller.ParticipantID)
}

func conversantLabel(conversation *entity.Conversation, participantID string) string {
	names := lo.FilterMap(conversation.Participants, func(p entity.Participant, _ int) (string, bool) {
		return p.DisplayName, p.ID != participantID
	})
	return strings.Join(names, ", ")
}
