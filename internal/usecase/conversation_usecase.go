package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"parley/internal/domain/entity"
	"parley/internal/domain/repository"
	"parley/pkg/errors"
	"parley/pkg/logger"
)

// Translation keys for system messages.
const (
	KeyConferenceCreated = "conversation.conference.created"
	KeyAddParticipant    = "conversation.add.participant"
	KeyRemoveParticipant = "conversation.remove.participant"
	KeySelfRemove        = "conversation.selfremove.participant"
	KeyRename            = "conversation.rename"
	KeyDropName          = "conversation.drop.name"
)

// ConversationUseCase is the single entry point for every conversation
// mutation. Each operation loads the aggregate fresh, applies exactly one
// state transition plus its message appends, and persists once.
type ConversationUseCase struct {
	store     repository.ConversationStore
	directory repository.ParticipantDirectory
	factory   *MessageFactory
}

func NewConversationUseCase(store repository.ConversationStore, directory repository.ParticipantDirectory, factory *MessageFactory) *ConversationUseCase {
	return &ConversationUseCase{
		store:     store,
		directory: directory,
		factory:   factory,
	}
}

type CreateConversationInput struct {
	ReceiverIDs []string
	Name        string
	Text        string
}

func (uc *ConversationUseCase) Create(ctx context.Context, caller Caller, input CreateConversationInput) (*ConversationView, error) {
	author, err := uc.directory.GetByID(ctx, caller.ParticipantID)
	if err != nil {
		return nil, err
	}

	receivers, err := uc.directory.GetByIDs(ctx, lo.Uniq(input.ReceiverIDs))
	if err != nil {
		return nil, err
	}

	if len(receivers) == 1 && receivers[0].ID == author.ID {
		return nil, errors.Conflict("cannot start a conversation with yourself")
	}

	// The author listed among the receivers must not defeat the dialogue
	// lookup below: a dialogue is keyed by the pair, however it is spelled.
	receivers = lo.Reject(receivers, func(p *entity.Participant, _ int) bool {
		return p.ID == author.ID
	})

	if len(receivers) == 1 {
		existing, err := uc.store.FindDialogue(ctx, author.ID, receivers[0].ID)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			logger.Error("Create: failed to look up dialogue between %s and %s: %v", author.ID, receivers[0].ID, err)
			return nil, err
		}
		if existing != nil {
			// A dialogue between these two already exists: append there
			// instead of creating a second one.
			message, err := uc.factory.Create(author, receivers, input.Text, false, nil, nil)
			if err != nil {
				return nil, err
			}
			appendMessage(existing, message)
			if err := uc.store.Save(ctx, existing, []*entity.Message{message}); err != nil {
				return nil, err
			}
			return &ConversationView{Conversation: existing}, nil
		}
	}

	message, err := uc.factory.Create(author, receivers, input.Text, false, nil, nil)
	if err != nil {
		return nil, err
	}

	conversation, err := uc.assemble(author, receivers, input.Name, message)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, conversation, []*entity.Message{message}); err != nil {
		return nil, err
	}
	return &ConversationView{Conversation: conversation}, nil
}

func (uc *ConversationUseCase) AddMessage(ctx context.Context, caller Caller, conversationID, text string) (*ConversationView, error) {
	conversation, err := uc.store.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	author, err := uc.directory.GetByID(ctx, caller.ParticipantID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(author.ID) {
		return nil, errors.Forbidden("caller is not a participant of this conversation", nil)
	}

	message, err := uc.factory.Create(author, othersOf(conversation, author.ID), text, false, nil, nil)
	if err != nil {
		return nil, err
	}

	appendMessage(conversation, message)
	if err := uc.store.Save(ctx, conversation, []*entity.Message{message}); err != nil {
		return nil, err
	}
	return &ConversationView{Conversation: conversation}, nil
}

func (uc *ConversationUseCase) AddParticipants(ctx context.Context, caller Caller, conversationID string, subjectIDs []string) (*ConversationView, error) {
	conversation, err := uc.store.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	initiator, err := uc.directory.GetByID(ctx, caller.ParticipantID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(initiator.ID) {
		return nil, errors.Forbidden("caller is not a participant of this conversation", nil)
	}

	subjects, err := uc.directory.GetByIDs(ctx, lo.Uniq(subjectIDs))
	if err != nil {
		return nil, err
	}
	if len(subjects) == 0 {
		return nil, errors.Validation(map[string]string{"participants": "at least one participant is required"})
	}
	for _, subject := range subjects {
		if conversation.HasParticipant(subject.ID) {
			return nil, errors.Conflict(fmt.Sprintf("%s is already a participant", subject.DisplayName))
		}
	}

	if conversation.Type == entity.TypeDialogue {
		return uc.promote(ctx, initiator, conversation, subjects)
	}

	if len(conversation.Participants)+len(subjects) > entity.MaxParticipants {
		return nil, errors.Validation(map[string]string{
			"participants": fmt.Sprintf("a conversation holds at most %d participants", entity.MaxParticipants),
		})
	}

	appended := make([]*entity.Message, 0, len(subjects))
	for _, subject := range subjects {
		conversation.Participants = append(conversation.Participants, *subject)
		message, err := uc.factory.Create(initiator, othersOf(conversation, initiator.ID), KeyAddParticipant, true,
			[]string{initiator.DisplayName, subject.DisplayName}, subject)
		if err != nil {
			return nil, err
		}
		appendMessage(conversation, message)
		appended = append(appended, message)
	}

	if err := uc.store.Save(ctx, conversation, appended); err != nil {
		return nil, err
	}
	return &ConversationView{Conversation: conversation}, nil
}

// promote turns a dialogue into a freshly created conference. The original
// dialogue keeps its id and history and is not modified; future routing
// between the initiator and the new participant set lands on the new
// aggregate.
func (uc *ConversationUseCase) promote(ctx context.Context, initiator *entity.Participant, dialogue *entity.Conversation, subjects []*entity.Participant) (*ConversationView, error) {
	receivers := othersOf(dialogue, initiator.ID)
	receivers = append(receivers, subjects...)

	seed, err := uc.factory.Create(initiator, receivers, KeyConferenceCreated, true, []string{initiator.DisplayName}, nil)
	if err != nil {
		return nil, err
	}

	conference, err := uc.assemble(initiator, receivers, dialogue.Name, seed)
	if err != nil {
		return nil, err
	}

	if err := uc.store.Save(ctx, conference, []*entity.Message{seed}); err != nil {
		return nil, err
	}
	logger.Info("promoted dialogue %s to conference %s", dialogue.ID, conference.ID)
	return &ConversationView{Conversation: conference}, nil
}

func (uc *ConversationUseCase) RemoveParticipant(ctx context.Context, caller Caller, conversationID, subjectID string) (*ConversationView, error) {
	conversation, err := uc.store.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	initiator, err := uc.directory.GetByID(ctx, caller.ParticipantID)
	if err != nil {
		return nil, err
	}

	subject, err := uc.directory.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(subject.ID) {
		return nil, errors.Conflict(fmt.Sprintf("%s is not a participant", subject.DisplayName))
	}

	if len(conversation.Participants) <= entity.MinParticipants {
		return nil, errors.Validation(map[string]string{
			"participants": fmt.Sprintf("a conversation holds at least %d participants", entity.MinParticipants),
		})
	}

	self := subject.ID == initiator.ID
	if !self && conversation.AdminID != initiator.ID {
		return nil, errors.Forbidden("only the admin may remove another participant", nil)
	}

	conversation.Participants = lo.Reject(conversation.Participants, func(p entity.Participant, _ int) bool {
		return p.ID == subject.ID
	})

	var message *entity.Message
	if self {
		message, err = uc.factory.Create(initiator, othersOf(conversation, initiator.ID), KeySelfRemove, true,
			[]string{initiator.DisplayName}, nil)
	} else {
		message, err = uc.factory.Create(initiator, othersOf(conversation, initiator.ID), KeyRemoveParticipant, true,
			[]string{initiator.DisplayName, subject.DisplayName}, subject)
	}
	if err != nil {
		return nil, err
	}

	appendMessage(conversation, message)
	if err := uc.store.Save(ctx, conversation, []*entity.Message{message}); err != nil {
		return nil, err
	}
	return &ConversationView{Conversation: conversation}, nil
}

func (uc *ConversationUseCase) Rename(ctx context.Context, caller Caller, conversationID, name string) (*ConversationView, error) {
	conversation, err := uc.store.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	initiator, err := uc.directory.GetByID(ctx, caller.ParticipantID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(initiator.ID) {
		return nil, errors.Forbidden("caller is not a participant of this conversation", nil)
	}

	name = strings.TrimSpace(name)

	var message *entity.Message
	if name == "" {
		conversation.Name = ""
		message, err = uc.factory.Create(initiator, othersOf(conversation, initiator.ID), KeyDropName, true,
			[]string{initiator.DisplayName}, nil)
	} else {
		conversation.Name = name
		message, err = uc.factory.Create(initiator, othersOf(conversation, initiator.ID), KeyRename, true,
			[]string{initiator.DisplayName, name}, nil)
	}
	if err != nil {
		return nil, err
	}

	appendMessage(conversation, message)
	if err := uc.store.Save(ctx, conversation, []*entity.Message{message}); err != nil {
		return nil, err
	}
	return &ConversationView{Conversation: conversation}, nil
}

// assemble builds a new conversation around its first message. The author
// joins the receivers as a participant; more than two participants makes a
// conference with the author as admin.
func (uc *ConversationUseCase) assemble(author *entity.Participant, receivers []*entity.Participant, name string, seed *entity.Message) (*entity.Conversation, error) {
	participants := make([]entity.Participant, 0, len(receivers)+1)
	participants = append(participants, *author)
	for _, receiver := range receivers {
		if receiver.ID != author.ID {
			participants = append(participants, *receiver)
		}
	}

	if len(participants) < entity.MinParticipants || len(participants) > entity.MaxParticipants {
		return nil, errors.Validation(map[string]string{
			"participants": fmt.Sprintf("participant count must be between %d and %d", entity.MinParticipants, entity.MaxParticipants),
		})
	}

	conversation := &entity.Conversation{
		ID:           uuid.New().String(),
		Name:         name,
		Type:         entity.TypeDialogue,
		Participants: participants,
		LastReadOn:   make(map[string]time.Time),
		CreatedAt:    seed.CreatedAt,
		UpdatedAt:    seed.CreatedAt,
	}
	if len(participants) > 2 {
		conversation.Type = entity.TypeConference
		conversation.AdminID = author.ID
	}

	// Receivers start with the zero watermark: everything unread.
	for _, participant := range participants {
		if participant.ID != author.ID {
			conversation.LastReadOn[participant.ID] = time.Time{}
		}
	}

	appendMessage(conversation, seed)
	return conversation, nil
}

// appendMessage is the only writer of the denormalized last-message
// snapshot. Appending also marks the author's own watermark: an author
// always sees their own message as read.
func appendMessage(conversation *entity.Conversation, message *entity.Message) {
	message.ConversationID = conversation.ID
	if conversation.LastReadOn == nil {
		conversation.LastReadOn = make(map[string]time.Time)
	}
	conversation.LastReadOn[message.AuthorID] = message.CreatedAt
	conversation.LastMessage = &entity.LastMessage{
		Text:        message.Text,
		AuthorName:  message.AuthorName,
		CreatedAt:   message.CreatedAt,
		IsSystem:    message.IsSystem,
		SystemArgs:  message.SystemArgs,
		SubjectName: message.SubjectName,
	}
	conversation.UpdatedAt = message.CreatedAt
}

func othersOf(conversation *entity.Conversation, participantID string) []*entity.Participant {
	others := make([]*entity.Participant, 0, len(conversation.Participants))
	for i := range conversation.Participants {
		if conversation.Participants[i].ID != participantID {
			others = append(others, &conversation.Participants[i])
		}
	}
	return others
}
