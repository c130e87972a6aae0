package usecase

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"parley/internal/domain/entity"
	"parley/pkg/errors"
)

// MessageFactory builds message values. It has no persistence concerns;
// attaching a message to its conversation is the lifecycle manager's job.
type MessageFactory struct{}

func NewMessageFactory() *MessageFactory {
	return &MessageFactory{}
}

// Create builds a message from the author to the given receivers. For
// system messages, text is a catalog key and systemArgs carries the
// positional arguments; subject is the participant the message is about,
// if any.
func (f *MessageFactory) Create(author *entity.Participant, receivers []*entity.Participant, text string, isSystem bool, systemArgs []string, subject *entity.Participant) (*entity.Message, error) {
	if !isSystem && strings.TrimSpace(text) == "" {
		return nil, errors.Validation(map[string]string{"text": "text must not be blank"})
	}
	if len(receivers) == 0 {
		return nil, errors.Validation(map[string]string{"participants": "a message needs at least one receiver"})
	}

	message := &entity.Message{
		ID:         uuid.New().String(),
		AuthorID:   author.ID,
		AuthorName: author.DisplayName,
		Text:       text,
		IsSystem:   isSystem,
		CreatedAt:  time.Now(),
	}

	if len(systemArgs) > 0 {
		raw, err := json.Marshal(systemArgs)
		if err != nil {
			return nil, errors.Internal("Failed to encode system message args", err)
		}
		message.SystemArgs = string(raw)
	}

	if subject != nil {
		message.SubjectID = subject.ID
		message.SubjectName = subject.DisplayName
	}

	return message, nil
}
