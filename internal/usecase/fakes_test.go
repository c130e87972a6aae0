package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"parley/internal/domain/entity"
	"parley/internal/domain/repository"
	"parley/pkg/errors"
)

type fakeDirectory struct {
	participants map[string]*entity.Participant
}

func newFakeDirectory(participants ...*entity.Participant) *fakeDirectory {
	d := &fakeDirectory{participants: make(map[string]*entity.Participant)}
	for _, p := range participants {
		d.participants[p.ID] = p
	}
	return d
}

func (d *fakeDirectory) GetByID(_ context.Context, id string) (*entity.Participant, error) {
	participant, ok := d.participants[id]
	if !ok {
		return nil, errors.Conflict(fmt.Sprintf("unknown participant %s", id))
	}
	return participant, nil
}

func (d *fakeDirectory) GetByIDs(ctx context.Context, ids []string) ([]*entity.Participant, error) {
	participants := make([]*entity.Participant, 0, len(ids))
	for _, id := range ids {
		participant, err := d.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, nil
}

type fakeStore struct {
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	saves         int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (s *fakeStore) GetByID(_ context.Context, id string) (*entity.Conversation, error) {
	conversation, ok := s.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conversation, nil
}

func (s *fakeStore) Save(_ context.Context, conversation *entity.Conversation, appended []*entity.Message) error {
	s.conversations[conversation.ID] = conversation
	s.messages[conversation.ID] = append(s.messages[conversation.ID], appended...)
	s.saves++
	return nil
}

func (s *fakeStore) FindDialogue(_ context.Context, participantA, participantB string) (*entity.Conversation, error) {
	for _, conversation := range s.conversations {
		if conversation.Type == entity.TypeDialogue &&
			conversation.HasParticipant(participantA) && conversation.HasParticipant(participantB) {
			return conversation, nil
		}
	}
	return nil, errors.NotFound("Dialogue", nil)
}

func (s *fakeStore) FindAttended(_ context.Context, participantID string, limit, offset int) ([]repository.Attended, int64, error) {
	var attended []repository.Attended
	for _, conversation := range s.conversations {
		if !conversation.HasParticipant(participantID) {
			continue
		}
		unread := 0
		for _, message := range s.messages[conversation.ID] {
			if conversation.UnreadFor(participantID, message.CreatedAt) {
				unread++
			}
		}
		attended = append(attended, repository.Attended{Conversation: conversation, UnreadCount: unread})
	}
	sort.Slice(attended, func(i, j int) bool {
		return attended[i].Conversation.UpdatedAt.After(attended[j].Conversation.UpdatedAt)
	})
	total := int64(len(attended))
	if offset > len(attended) {
		offset = len(attended)
	}
	attended = attended[offset:]
	if limit > 0 && limit < len(attended) {
		attended = attended[:limit]
	}
	return attended, total, nil
}

func (s *fakeStore) CountUpdated(_ context.Context, participantID string) (int, error) {
	count := 0
	for _, conversation := range s.conversations {
		if !conversation.HasParticipant(participantID) {
			continue
		}
		if conversation.LastMessage != nil && conversation.UnreadFor(participantID, conversation.LastMessage.CreatedAt) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) GetMessages(_ context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	messages := append([]*entity.Message(nil), s.messages[conversationID]...)
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	total := int64(len(messages))
	if offset > len(messages) {
		offset = len(messages)
	}
	messages = messages[offset:]
	if limit > 0 && limit < len(messages) {
		messages = messages[:limit]
	}
	return messages, total, nil
}

func (s *fakeStore) GetMessagesByIDs(_ context.Context, ids []string) ([]*entity.Message, error) {
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var messages []*entity.Message
	for _, thread := range s.messages {
		for _, message := range thread {
			if wanted[message.ID] {
				messages = append(messages, message)
			}
		}
	}
	return messages, nil
}

// fakeCatalog renders "key|arg1,arg2" so tests can assert key and args
// without caring about wording.
type fakeCatalog struct{}

func (fakeCatalog) Resolve(key string, args []string, locale string) string {
	return key + "|" + strings.Join(args, ",")
}

func participantFixture(id, name string) *entity.Participant {
	return &entity.Participant{ID: id, DisplayName: name}
}
