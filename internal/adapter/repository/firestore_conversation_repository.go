package repository

import (
	"context"
	"sort"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"parley/internal/domain/entity"
	"parley/internal/domain/repository"
	"parley/pkg/errors"
	"parley/pkg/logger"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationStore {
	return &firestoreConversationRepository{
		client: client,
	}
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	return &conversation, nil
}

// Save writes the aggregate head and any newly appended messages in one
// batch, so a mutating operation commits atomically or not at all.
func (r *firestoreConversationRepository) Save(ctx context.Context, conversation *entity.Conversation, appended []*entity.Message) error {
	if conversation.ID == "" {
		conversation.ID = uuid.New().String()
	}

	conversation.ParticipantIDs = lo.Map(conversation.Participants, func(p entity.Participant, _ int) string {
		return p.ID
	})
	if conversation.Type == entity.TypeDialogue {
		conversation.ParticipantKey = dialogueKey(conversation.ParticipantIDs)
	}

	ref := r.client.Collection("conversations").Doc(conversation.ID)

	batch := r.client.Batch()
	batch.Set(ref, conversation)
	for _, message := range appended {
		batch.Set(ref.Collection("messages").Doc(message.ID), message)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to save conversation", err)
	}
	return nil
}

func (r *firestoreConversationRepository) FindDialogue(ctx context.Context, participantA, participantB string) (*entity.Conversation, error) {
	iter := r.client.Collection("conversations").
		Where("participantKey", "==", dialogueKey([]string{participantA, participantB})).
		Where("type", "==", string(entity.TypeDialogue)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Dialogue", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to find dialogue", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}
	return &conversation, nil
}

func (r *firestoreConversationRepository) FindAttended(ctx context.Context, participantID string, limit, offset int) ([]repository.Attended, int64, error) {
	query := r.client.Collection("conversations").
		Where("participantIds", "array-contains", participantID).
		OrderBy("lastMessage.createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while counting conversations for %s: %v", participantID, err)
		return nil, 0, errors.Internal("Failed to count conversations", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var attended []repository.Attended
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate conversations", err)
		}

		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			logger.Warn("skipping malformed conversation %s: %v", doc.Ref.ID, err)
			continue
		}

		unread, err := r.countUnread(ctx, &conversation, participantID)
		if err != nil {
			return nil, 0, err
		}

		attended = append(attended, repository.Attended{
			Conversation: &conversation,
			UnreadCount:  unread,
		})
	}

	return attended, total, nil
}

func (r *firestoreConversationRepository) CountUpdated(ctx context.Context, participantID string) (int, error) {
	iter := r.client.Collection("conversations").
		Where("participantIds", "array-contains", participantID).
		Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, errors.Internal("Failed to iterate conversations", err)
		}

		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			continue
		}
		if conversation.LastMessage != nil && conversation.UnreadFor(participantID, conversation.LastMessage.CreatedAt) {
			count++
		}
	}

	return count, nil
}

func (r *firestoreConversationRepository) GetMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("conversations").Doc(conversationID).Collection("messages").
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while counting messages for conversation %s: %v", conversationID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var messages []*entity.Message
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("skipping malformed message %s: %v", doc.Ref.ID, err)
			continue
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreConversationRepository) GetMessagesByIDs(ctx context.Context, ids []string) ([]*entity.Message, error) {
	var messages []*entity.Message

	// Firestore caps "in" filters at 10 values.
	for _, chunk := range lo.Chunk(ids, 10) {
		docs, err := r.client.CollectionGroup("messages").
			Where("id", "in", chunk).
			Documents(ctx).
			GetAll()
		if err != nil {
			return nil, errors.Internal("Failed to load messages", err)
		}

		for _, doc := range docs {
			var message entity.Message
			if err := doc.DataTo(&message); err != nil {
				return nil, errors.Internal("Failed to parse message data", err)
			}
			messages = append(messages, &message)
		}
	}

	return messages, nil
}

func (r *firestoreConversationRepository) countUnread(ctx context.Context, conversation *entity.Conversation, participantID string) (int, error) {
	query := r.client.Collection("conversations").Doc(conversation.ID).Collection("messages").
		Where("createdAt", ">", conversation.LastReadOn[participantID])

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread messages", err)
	}
	return len(docs), nil
}

// dialogueKey is the sorted pair key dialogues are indexed by, so the
// dialogue between two participants can be found regardless of who asks.
func dialogueKey(participantIDs []string) string {
	ids := append([]string(nil), participantIDs...)
	sort.Strings(ids)
	return strings.Join(ids, "|")
}
