package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"parley/internal/domain/entity"
	"parley/internal/domain/repository"
	"parley/pkg/errors"
)

type firestoreParticipantRepository struct {
	client *firestore.Client
}

func NewFirestoreParticipantRepository(client *firestore.Client) repository.ParticipantDirectory {
	return &firestoreParticipantRepository{
		client: client,
	}
}

func (r *firestoreParticipantRepository) GetByID(ctx context.Context, id string) (*entity.Participant, error) {
	doc, err := r.client.Collection("participants").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.Conflict(fmt.Sprintf("unknown participant %s", id))
		}
		return nil, errors.Internal("Failed to get participant", err)
	}

	var participant entity.Participant
	if err := doc.DataTo(&participant); err != nil {
		return nil, errors.Internal("Failed to parse participant data", err)
	}
	return &participant, nil
}

// GetByIDs resolves every id or fails; an empty list resolves empty.
func (r *firestoreParticipantRepository) GetByIDs(ctx context.Context, ids []string) ([]*entity.Participant, error) {
	participants := make([]*entity.Participant, 0, len(ids))
	for _, id := range ids {
		participant, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, nil
}
