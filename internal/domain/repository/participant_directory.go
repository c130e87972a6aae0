package repository

import (
	"context"

	"parley/internal/domain/entity"
)

// ParticipantDirectory resolves participant identities. Identity is owned
// externally; the core only reads.
type ParticipantDirectory interface {
	GetByID(ctx context.Context, id string) (*entity.Participant, error)

	// GetByIDs resolves every id or fails; an empty id list resolves to an
	// empty result.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Participant, error)
}
