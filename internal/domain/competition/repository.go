package competition

import "context"

// Repository persists the append-only competition log.
type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Competition, error)
	GetByID(ctx context.Context, seasonID, competitionID string) (Competition, bool, error)
	Create(ctx context.Context, c Competition) error
	Delete(ctx context.Context, seasonID, competitionID string) error
}
