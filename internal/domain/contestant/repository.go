package contestant

import "context"

type Repository interface {
	ListBySeason(ctx context.Context, seasonID string) ([]Contestant, error)
	GetByID(ctx context.Context, seasonID, contestantID string) (Contestant, bool, error)
	Create(ctx context.Context, c Contestant) error
	Update(ctx context.Context, c Contestant) error
}
