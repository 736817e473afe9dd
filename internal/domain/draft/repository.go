package draft

import "context"

// Repository persists draft picks. ListByLeague returns picks ordered by pick number.
type Repository interface {
	ListByLeague(ctx context.Context, leagueID string) ([]Pick, error)
	Create(ctx context.Context, p Pick) error
	Delete(ctx context.Context, leagueID, pickID string) error
}
