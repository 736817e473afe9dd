package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Season, error)
	GetByID(ctx context.Context, seasonID string) (Season, bool, error)
	UpdateCurrentWeek(ctx context.Context, seasonID string, week int) error
	SaveWeeklyStatusCards(ctx context.Context, seasonID, weekKey string, cards []StatusCard) error
}
