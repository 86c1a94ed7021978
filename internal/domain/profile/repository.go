package profile

import "context"

// Repository persists per-user profiles. User scoping is always explicit;
// there is no ambient current-user context.
type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (Profile, bool, error)
	Upsert(ctx context.Context, p Profile) error
	SaveChart(ctx context.Context, userID int64, update ChartUpdate) error
}
