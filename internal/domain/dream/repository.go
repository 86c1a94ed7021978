package dream

import "context"

// Repository persists dream journal entries, scoped by explicit user ID.
type Repository interface {
	Save(ctx context.Context, d Dream) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]Dream, error)
}
