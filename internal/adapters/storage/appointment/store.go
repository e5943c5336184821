package appointment

import (
	"context"

	domain "studio/internal/domain/appointment"
)

// Store persists Appointment state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Appointment, error)
	Save(ctx context.Context, value domain.Appointment) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Appointment, error)
	ListFiltered(ctx context.Context, filter ListFilter) ([]domain.Appointment, error)
	CountFiltered(ctx context.Context, filter ListFilter) (int, error)
}

// ListFilter carries filtering parameters for the admin table queries.
type ListFilter struct {
	Category string
	Status   string
	Search   string // matches client name
	Limit    int
	Offset   int
}
