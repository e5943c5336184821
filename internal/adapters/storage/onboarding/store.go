package onboarding

import (
	"context"

	domain "studio/internal/domain/onboarding"
)

// Store persists completed onboarding submissions.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Submission, error)
	Save(ctx context.Context, value domain.Submission) error
	List(ctx context.Context) ([]domain.Submission, error)
}
