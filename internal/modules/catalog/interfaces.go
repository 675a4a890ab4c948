package catalog

import (
	"context"

	"storefront/internal/domain"
)

// ExperienceSource is the read side of the booking backend.
type ExperienceSource interface {
	ListExperiences(ctx context.Context) ([]domain.Experience, error)
	GetExperience(ctx context.Context, id int64) (*domain.Experience, error)
	ListSlots(ctx context.Context, experienceID int64) ([]domain.Slot, error)
}
