package catalog

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
)

type Service struct {
	source ExperienceSource
}

func NewService(source ExperienceSource) *Service {
	return &Service{source: source}
}

func (s *Service) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	exps, err := s.source.ListExperiences(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return exps, nil
}

// LoadDetails fetches the experience and its slots in parallel. Both calls
// must succeed; a failure in either fails the whole load.
func (s *Service) LoadDetails(ctx context.Context, experienceID int64) (*Details, error) {
	var (
		exp   *domain.Experience
		slots []domain.Slot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		exp, err = s.source.GetExperience(gctx, experienceID)
		return err
	})
	g.Go(func() error {
		var err error
		slots, err = s.source.ListSlots(gctx, experienceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	if exp == nil {
		return nil, ErrLoadFailed
	}

	return &Details{
		Experience: *exp,
		Slots:      slots,
		Groups:     GroupSlotsByDate(slots),
	}, nil
}

// GroupSlotsByDate groups slots by exact date string. Groups follow the order
// in which each date first appears; slots keep their input order.
func GroupSlotsByDate(slots []domain.Slot) []domain.SlotGroup {
	groups := make([]domain.SlotGroup, 0)
	index := make(map[string]int)
	for _, slot := range slots {
		i, ok := index[slot.Date]
		if !ok {
			i = len(groups)
			index[slot.Date] = i
			groups = append(groups, domain.SlotGroup{Date: slot.Date})
		}
		groups[i].Slots = append(groups[i].Slots, slot)
	}
	return groups
}
