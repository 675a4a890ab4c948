package catalog

import "storefront/internal/domain"

// Details is what the details screen needs once both fetches completed.
type Details struct {
	Experience domain.Experience
	Slots      []domain.Slot
	Groups     []domain.SlotGroup
}

// ListState is the list screen's state.
type ListState struct {
	Experiences []domain.Experience
	Error       string
	RetryURL    string
}

// DetailsState is the details screen's state. SelectedSlotID is zero until the
// visitor picks a slot.
type DetailsState struct {
	Experience     *domain.Experience
	Groups         []domain.SlotGroup
	SelectedSlotID int64
	SlotError      string
	Error          string
	RetryURL       string
}

func (s DetailsState) HasSlots() bool {
	return len(s.Groups) > 0
}

type selectSlotRequest struct {
	SlotID int64 `form:"slot_id" binding:"required,gt=0"`
}
