package catalog

import "errors"

var (
	ErrLoadFailed          = errors.New("catalog load failed")
	ErrInvalidExperienceID = errors.New("invalid experience id")
	ErrSlotUnavailable     = errors.New("slot unavailable")
)

const (
	msgListLoadFailed    = "Failed to load experiences. Please try again later."
	msgDetailsLoadFailed = "Failed to load experience details. Please try again later."
	msgSlotUnavailable   = "Please select an available time slot."
)
