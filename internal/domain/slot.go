package domain

import "github.com/m04kA/CPC-BookingService/pkg/types"

// SlotView represents one candidate time slot in the availability view
type SlotView struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Available       bool
	// Status is SlotStatusAvailable for free slots; otherwise the status
	// of the overlapping appointment (booked/pending/fictitious)
	Status string
}

// IsFree reports whether the slot can be offered for booking
func (s *SlotView) IsFree() bool {
	return s.Available
}
