package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// WorkingHours is the daily operating window of the practice
type WorkingHours struct {
	Start types.TimeString
	End   types.TimeString
}

// BlockedDateRange is an inclusive whole-day interval during which
// public booking is disabled regardless of working days and hours
type BlockedDateRange struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	Reason    *string
}

// Contains reports whether the given calendar day falls inside the range.
// Comparison is whole-day inclusive: start 00:00:00 through end 23:59:59.
func (r *BlockedDateRange) Contains(date time.Time) bool {
	day := DateOnly(date)
	return !day.Before(DateOnly(r.StartDate)) && !day.After(DateOnly(r.EndDate))
}

// SessionPrices holds the session fees, used by reporting only
type SessionPrices struct {
	FirstSession    float64
	FollowUpSession float64
}

// AppointmentSettings is the singleton scheduling configuration document
type AppointmentSettings struct {
	WorkingHours               WorkingHours
	WorkingDays                []int // weekday numbers, 0=Sunday .. 6=Saturday
	SlotDurationMinutes        int
	BreakDurationMinutes       int
	MaxAdvanceBookingDays      int
	FictionalBookingPercentage int
	BlockedDateRanges          []BlockedDateRange
	Prices                     SessionPrices

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the settings invariants
func (s *AppointmentSettings) Validate() error {
	if err := s.WorkingHours.Start.Validate(); err != nil {
		return fmt.Errorf("workingHours.start: %w", err)
	}
	if err := s.WorkingHours.End.Validate(); err != nil {
		return fmt.Errorf("workingHours.end: %w", err)
	}
	if !s.WorkingHours.Start.IsBefore(s.WorkingHours.End) {
		return fmt.Errorf("workingHours.start %s must be before workingHours.end %s",
			s.WorkingHours.Start, s.WorkingHours.End)
	}
	if s.SlotDurationMinutes <= 0 || s.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("slotDuration must be between 1 and %d minutes", MaxSlotDurationMinutes)
	}
	if s.BreakDurationMinutes < 0 {
		return fmt.Errorf("breakDuration must not be negative")
	}
	if s.MaxAdvanceBookingDays < 0 || s.MaxAdvanceBookingDays > MaxAdvanceBookingDays {
		return fmt.Errorf("maxAdvanceBooking must be between 0 and %d days", MaxAdvanceBookingDays)
	}
	if s.FictionalBookingPercentage < 0 || s.FictionalBookingPercentage > 100 {
		return fmt.Errorf("fictionalBookingPercentage must be between 0 and 100")
	}
	if len(s.WorkingDays) == 0 {
		return fmt.Errorf("workingDays must not be empty")
	}
	for _, d := range s.WorkingDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("workingDays contains invalid weekday %d", d)
		}
	}
	for _, r := range s.BlockedDateRanges {
		if DateOnly(r.StartDate).After(DateOnly(r.EndDate)) {
			return fmt.Errorf("blocked range %s: startDate is after endDate", r.ID)
		}
	}
	return nil
}

// IsWorkingDay reports whether the given weekday is a working day
func (s *AppointmentSettings) IsWorkingDay(weekday time.Weekday) bool {
	for _, d := range s.WorkingDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// BlockedRangeFor returns the first blocked range containing the date, or nil.
// Ranges may overlap each other; the earliest configured match wins.
func (s *AppointmentSettings) BlockedRangeFor(date time.Time) *BlockedDateRange {
	for i := range s.BlockedDateRanges {
		if s.BlockedDateRanges[i].Contains(date) {
			return &s.BlockedDateRanges[i]
		}
	}
	return nil
}

// WorkingDayNames returns the human-readable names of the working days,
// ordered Monday first
func (s *AppointmentSettings) WorkingDayNames() []string {
	names := make([]string, 0, len(s.WorkingDays))
	for _, d := range weekdayDisplayOrder {
		if s.IsWorkingDay(d) {
			names = append(names, d.String())
		}
	}
	return names
}

// DateOnly strips the time-of-day part, keeping the location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

var weekdayDisplayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}
