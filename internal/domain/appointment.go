package domain

import (
	"time"

	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending    AppointmentStatus = "pending"
	StatusBooked     AppointmentStatus = "booked"
	StatusCancelled  AppointmentStatus = "cancelled"
	StatusFictitious AppointmentStatus = "fictitious"

	// SlotStatusAvailable is a synthetic status used only in slot views,
	// it is never persisted on an appointment record
	SlotStatusAvailable = "available"
)

// Appointment represents a single session reservation in the calendar
type Appointment struct {
	ID              int64
	Date            time.Time // calendar day, midnight in the business timezone
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	ClientName  string
	ClientEmail string
	ClientPhone string
	Notes       *string

	IsFirstTime  bool // first sessions run 120 minutes instead of one slot
	IsOnline     bool
	IsFictitious bool
	IsRedFlagged bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndTime returns the end of the appointment interval [StartTime, EndTime)
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// IsOccupying reports whether the appointment blocks its slot for others.
// Fictitious placeholders occupy slots exactly like real bookings.
func (a *Appointment) IsOccupying() bool {
	return a.Status == StatusPending || a.Status == StatusBooked || a.Status == StatusFictitious
}

// IsTerminal reports whether no further status transitions are allowed
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCancelled
}

// CanTransitionTo reports whether the status change is allowed by the workflow:
//
//	pending    -> booked | cancelled
//	booked     -> cancelled
//	fictitious -> booked
//	cancelled  -> (none; deletion only)
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	switch a.Status {
	case StatusPending:
		return next == StatusBooked || next == StatusCancelled
	case StatusBooked:
		return next == StatusCancelled
	case StatusFictitious:
		return next == StatusBooked
	default:
		return false
	}
}

// ValidStatus reports whether s is one of the four persisted statuses
func ValidStatus(s AppointmentStatus) bool {
	switch s {
	case StatusPending, StatusBooked, StatusCancelled, StatusFictitious:
		return true
	}
	return false
}

// AppointmentsFilter фильтр для выборки записей из репозитория
type AppointmentsFilter struct {
	StartDate     *time.Time         // Начало периода (опционально)
	EndDate       *time.Time         // Конец периода (опционально)
	Status        *AppointmentStatus // Фильтр по статусу (опционально)
	OnlyOccupying bool               // Только записи, занимающие слот (pending/booked/fictitious)
}
