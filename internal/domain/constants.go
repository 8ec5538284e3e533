package domain

import (
	"sync"
	"time"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BusinessTimezone is the single IANA zone all scheduling math happens in.
// The practice operates one calendar in one city; this is a deliberate
// single-tenant constraint, never detected from the server or the caller.
const BusinessTimezone = "Africa/Casablanca"

// Session duration policy
const (
	// FirstSessionDurationMinutes is the fixed duration of a first session,
	// regardless of the configured slot duration
	FirstSessionDurationMinutes = 120
)

// Default configuration values
const (
	DefaultSlotDurationMinutes   = 60
	DefaultBreakDurationMinutes  = 0
	DefaultMaxAdvanceBookingDays = 30
	DefaultFictionalPercentage   = 30
)

// Business validation constants
const (
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxAdvanceBookingDays  = 365
	MaxNotesLength         = 1000
)

// Fictitious seeding policy
const (
	FictitiousHorizonDays = 30          // how far ahead placeholders are seeded
	FictitiousDailyCap    = 3           // max fictitious records per day
	FictitiousSkipWeekday = time.Sunday // never seeded, independent of workingDays
)

// OccupyingStatuses список статусов, занимающих слот.
// Используется при подсчете доступности и при проверке конфликтов.
var OccupyingStatuses = []AppointmentStatus{
	StatusPending,
	StatusBooked,
	StatusFictitious,
}

var (
	businessLocation     *time.Location
	businessLocationOnce sync.Once
)

// BusinessLocation returns the loaded business timezone.
// Falls back to UTC if the zone database is unavailable.
func BusinessLocation() *time.Location {
	businessLocationOnce.Do(func() {
		loc, err := time.LoadLocation(BusinessTimezone)
		if err != nil {
			loc = time.UTC
		}
		businessLocation = loc
	})
	return businessLocation
}
