package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CPC-BookingService/pkg/types"
)

func validSettings(t *testing.T) *AppointmentSettings {
	t.Helper()

	start, err := types.NewTimeStringFromString("09:00")
	require.NoError(t, err)
	end, err := types.NewTimeStringFromString("19:00")
	require.NoError(t, err)

	return &AppointmentSettings{
		WorkingHours:               WorkingHours{Start: start, End: end},
		WorkingDays:                []int{1, 2, 3, 4, 5, 6},
		SlotDurationMinutes:        60,
		BreakDurationMinutes:       0,
		MaxAdvanceBookingDays:      30,
		FictionalBookingPercentage: 30,
	}
}

func TestAppointmentSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppointmentSettings)
		wantErr bool
	}{
		{name: "valid settings", mutate: func(s *AppointmentSettings) {}},
		{
			name: "start after end",
			mutate: func(s *AppointmentSettings) {
				s.WorkingHours.Start, _ = types.NewTimeStringFromString("20:00")
			},
			wantErr: true,
		},
		{
			name:    "zero slot duration",
			mutate:  func(s *AppointmentSettings) { s.SlotDurationMinutes = 0 },
			wantErr: true,
		},
		{
			name:    "slot duration too long",
			mutate:  func(s *AppointmentSettings) { s.SlotDurationMinutes = 481 },
			wantErr: true,
		},
		{
			name:    "negative break",
			mutate:  func(s *AppointmentSettings) { s.BreakDurationMinutes = -1 },
			wantErr: true,
		},
		{
			name:    "percentage over 100",
			mutate:  func(s *AppointmentSettings) { s.FictionalBookingPercentage = 101 },
			wantErr: true,
		},
		{
			name:    "empty working days",
			mutate:  func(s *AppointmentSettings) { s.WorkingDays = []int{} },
			wantErr: true,
		},
		{
			name:    "working day out of range",
			mutate:  func(s *AppointmentSettings) { s.WorkingDays = []int{7} },
			wantErr: true,
		},
		{
			name: "blocked range inverted",
			mutate: func(s *AppointmentSettings) {
				s.BlockedDateRanges = []BlockedDateRange{{
					ID:        "r1",
					StartDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
				}}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings(t)
			tt.mutate(s)

			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAppointmentSettings_IsWorkingDay(t *testing.T) {
	s := validSettings(t)

	assert.True(t, s.IsWorkingDay(time.Monday))
	assert.True(t, s.IsWorkingDay(time.Saturday))
	assert.False(t, s.IsWorkingDay(time.Sunday))
}

func TestAppointmentSettings_BlockedRangeFor(t *testing.T) {
	s := validSettings(t)
	s.BlockedDateRanges = []BlockedDateRange{{
		ID:        "vacation",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
	}}

	// Границы диапазона включаются
	assert.NotNil(t, s.BlockedRangeFor(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.NotNil(t, s.BlockedRangeFor(time.Date(2026, 9, 14, 23, 0, 0, 0, time.UTC)))
	assert.NotNil(t, s.BlockedRangeFor(time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)))

	assert.Nil(t, s.BlockedRangeFor(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, s.BlockedRangeFor(time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)))
}

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusBooked, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusFictitious, false},
		{StatusBooked, StatusCancelled, true},
		{StatusBooked, StatusPending, false},
		{StatusFictitious, StatusBooked, true},
		{StatusFictitious, StatusCancelled, false},
		{StatusCancelled, StatusBooked, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			appt := &Appointment{Status: tt.from}
			assert.Equal(t, tt.want, appt.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_EndTime(t *testing.T) {
	start, err := types.NewTimeStringFromString("10:00")
	require.NoError(t, err)

	appt := &Appointment{StartTime: start, DurationMinutes: 120}
	end, err := appt.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "12:00", end.String())
}
