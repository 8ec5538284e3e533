package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/CPC-BookingService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, f.err
}

type fakeSettingsRepo struct {
	settings *domain.AppointmentSettings
	err      error
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.AppointmentSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testSettings(t *testing.T) *domain.AppointmentSettings {
	t.Helper()
	return &domain.AppointmentSettings{
		WorkingHours:          workingHours(t, "09:00", "19:00"),
		WorkingDays:           []int{1, 2, 3, 4, 5, 6}, // понедельник - суббота
		SlotDurationMinutes:   60,
		MaxAdvanceBookingDays: 30,
	}
}

// 2026-09-14 - понедельник
var testNow = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, apptRepo *fakeAppointmentRepo, setRepo *fakeSettingsRepo) *UseCase {
	t.Helper()
	return NewUseCase(apptRepo, setRepo, nopLogger{}).WithTimeProvider(fixedTime{now: testNow})
}

func TestUseCase_Execute_WorkingDay(t *testing.T) {
	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

	resp, err := uc.Execute(context.Background(), &Request{Date: testNow})
	require.NoError(t, err)

	assert.Nil(t, resp.Closed)
	require.Len(t, resp.Slots, 10) // 09:00 .. 18:00
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "18:00", resp.Slots[9].StartTime.String())
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, domain.SlotStatusAvailable, slot.Status)
	}
}

func TestUseCase_Execute_NotAWorkingDay(t *testing.T) {
	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

	sunday := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{Date: sunday})
	require.NoError(t, err)

	require.NotNil(t, resp.Closed)
	assert.Equal(t, ClosedReasonNotWorkingDay, resp.Closed.Reason)
	// Ответ подсказывает клиенту дни приема
	assert.Equal(t,
		[]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		resp.Closed.WorkingDays,
	)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_AdminBypassesClosedDays(t *testing.T) {
	t.Run("non-working day", func(t *testing.T) {
		uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

		sunday := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
		resp, err := uc.Execute(context.Background(), &Request{Date: sunday, IsAdmin: true})
		require.NoError(t, err)

		assert.Nil(t, resp.Closed)
		assert.NotEmpty(t, resp.Slots)
	})

	t.Run("blocked date", func(t *testing.T) {
		settings := testSettings(t)
		settings.BlockedDateRanges = []domain.BlockedDateRange{{
			ID:        "vacation",
			StartDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		}}
		uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: settings})

		resp, err := uc.Execute(context.Background(), &Request{
			Date:    time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
			IsAdmin: true,
		})
		require.NoError(t, err)

		assert.Nil(t, resp.Closed)
		assert.NotEmpty(t, resp.Slots)
	})
}

func TestUseCase_Execute_BlockedDate(t *testing.T) {
	settings := testSettings(t)
	settings.BlockedDateRanges = []domain.BlockedDateRange{{
		ID:        "vacation",
		StartDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		Reason:    ptr.Ptr("congés annuels"),
	}}

	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: settings})

	resp, err := uc.Execute(context.Background(), &Request{Date: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	require.NotNil(t, resp.Closed)
	assert.Equal(t, ClosedReasonDateBlocked, resp.Closed.Reason)
	require.NotNil(t, resp.Closed.Detail)
	assert.Equal(t, "congés annuels", *resp.Closed.Detail)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_DateWindow(t *testing.T) {
	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

	t.Run("past date rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Date: testNow.AddDate(0, 0, -1)})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("beyond window rejected for public", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{Date: testNow.AddDate(0, 0, 31)})
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("beyond window allowed for admin", func(t *testing.T) {
		// 2026-10-16 - пятница
		resp, err := uc.Execute(context.Background(), &Request{
			Date:    time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
			IsAdmin: true,
		})
		require.NoError(t, err)
		assert.Nil(t, resp.Closed)
		assert.NotEmpty(t, resp.Slots)
	})
}

func TestUseCase_Execute_SettingsNotConfigured(t *testing.T) {
	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{err: settingsRepo.ErrSettingsNotFound})

	_, err := uc.Execute(context.Background(), &Request{Date: testNow})
	assert.ErrorIs(t, err, ErrSettingsNotConfigured)
}

func TestUseCase_Execute_OccupiedSlots(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
		{StartTime: mustTime(t, "10:00"), DurationMinutes: 60, Status: domain.StatusBooked},
		{StartTime: mustTime(t, "15:00"), DurationMinutes: 60, Status: domain.StatusFictitious, IsFictitious: true},
	}}

	uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

	resp, err := uc.Execute(context.Background(), &Request{Date: testNow})
	require.NoError(t, err)

	bySlot := map[string]Slot{}
	for _, slot := range resp.Slots {
		bySlot[slot.StartTime.String()] = slot
	}

	assert.False(t, bySlot["10:00"].Available)
	assert.Equal(t, "booked", bySlot["10:00"].Status)
	assert.False(t, bySlot["15:00"].Available)
	assert.Equal(t, "fictitious", bySlot["15:00"].Status) // слот несет статус занявшей его записи
	assert.True(t, bySlot["09:00"].Available)
}
