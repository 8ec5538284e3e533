package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	existsAt     map[string]bool
	createErr    error
	created      *domain.Appointment
	nextID       int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	appt.ID = f.nextID
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = appt
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) ExistsAtDateTime(_ context.Context, date time.Time, startTime types.TimeString) (bool, error) {
	return f.existsAt[date.Format(domain.DateFormat)+" "+startTime.String()], nil
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

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testSettings(t *testing.T) *domain.AppointmentSettings {
	t.Helper()
	start := mustTime(t, "09:00")
	end := mustTime(t, "19:00")
	return &domain.AppointmentSettings{
		WorkingHours:          domain.WorkingHours{Start: start, End: end},
		WorkingDays:           []int{1, 2, 3, 4, 5, 6},
		SlotDurationMinutes:   60,
		MaxAdvanceBookingDays: 30,
	}
}

// 2026-09-14 - понедельник
var testNow = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		Date:        testNow.AddDate(0, 0, 1), // вторник
		StartTime:   mustTime(t, "10:00"),
		ClientName:  "Fatima Zahra",
		ClientEmail: "fatima@example.com",
		ClientPhone: "+212600000000",
	}
}

func newTestUseCase(t *testing.T, apptRepo *fakeAppointmentRepo, setRepo *fakeSettingsRepo) *UseCase {
	t.Helper()
	return NewUseCase(apptRepo, setRepo, fakeTxManager{}, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
}

func TestUseCase_Execute_Success(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

	resp, err := uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status) // новая запись всегда ожидает подтверждения
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, "11:00", resp.EndTime.String())
	require.NotNil(t, apptRepo.created)
	assert.Equal(t, domain.StatusPending, apptRepo.created.Status)
}

func TestUseCase_Execute_FirstSessionIsLonger(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{}
	uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

	req := validRequest(t)
	req.IsFirstTime = true

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.FirstSessionDurationMinutes, resp.DurationMinutes)
	assert.Equal(t, "12:00", resp.EndTime.String())
}

func TestUseCase_Execute_SlotConflicts(t *testing.T) {
	t.Run("exact slot taken", func(t *testing.T) {
		apptRepo := &fakeAppointmentRepo{existsAt: map[string]bool{"2026-09-15 10:00": true}}
		uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	})

	t.Run("overlapping long session", func(t *testing.T) {
		// Существующий сеанс 09:30-11:00 пересекает запрошенный слот 10:00
		apptRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
			{StartTime: mustTime(t, "09:30"), DurationMinutes: 90, Status: domain.StatusBooked},
		}}
		uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	})

	t.Run("adjacent session does not conflict", func(t *testing.T) {
		// Сеанс 09:00-10:00 граничит с запрошенным 10:00 - конфликта нет
		apptRepo := &fakeAppointmentRepo{appointments: []*domain.Appointment{
			{StartTime: mustTime(t, "09:00"), DurationMinutes: 60, Status: domain.StatusBooked},
		}}
		uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.NoError(t, err)
	})

	t.Run("concurrent insert detected by index", func(t *testing.T) {
		apptRepo := &fakeAppointmentRepo{createErr: appointmentRepo.ErrSlotTaken}
		uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

		_, err := uc.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrSlotAlreadyBooked)
	})
}

func TestUseCase_Execute_DateGates(t *testing.T) {
	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

	t.Run("past date", func(t *testing.T) {
		req := validRequest(t)
		req.Date = testNow.AddDate(0, 0, -1)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("beyond booking window", func(t *testing.T) {
		req := validRequest(t)
		req.Date = testNow.AddDate(0, 0, 45)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrDateTooFarInFuture)
	})

	t.Run("admin bypasses the window", func(t *testing.T) {
		req := validRequest(t)
		req.Date = time.Date(2026, 10, 30, 0, 0, 0, 0, time.UTC) // пятница
		req.IsAdmin = true
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("sunday is closed", func(t *testing.T) {
		req := validRequest(t)
		req.Date = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrNotAWorkingDay)
	})

	t.Run("admin may book a sunday", func(t *testing.T) {
		req := validRequest(t)
		req.Date = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
		req.IsAdmin = true
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("blocked range", func(t *testing.T) {
		settings := testSettings(t)
		settings.BlockedDateRanges = []domain.BlockedDateRange{{
			ID:        "vacation",
			StartDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
		}}
		blockedUC := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: settings})

		_, err := blockedUC.Execute(context.Background(), validRequest(t))
		assert.ErrorIs(t, err, ErrDateBlocked)

		// Блокировка останавливает только публичных клиентов
		adminReq := validRequest(t)
		adminReq.IsAdmin = true
		_, err = blockedUC.Execute(context.Background(), adminReq)
		assert.NoError(t, err)
	})
}

func TestUseCase_Execute_InitialStatus(t *testing.T) {
	t.Run("admin creates booked directly", func(t *testing.T) {
		apptRepo := &fakeAppointmentRepo{}
		uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

		req := validRequest(t)
		req.Status = "booked"
		req.IsAdmin = true

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "booked", resp.Status)
		assert.Equal(t, domain.StatusBooked, apptRepo.created.Status)
	})

	t.Run("admin creates fictitious without contacts", func(t *testing.T) {
		apptRepo := &fakeAppointmentRepo{}
		uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

		req := validRequest(t)
		req.Status = "fictitious"
		req.ClientEmail = ""
		req.ClientPhone = ""
		req.IsAdmin = true

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "fictitious", resp.Status)
		assert.True(t, resp.IsFictitious)
		assert.True(t, apptRepo.created.IsFictitious)
	})

	t.Run("fictitious flag alone selects the status", func(t *testing.T) {
		apptRepo := &fakeAppointmentRepo{}
		uc := newTestUseCase(t, apptRepo, &fakeSettingsRepo{settings: testSettings(t)})

		req := validRequest(t)
		req.IsFictitious = true
		req.IsAdmin = true

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "fictitious", resp.Status)
	})

	t.Run("public caller cannot create booked", func(t *testing.T) {
		uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

		req := validRequest(t)
		req.Status = "booked"

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStatusNotPermitted)
	})

	t.Run("public caller cannot create fictitious", func(t *testing.T) {
		uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

		req := validRequest(t)
		req.IsFictitious = true

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrStatusNotPermitted)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

		req := validRequest(t)
		req.Status = "cancelled"
		req.IsAdmin = true

		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUseCase_Execute_TimeGates(t *testing.T) {
	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

	t.Run("before opening", func(t *testing.T) {
		req := validRequest(t)
		req.StartTime = mustTime(t, "08:00")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("session ends after closing", func(t *testing.T) {
		req := validRequest(t)
		req.StartTime = mustTime(t, "18:30")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrOutsideWorkingHours)
	})

	t.Run("off-grid start rejected for public", func(t *testing.T) {
		req := validRequest(t)
		req.StartTime = mustTime(t, "10:30")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("off-grid start allowed for admin", func(t *testing.T) {
		req := validRequest(t)
		req.StartTime = mustTime(t, "10:30")
		req.IsAdmin = true
		_, err := uc.Execute(context.Background(), req)
		assert.NoError(t, err)
	})
}

func TestUseCase_Execute_Validation(t *testing.T) {
	uc := newTestUseCase(t, &fakeAppointmentRepo{}, &fakeSettingsRepo{settings: testSettings(t)})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing name", mutate: func(r *Request) { r.ClientName = " " }},
		{name: "missing email", mutate: func(r *Request) { r.ClientEmail = "" }},
		{name: "invalid email", mutate: func(r *Request) { r.ClientEmail = "not-an-email" }},
		{name: "missing phone", mutate: func(r *Request) { r.ClientPhone = "" }},
		{name: "zero duration override", mutate: func(r *Request) {
			zero := 0
			r.DurationMinutes = &zero
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
