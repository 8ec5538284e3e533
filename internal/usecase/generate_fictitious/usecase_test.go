package generate_fictitious

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	byDate  map[string][]*domain.Appointment
	created []*domain.Appointment
	nextID  int64
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.nextID++
	appt.ID = f.nextID
	f.created = append(f.created, appt)
	return appt, nil
}

func (f *fakeAppointmentRepo) GetByFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if filter.StartDate == nil {
		return nil, nil
	}
	return f.byDate[filter.StartDate.Format(domain.DateFormat)], nil
}

type fakeSettingsRepo struct {
	settings *domain.AppointmentSettings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.AppointmentSettings, error) {
	return f.settings, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// seqRand детерминированный источник случайности для тестов
type seqRand struct {
	values []int
	pos    int
}

func (r *seqRand) Intn(n int) int {
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[r.pos%len(r.values)] % n
	r.pos++
	return v
}

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
	return &domain.AppointmentSettings{
		WorkingHours:               domain.WorkingHours{Start: mustTime(t, "09:00"), End: mustTime(t, "19:00")},
		WorkingDays:                []int{0, 1, 2, 3, 4, 5, 6},
		SlotDurationMinutes:        60,
		FictionalBookingPercentage: 100, // засеваем каждый день
	}
}

// 2026-09-14 - понедельник
var testNow = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

func newTestUseCase(t *testing.T, apptRepo *fakeAppointmentRepo, settings *domain.AppointmentSettings, rng Rand) *UseCase {
	t.Helper()
	return NewUseCase(apptRepo, &fakeSettingsRepo{settings: settings}, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow}).
		WithRand(rng)
}

func TestUseCase_Execute_SkipsSundays(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{byDate: map[string][]*domain.Appointment{}}
	uc := newTestUseCase(t, apptRepo, testSettings(t), &seqRand{values: []int{0}})

	horizon := 7
	resp, err := uc.Execute(context.Background(), &Request{HorizonDays: &horizon})
	require.NoError(t, err)

	// Пн-Сб, воскресенье 2026-09-20 пропущено даже при workingDays со всеми днями
	assert.Equal(t, 6, resp.DaysConsidered)

	for _, appt := range apptRepo.created {
		assert.NotEqual(t, time.Sunday, appt.Date.Weekday())
	}
}

func TestUseCase_Execute_CreatedAppointmentsAreFictitious(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{byDate: map[string][]*domain.Appointment{}}
	uc := newTestUseCase(t, apptRepo, testSettings(t), &seqRand{values: []int{0, 1, 2}})

	horizon := 3
	resp, err := uc.Execute(context.Background(), &Request{HorizonDays: &horizon})
	require.NoError(t, err)

	require.NotEmpty(t, resp.Created)
	for _, appt := range apptRepo.created {
		assert.Equal(t, domain.StatusFictitious, appt.Status)
		assert.True(t, appt.IsFictitious)
		assert.NotEmpty(t, appt.ClientName)
		assert.Empty(t, appt.ClientEmail) // у фиктивных записей нет контактов
		assert.Equal(t, 60, appt.DurationMinutes)
	}
}

func TestUseCase_Execute_RespectsDailyCap(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{byDate: map[string][]*domain.Appointment{}}
	// Большие значения rng заставляют want = FictitiousDailyCap
	uc := newTestUseCase(t, apptRepo, testSettings(t), &seqRand{values: []int{0, 2, 0, 1, 0}})

	horizon := 6
	_, err := uc.Execute(context.Background(), &Request{HorizonDays: &horizon})
	require.NoError(t, err)

	perDay := map[string]int{}
	for _, appt := range apptRepo.created {
		perDay[appt.Date.Format(domain.DateFormat)]++
	}
	for day, count := range perDay {
		assert.LessOrEqual(t, count, domain.FictitiousDailyCap, "day %s", day)
	}
}

func TestUseCase_Execute_ExistingFictitiousCountTowardsCap(t *testing.T) {
	day := testNow.AddDate(0, 0, 1)
	existing := make([]*domain.Appointment, 0, domain.FictitiousDailyCap)
	starts := []string{"10:00", "12:00", "14:00"}
	for _, s := range starts {
		existing = append(existing, &domain.Appointment{
			StartTime:       mustTime(t, s),
			DurationMinutes: 60,
			Status:          domain.StatusFictitious,
			IsFictitious:    true,
		})
	}

	apptRepo := &fakeAppointmentRepo{byDate: map[string][]*domain.Appointment{
		day.Format(domain.DateFormat): existing,
	}}
	uc := newTestUseCase(t, apptRepo, testSettings(t), &seqRand{values: []int{0}})

	horizon := 2
	_, err := uc.Execute(context.Background(), &Request{HorizonDays: &horizon})
	require.NoError(t, err)

	for _, appt := range apptRepo.created {
		assert.NotEqual(t, day.Format(domain.DateFormat), appt.Date.Format(domain.DateFormat))
	}
}

func TestUseCase_Execute_CandidatesWithinWorkingHours(t *testing.T) {
	apptRepo := &fakeAppointmentRepo{byDate: map[string][]*domain.Appointment{}}
	uc := newTestUseCase(t, apptRepo, testSettings(t), &seqRand{values: []int{0, 2, 1}})

	horizon := 5
	_, err := uc.Execute(context.Background(), &Request{HorizonDays: &horizon})
	require.NoError(t, err)

	open := mustTime(t, "09:00")
	close := mustTime(t, "19:00")

	for _, appt := range apptRepo.created {
		// Граничный час открытия исключен
		assert.True(t, appt.StartTime.IsAfter(open), "start %s must be after opening", appt.StartTime)

		// Сеанс, заканчивающийся ровно в закрытие, допустим
		end, err := appt.EndTime()
		require.NoError(t, err)
		assert.False(t, end.IsAfter(close), "end %s must not pass closing", end)

		// Часовая отметка
		assert.Zero(t, appt.StartTime.Minutes()%60)
	}
}

func TestHourlyCandidates_LastHourEndsAtClose(t *testing.T) {
	settings := testSettings(t)

	candidates := hourlyCandidates(settings, nil)

	require.NotEmpty(t, candidates)
	// 18:00-19:00 заканчивается ровно в закрытие и остается кандидатом
	last := candidates[len(candidates)-1]
	assert.Equal(t, "18:00", last.String())
	// Граничный час открытия по-прежнему исключен
	assert.Equal(t, "10:00", candidates[0].String())
}

func TestUseCase_Execute_ZeroPercentageSeedsNothing(t *testing.T) {
	settings := testSettings(t)
	settings.FictionalBookingPercentage = 0

	apptRepo := &fakeAppointmentRepo{byDate: map[string][]*domain.Appointment{}}
	uc := newTestUseCase(t, apptRepo, settings, &seqRand{values: []int{5}})

	horizon := 7
	resp, err := uc.Execute(context.Background(), &Request{HorizonDays: &horizon})
	require.NoError(t, err)

	assert.Empty(t, resp.Created)
	assert.Zero(t, resp.DaysSeeded)
	assert.Empty(t, apptRepo.created)
}
